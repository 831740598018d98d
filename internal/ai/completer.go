package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Completer is an opaque text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = errors.New("empty model response")

// GenAIConfig configures the Gemini client.
type GenAIConfig struct {
	APIKey          string  `mapstructure:"api_key"`
	Model           string  `mapstructure:"model"`
	Temperature     float32 `mapstructure:"temperature"`
	MaxOutputTokens int32   `mapstructure:"max_output_tokens"`
}

// DefaultModel is used when GenAIConfig.Model is empty.
const DefaultModel = "gemini-2.5-flash"

// GenAICompleter completes prompts with Google's Gemini API.
type GenAICompleter struct {
	client   *genai.Client
	model    string
	generate *genai.GenerateContentConfig
}

// NewGenAICompleter creates a Gemini-backed Completer.
func NewGenAICompleter(ctx context.Context, cfg GenAIConfig) (*GenAICompleter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GenAI API key is required")
	}

	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	gen := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(cfg.Temperature),
		ResponseMIMEType: "application/json",
	}
	if cfg.MaxOutputTokens > 0 {
		gen.MaxOutputTokens = cfg.MaxOutputTokens
	}

	return &GenAICompleter{
		client:   client,
		model:    cfg.Model,
		generate: gen,
	}, nil
}

// Complete sends prompt as a single user turn and returns the response text.
func (c *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.generate)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
