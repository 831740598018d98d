package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hrbridge/internal/ai"
	"hrbridge/internal/gen"
	"hrbridge/internal/match"
	"hrbridge/internal/patterns"
	"hrbridge/internal/plan"
	"hrbridge/internal/transform"
)

func newEngine() *transform.Engine {
	return transform.NewEngine(log)
}

// newResolver wires the AI orchestrator when an API key is configured.
func newResolver(ctx context.Context) (*plan.Resolver, error) {
	var generator plan.Generator

	if cfg.AI.APIKey != "" {
		completer, err := ai.NewGenAICompleter(ctx, cfg.AI)
		if err != nil {
			return nil, err
		}

		generator = ai.NewOrchestrator(completer, cfg.Batch, log)
	}

	return plan.NewResolver(generator, match.NewMatcher(cfg.Matcher, log), newEngine(), log), nil
}

func newCompiler() *gen.Compiler {
	return gen.NewCompiler(cfg.Compiler, newEngine(), log)
}

// loadPatterns returns nil when no catalog is configured.
func loadPatterns() (*patterns.Store, error) {
	if cfg.Patterns.Path == "" {
		return nil, nil
	}

	return patterns.LoadFile(cfg.Patterns.Path)
}

// readDocument decodes a YAML or JSON file into out.
func readDocument(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
