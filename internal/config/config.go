// Package config loads hrbridge settings from a config file, HRBRIDGE_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"hrbridge/internal/ai"
	"hrbridge/internal/gen"
	"hrbridge/internal/match"
)

// EnvPrefix prefixes every environment override (HRBRIDGE_AI_API_KEY, ...).
const EnvPrefix = "HRBRIDGE"

// Config is the full process configuration.
type Config struct {
	AI       ai.GenAIConfig `mapstructure:"ai"`
	Batch    ai.BatchConfig `mapstructure:"batch"`
	Matcher  match.Config   `mapstructure:"matcher"`
	Compiler gen.Config     `mapstructure:"compiler"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Patterns PatternsConfig `mapstructure:"patterns"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr     string `mapstructure:"addr"`
	BasePath string `mapstructure:"base_path"`
	// MaxConcurrent bounds simultaneous mapping generations.
	MaxConcurrent int64 `mapstructure:"max_concurrent"`
}

// StoreConfig locates the integration history database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// PatternsConfig locates the source/destination catalog.
type PatternsConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// SetDefaults registers every key with its default value. Keys must be
// registered for environment overrides to apply.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", ai.DefaultModel)
	v.SetDefault("ai.temperature", 0.2)
	v.SetDefault("ai.max_output_tokens", 0)

	b := ai.DefaultBatchConfig()
	v.SetDefault("batch.threshold", b.Threshold)
	v.SetDefault("batch.initial_max", b.InitialMax)
	v.SetDefault("batch.initial_divisor", b.InitialDivisor)
	v.SetDefault("batch.growth", b.Growth)
	v.SetDefault("batch.grow_after", b.GrowAfter)
	v.SetDefault("batch.max", b.Max)
	v.SetDefault("batch.min", b.Min)
	v.SetDefault("batch.shrink_factor", b.ShrinkFactor)
	v.SetDefault("batch.delay", b.Delay)
	v.SetDefault("batch.timeout", b.Timeout)
	v.SetDefault("batch.max_failures", b.MaxFailures)
	v.SetDefault("batch.max_duration", b.MaxDuration)

	s := match.DefaultScores()
	v.SetDefault("matcher.exact", s.Exact)
	v.SetDefault("matcher.semantic_tag", s.SemanticTag)
	v.SetDefault("matcher.similar_name", s.SimilarName)
	v.SetDefault("matcher.hierarchical", s.Hierarchical)
	v.SetDefault("matcher.partial", s.Partial)
	v.SetDefault("matcher.threshold", s.Threshold)
	v.SetDefault("matcher.unique_targets", false)

	c := gen.DefaultConfig()
	v.SetDefault("compiler.name", c.Name)
	v.SetDefault("compiler.trigger_id", c.TriggerID)
	v.SetDefault("compiler.dead_letter_topic", c.DeadLetterTopic)
	v.SetDefault("compiler.allow_target_collisions", c.AllowTargetCollisions)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.base_path", "/v1")
	v.SetDefault("server.max_concurrent", 4)

	v.SetDefault("store.path", "hrbridge.db")
	v.SetDefault("patterns.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file (if not empty) into v and decodes the result.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the components cannot run with.
func (c *Config) Validate() error {
	b := c.Batch

	switch {
	case b.Threshold < 1:
		return errors.New("batch.threshold must be positive")
	case b.InitialDivisor < 1:
		return errors.New("batch.initial_divisor must be positive")
	case b.ShrinkFactor <= 0 || b.ShrinkFactor >= 1:
		return errors.New("batch.shrink_factor must be between 0 and 1")
	case b.Min > b.Max:
		return errors.New("batch.min must not exceed batch.max")
	case c.Server.MaxConcurrent < 1:
		return errors.New("server.max_concurrent must be positive")
	}

	return nil
}
