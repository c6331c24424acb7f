package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CREDEQ_CONFIG is set
//  3. env (prefix CREDEQ_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CREDEQ_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CREDEQ_ADDR, CREDEQ_MIN_MATCH_SCORE, ...
	// Map env keys like CREDEQ_MIN_MATCH_SCORE -> min_match_score (flat keys,
	// underscores preserved to match koanf tags on the struct).
	envProvider := env.Provider("CREDEQ_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "credeq_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MinMatchScore < 0 || c.MinMatchScore > 100:
		return fmt.Errorf("%w: min_match_score must be within [0,100]", ErrInvalidConfig)
	case c.SimilarityMin < 0 || c.SimilarityMin > 100:
		return fmt.Errorf("%w: similarity_min must be within [0,100]", ErrInvalidConfig)
	case c.MinCreditHours < 0:
		return fmt.Errorf("%w: min_credit_hours must not be negative", ErrInvalidConfig)
	case c.WindowRadius < 0:
		return fmt.Errorf("%w: window_radius must not be negative", ErrInvalidConfig)
	case c.Scorer != "embedding" && c.Scorer != "tfidf":
		return fmt.Errorf("%w: scorer must be embedding or tfidf", ErrInvalidConfig)
	case c.ModelMaxConcurrent < 1:
		return fmt.Errorf("%w: model_max_concurrent must be at least 1", ErrInvalidConfig)
	}
	return nil
}
