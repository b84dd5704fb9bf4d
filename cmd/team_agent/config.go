package main

import (
	"fmt"
	"os"

	"github.com/jonathan/team-composer/internal/config"
)

// loadEffectiveConfig builds the runtime configuration: an optional JSON
// config file, overlaid with environment variables, then merged with the
// package defaults and validated.
func loadEffectiveConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}

	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
