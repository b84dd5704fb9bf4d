// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/team-composer/internal/types"
)

// Scoring defaults. These are policy values, not derived truths: tune via
// the config file, never by editing call sites.
const (
	// DefaultTechnologyWeight is the share of the final score carried by
	// technology coverage; the remainder is room for the role bonus.
	DefaultTechnologyWeight = 0.8
	// DefaultRoleExactBonus is added for an exact role+level match.
	DefaultRoleExactBonus = 0.2
	// DefaultRoleAdjacentBonus is added for an exact role at an adjacent level.
	DefaultRoleAdjacentBonus = 0.1
	// DefaultProficiencyCap caps the level credited per requirement so one
	// deep skill cannot mask missing breadth.
	DefaultProficiencyCap = 5
	// DefaultRedundancyLevel is the role seniority at or above which two
	// members holding the same specialized role are flagged as a potential
	// conflict.
	DefaultRedundancyLevel = "senior"
	// DefaultGenerationTimeout bounds the generative collaborator call.
	DefaultGenerationTimeout = 45 * time.Second
)

// Config represents the application configuration loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Connections
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key; empty disables delegation
	Port        int    `json:"port,omitempty"`         // HTTP server port

	// Scoring policy
	TechnologyWeight  float64 `json:"technology_weight,omitempty"`   // Weight of technology coverage in the final score (0.0-1.0)
	RoleExactBonus    float64 `json:"role_exact_bonus,omitempty"`    // Bonus for exact role+level match (0.0-1.0)
	RoleAdjacentBonus float64 `json:"role_adjacent_bonus,omitempty"` // Bonus for adjacent-level role match (0.0-1.0)
	ProficiencyCap    int     `json:"proficiency_cap,omitempty"`     // Maximum level credited per requirement

	// Composition policy
	RedundancyLevel   string `json:"redundancy_level,omitempty"`   // Role seniority at which overlap flags a conflict
	GenerationTimeout int    `json:"generation_timeout,omitempty"` // Generative call timeout in seconds

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.TechnologyWeight < 0 || c.TechnologyWeight > 1 {
		return fmt.Errorf("config error: 'technology_weight' must be between 0 and 1")
	}
	if c.RoleExactBonus < 0 || c.RoleExactBonus > 1 {
		return fmt.Errorf("config error: 'role_exact_bonus' must be between 0 and 1")
	}
	if c.RoleAdjacentBonus < 0 || c.RoleAdjacentBonus > 1 {
		return fmt.Errorf("config error: 'role_adjacent_bonus' must be between 0 and 1")
	}
	if c.RoleExactBonus > 0 && c.RoleAdjacentBonus > c.RoleExactBonus {
		return fmt.Errorf("config error: 'role_adjacent_bonus' must not exceed 'role_exact_bonus'")
	}
	if c.ProficiencyCap < 0 {
		return fmt.Errorf("config error: 'proficiency_cap' must be non-negative")
	}
	if c.RedundancyLevel != "" {
		if _, err := types.ParseExperienceLevel(c.RedundancyLevel); err != nil {
			return fmt.Errorf("config error: invalid 'redundancy_level': %w", err)
		}
	}
	if c.GenerationTimeout < 0 {
		return fmt.Errorf("config error: 'generation_timeout' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults, falling back to the package defaults for policy values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if result.TechnologyWeight == 0 {
		if defaults.TechnologyWeight > 0 {
			result.TechnologyWeight = defaults.TechnologyWeight
		} else {
			result.TechnologyWeight = DefaultTechnologyWeight
		}
	}
	if result.RoleExactBonus == 0 {
		if defaults.RoleExactBonus > 0 {
			result.RoleExactBonus = defaults.RoleExactBonus
		} else {
			result.RoleExactBonus = DefaultRoleExactBonus
		}
	}
	if result.RoleAdjacentBonus == 0 {
		if defaults.RoleAdjacentBonus > 0 {
			result.RoleAdjacentBonus = defaults.RoleAdjacentBonus
		} else {
			result.RoleAdjacentBonus = DefaultRoleAdjacentBonus
		}
	}
	if result.ProficiencyCap == 0 {
		if defaults.ProficiencyCap > 0 {
			result.ProficiencyCap = defaults.ProficiencyCap
		} else {
			result.ProficiencyCap = DefaultProficiencyCap
		}
	}
	if result.RedundancyLevel == "" {
		if defaults.RedundancyLevel != "" {
			result.RedundancyLevel = defaults.RedundancyLevel
		} else {
			result.RedundancyLevel = DefaultRedundancyLevel
		}
	}
	if result.GenerationTimeout == 0 {
		if defaults.GenerationTimeout > 0 {
			result.GenerationTimeout = defaults.GenerationTimeout
		} else {
			result.GenerationTimeout = int(DefaultGenerationTimeout.Seconds())
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RedundancyExperienceLevel returns the parsed conflict threshold,
// defaulting to senior when unset or unparseable.
func (c *Config) RedundancyExperienceLevel() types.ExperienceLevel {
	level, err := types.ParseExperienceLevel(c.RedundancyLevel)
	if err != nil {
		return types.LevelSenior
	}
	return level
}

// GenerationTimeoutDuration returns the generative-call timeout as a duration.
func (c *Config) GenerationTimeoutDuration() time.Duration {
	if c.GenerationTimeout <= 0 {
		return DefaultGenerationTimeout
	}
	return time.Duration(c.GenerationTimeout) * time.Second
}
