package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all draftforge runtime configuration apart from the channel
// definitions themselves.
type Config struct {
	// LLM configures the model-call capability.
	LLM LLMConfig `yaml:"llm"`

	// Storage configures the per-channel keyed store.
	Storage StorageConfig `yaml:"storage"`

	// Logging configures log output.
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the model client.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, anthropic, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// TimeoutDuration parses the configured timeout, defaulting to two minutes.
func (l LLMConfig) TimeoutDuration() time.Duration {
	if l.Timeout == "" {
		return 2 * time.Minute
	}
	d, err := time.ParseDuration(l.Timeout)
	if err != nil {
		return 2 * time.Minute
	}
	return d
}

// StorageConfig configures where per-channel state lives.
type StorageConfig struct {
	// DatabasePath is the SQLite file backing learned patterns and history.
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures log verbosity and format.
type LoggingConfig struct {
	Level       string `yaml:"level"`       // debug, info, warn, error
	Development bool   `yaml:"development"` // console encoder
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o",
			Timeout:  "2m",
		},
		Storage: StorageConfig{
			DatabasePath: ".draftforge/channels.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the runtime config from a YAML file, falling back to defaults
// for a missing file, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}
