// Package config resolves XDG paths and reads the TOML config file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Nil fields are unset.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Provider ProviderConfig `toml:"provider"`
}

// PracticeConfig maps the [practice] table.
type PracticeConfig struct {
	Margin          *int    `toml:"margin"`
	EscapeTimeoutMs *int    `toml:"escape-timeout-ms"`
	FallbackText    *string `toml:"fallback-text"`
}

// ProviderConfig maps the [provider] table.
type ProviderConfig struct {
	Name           *string `toml:"name"`
	Model          *string `toml:"model"`
	BaseURL        *string `toml:"base-url"`
	TimeoutSeconds *int    `toml:"timeout-seconds"`
	MaxAttempts    *int    `toml:"max-attempts"`
	WordList       *string `toml:"wordlist"`
	Lang           *string `toml:"lang"`
	Sentences      *int    `toml:"sentences"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
