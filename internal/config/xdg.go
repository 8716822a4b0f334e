package config

import (
	"os"
	"path/filepath"
)

const appName = "termtyper"

// xdgBase resolves an XDG base directory: the env variable when set, otherwise
// fallback under the user's home, otherwise the working directory.
func xdgBase(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func XDGConfigHome() string { return xdgBase("XDG_CONFIG_HOME", ".config") }

func XDGDataHome() string { return xdgBase("XDG_DATA_HOME", ".local", "share") }

// DefaultWordListPath is where the offline provider looks for lang's word list.
func DefaultWordListPath(lang string) string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists", lang+".txt")
}

// DefaultDBPath holds stored API keys and cached texts.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
