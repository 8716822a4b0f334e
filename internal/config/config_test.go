package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[practice]
margin = 2
escape-timeout-ms = 50

[provider]
name = "offline"
wordlist = "/tmp/words.txt"
sentences = 4
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Margin == nil || *cfg.Practice.Margin != 2 {
		t.Fatalf("unexpected margin: %v", cfg.Practice.Margin)
	}
	if cfg.Practice.EscapeTimeoutMs == nil || *cfg.Practice.EscapeTimeoutMs != 50 {
		t.Fatalf("unexpected escape timeout: %v", cfg.Practice.EscapeTimeoutMs)
	}
	if cfg.Practice.FallbackText != nil {
		t.Fatalf("expected unset fallback text")
	}
	if cfg.Provider.Name == nil || *cfg.Provider.Name != "offline" {
		t.Fatalf("unexpected provider: %v", cfg.Provider.Name)
	}
	if cfg.Provider.Sentences == nil || *cfg.Provider.Sentences != 4 {
		t.Fatalf("unexpected sentences: %v", cfg.Provider.Sentences)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Provider.Name != nil || cfg.Practice.Margin != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadConfig(writeConfig(t, "[practice\nmargin = ")); err == nil {
		t.Fatalf("expected decode error")
	}
	_, err := LoadConfig(writeConfig(t, "[practice]\nmargni = 3\n"))
	if err == nil || !strings.Contains(err.Error(), "margni") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "termtyper", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "termtyper", "termtyper.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultWordListPath("en"); got != filepath.Join("/cfg", "termtyper", "wordlists", "en.txt") {
		t.Fatalf("unexpected word list path %q", got)
	}
}

func TestXDGFallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "/home/typist")
	if got := XDGConfigHome(); got != filepath.Join("/home/typist", ".config") {
		t.Fatalf("unexpected config home %q", got)
	}
	if got := XDGDataHome(); got != filepath.Join("/home/typist", ".local", "share") {
		t.Fatalf("unexpected data home %q", got)
	}
}
