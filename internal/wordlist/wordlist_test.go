package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFiltersWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(path, []byte("hello\n\nCafé\nworld\n  typing  \n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	words, err := Load(path, "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"hello", "world", "typing"}, words); diff != "" {
		t.Fatalf("words mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFileUsesBuiltin(t *testing.T) {
	words, err := Load(filepath.Join(t.TempDir(), "missing.txt"), "en")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != len(builtinEnglish) {
		t.Fatalf("expected built-in pool, got %d words", len(words))
	}
	words[0] = "changed"
	if builtinEnglish[0] == "changed" {
		t.Fatalf("Default must return a copy")
	}
}

func TestLoadMissingFileUnknownLang(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "xx.txt"), "xx"); err == nil {
		t.Fatalf("expected error for unknown language without a file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("\n\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path, "en"); err == nil {
		t.Fatalf("expected error for empty list")
	}
}
