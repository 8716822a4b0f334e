package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "termtyper.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return s
}

func TestCredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Credential(ctx, "gemini"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.PutCredential(ctx, "gemini", "k1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.PutCredential(ctx, "gemini", "k2"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := s.PutCredential(ctx, "openai", "o1"); err != nil {
		t.Fatalf("put other: %v", err)
	}
	got, err := s.Credential(ctx, "gemini")
	if err != nil || got != "k2" {
		t.Fatalf("expected k2, got %q (%v)", got, err)
	}
	if err := s.DeleteCredential(ctx, "gemini"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Credential(ctx, "gemini"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if got, _ := s.Credential(ctx, "openai"); got != "o1" {
		t.Fatalf("other provider credential lost: %q", got)
	}
	if err := s.DeleteCredential(ctx, "missing"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
}

func TestPutCredentialRejectsBlank(t *testing.T) {
	s := openTestStore(t)
	if err := s.PutCredential(context.Background(), "gemini", "  "); err == nil {
		t.Fatalf("expected error for blank credential")
	}
}

func TestTextCache(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.CachedText(ctx, "space"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for i := 0; i < TextsPerTopic+3; i++ {
		if err := s.CacheText(ctx, "Space  Travel", fmt.Sprintf("text %d", i)); err != nil {
			t.Fatalf("cache %d: %v", i, err)
		}
	}
	got, err := s.CachedText(ctx, " space travel ")
	if err != nil {
		t.Fatalf("cached text: %v", err)
	}
	if want := fmt.Sprintf("text %d", TextsPerTopic+2); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	n, err := s.cachedTextCount(ctx, "space travel")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != TextsPerTopic {
		t.Fatalf("expected %d cached texts, got %d", TextsPerTopic, n)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "termtyper.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.PutCredential(ctx, "gemini", "k"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if got, err := s.Credential(ctx, "gemini"); err != nil || got != "k" {
		t.Fatalf("expected persisted credential, got %q (%v)", got, err)
	}
}
