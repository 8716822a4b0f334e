// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// TextsPerTopic bounds how many generated paragraphs are kept per topic.
const TextsPerTopic = 5

// Store wraps SQLite access for credentials and cached practice texts.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS credentials (
			provider TEXT PRIMARY KEY,
			secret TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS texts (
			id INTEGER PRIMARY KEY,
			topic TEXT NOT NULL,
			body TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_texts_topic ON texts(topic, id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Credential returns the stored API key for provider.
func (s *Store) Credential(ctx context.Context, provider string) (string, error) {
	var secret string
	err := s.db.QueryRowContext(ctx,
		`SELECT secret FROM credentials WHERE provider = ?`, provider).Scan(&secret)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return secret, nil
}

// PutCredential stores or replaces the API key for provider.
func (s *Store) PutCredential(ctx context.Context, provider, secret string) error {
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("empty credential for %s", provider)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credentials (provider, secret, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(provider) DO UPDATE SET secret = excluded.secret, updated_at = excluded.updated_at`,
		provider, secret, s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	return nil
}

// DeleteCredential removes the API key for provider. Missing keys are not an error.
func (s *Store) DeleteCredential(ctx context.Context, provider string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE provider = ?`, provider); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

// CachedText returns the most recently stored paragraph for topic.
func (s *Store) CachedText(ctx context.Context, topic string) (string, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM texts WHERE topic = ? ORDER BY id DESC LIMIT 1`, normalizeTopic(topic)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load cached text: %w", err)
	}
	return body, nil
}

// CacheText records a generated paragraph and drops the oldest ones beyond TextsPerTopic.
func (s *Store) CacheText(ctx context.Context, topic, body string) (err error) {
	key := normalizeTopic(topic)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO texts (topic, body, created_at) VALUES (?, ?, ?)`,
		key, body, s.now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("failed to cache text: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`DELETE FROM texts WHERE topic = ? AND id NOT IN (
			SELECT id FROM texts WHERE topic = ? ORDER BY id DESC LIMIT ?
		)`, key, key, TextsPerTopic); err != nil {
		return fmt.Errorf("failed to trim text cache: %w", err)
	}
	return tx.Commit()
}

// cachedTextCount reports how many paragraphs are cached for topic.
func (s *Store) cachedTextCount(ctx context.Context, topic string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM texts WHERE topic = ?`, normalizeTopic(topic)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func normalizeTopic(topic string) string {
	return strings.ToLower(strings.Join(strings.Fields(topic), " "))
}
