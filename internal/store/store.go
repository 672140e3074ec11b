// Package store handles SQLite persistence.
//
// Aggregates (session history, profile, suggestion index) are stored as
// whole JSON blobs in a key-value table and replaced atomically on every
// mutation. The active session lives in a separate scratch table so it can
// be cleared independently of long-lived data.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/verte-zerg/longcast/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

const (
	keySessions      = "sessions"
	keyProfile       = "profile"
	keySuggestions   = "suggestions"
	keyActiveSession = "active_session"
)

// Store wraps SQLite access for tracker data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS scratch (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) put(ctx context.Context, table, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, table)
	if _, err := s.db.ExecContext(ctx, query, key, string(blob)); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// get decodes the blob at key into out. Reports whether the key existed.
func (s *Store) get(ctx context.Context, table, key string, out any) (bool, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, table)
	var blob string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(blob), out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) delete(ctx context.Context, table, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SaveSessions replaces the full session history.
func (s *Store) SaveSessions(ctx context.Context, sessions []model.Session) error {
	if sessions == nil {
		sessions = []model.Session{}
	}
	return s.put(ctx, "kv", keySessions, sessions)
}

// LoadSessions returns the full session history, oldest first as stored.
func (s *Store) LoadSessions(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	if _, err := s.get(ctx, "kv", keySessions, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// SaveProfile replaces the profile record.
func (s *Store) SaveProfile(ctx context.Context, profile model.Profile) error {
	return s.put(ctx, "kv", keyProfile, profile)
}

// LoadProfile returns the profile, or nil if none has been saved.
func (s *Store) LoadProfile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	ok, err := s.get(ctx, "kv", keyProfile, &profile)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

// SaveSuggestions replaces the suggestion index.
func (s *Store) SaveSuggestions(ctx context.Context, suggestions model.Suggestions) error {
	if suggestions == nil {
		suggestions = model.Suggestions{}
	}
	return s.put(ctx, "kv", keySuggestions, suggestions)
}

// LoadSuggestions returns the suggestion index, empty when absent.
func (s *Store) LoadSuggestions(ctx context.Context) (model.Suggestions, error) {
	suggestions := model.Suggestions{}
	if _, err := s.get(ctx, "kv", keySuggestions, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// SaveActiveSession replaces the active session in scratch storage.
func (s *Store) SaveActiveSession(ctx context.Context, session model.Session) error {
	return s.put(ctx, "scratch", keyActiveSession, session)
}

// LoadActiveSession returns the active session, or nil if none exists.
func (s *Store) LoadActiveSession(ctx context.Context) (*model.Session, error) {
	var session model.Session
	ok, err := s.get(ctx, "scratch", keyActiveSession, &session)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// ClearActiveSession removes the active session from scratch storage.
func (s *Store) ClearActiveSession(ctx context.Context) error {
	return s.delete(ctx, "scratch", keyActiveSession)
}

// ClearAll removes every stored aggregate, including scratch data.
func (s *Store) ClearAll(ctx context.Context) error {
	for _, stmt := range []string{`DELETE FROM kv`, `DELETE FROM scratch`} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
	}
	return nil
}
