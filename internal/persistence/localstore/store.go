// Package localstore persists the portal's named collections in a local
// SQLite database. Each collection is stored as a single JSON document and
// every mutation is a whole-document read-modify-write executed inside one
// transaction. That keeps individual calls atomic, but two independent
// writers racing on the same collection still resolve last-write-wins; the
// deployment model assumes a single logical writer at a time.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Collection keys. The names are the storage contract shared with earlier
// versions of the portal and must not change.
const (
	collectionRequests = "leaveRequests"
	collectionSession  = "currentUser"
	collectionStudents = "students"
	collectionTeachers = "teachers_accounts"
	collectionHODs     = "hods_accounts"
)

// schemaStatements are applied in order by Migrate. Append only; never edit
// an entry that has shipped.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,
}

// Store is a named-collection document store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the store at the given SQLite DSN.
func Open(dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	// A single connection sidesteps SQLITE_BUSY between the store's own
	// read-modify-write transactions.
	db.SetMaxOpenConns(1)
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Migrate applies the schema statements. Safe to call on every start.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}

// load reads a collection body into v. An absent row or an unparseable body
// reads as the zero value: availability is preferred over strict
// correctness, so corruption is logged and treated as an empty collection.
func (s *Store) load(ctx context.Context, name string, v any) error {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read collection %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(body), v); err != nil {
		s.logger.WarnContext(ctx, "collection body unparseable, reading as empty",
			"collection", name, "error", err)
		return nil
	}
	return nil
}

// save serializes v and replaces the collection body.
func (s *Store) save(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", name, err)
	}
	return s.write(ctx, name, string(body))
}

func (s *Store) write(ctx context.Context, name, body string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, body, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(name) DO UPDATE SET
			body = excluded.body,
			updated_at = excluded.updated_at
	`, name, body)
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// delete removes a collection row entirely.
func (s *Store) delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete collection %s: %w", name, err)
	}
	return nil
}

// withTx runs fn inside a transaction, rolling back on error.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction failed (rollback error: %v): %w", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// update performs a read-modify-write of one collection inside a single
// transaction. The modify callback receives the decoded body via load's
// semantics (absent/corrupt reads as empty) and returns the value to store.
func (s *Store) update(ctx context.Context, name string, decode func([]byte) (any, error)) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var body string
		err := tx.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, name).Scan(&body)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read collection %s: %w", name, err)
		}

		next, err := decode([]byte(body))
		if err != nil {
			return err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode collection %s: %w", name, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO collections (name, body, updated_at)
			VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
			ON CONFLICT(name) DO UPDATE SET
				body = excluded.body,
				updated_at = excluded.updated_at
		`, name, encoded)
		if err != nil {
			return fmt.Errorf("failed to save collection %s: %w", name, err)
		}
		return nil
	})
}
