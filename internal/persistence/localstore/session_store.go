package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/leave-portal/internal/persistence"
)

// SessionStore implements persistence.SessionStore over the currentUser
// collection. Unlike the account collections the body is a single object,
// not an array.
type SessionStore struct {
	store *Store
}

// NewSessionStore constructs a session store bound to the store.
func NewSessionStore(store *Store) *SessionStore {
	return &SessionStore{store: store}
}

// GetSession returns the logged-in session. Returns ErrNotFound when nobody
// is logged in or the stored body is unparseable.
func (s *SessionStore) GetSession(ctx context.Context) (persistence.Session, error) {
	var body string
	err := s.store.db.QueryRowContext(ctx,
		`SELECT body FROM collections WHERE name = ?`, collectionSession).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return persistence.Session{}, persistence.ErrNotFound
	}
	if err != nil {
		return persistence.Session{}, fmt.Errorf("failed to read collection %s: %w", collectionSession, err)
	}

	var session persistence.Session
	if err := json.Unmarshal([]byte(body), &session); err != nil {
		s.store.logger.WarnContext(ctx, "session body unparseable, treating as logged out",
			"collection", collectionSession, "error", err)
		return persistence.Session{}, persistence.ErrNotFound
	}
	if session.Role == "" && session.Token == "" {
		return persistence.Session{}, persistence.ErrNotFound
	}
	return session, nil
}

// SetSession replaces the current session record.
func (s *SessionStore) SetSession(ctx context.Context, session persistence.Session) error {
	return s.store.save(ctx, collectionSession, session)
}

// ClearSession removes the current session record.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	return s.store.delete(ctx, collectionSession)
}
