package testfixtures

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/example/leave-portal/internal/persistence"
	"github.com/example/leave-portal/internal/persistence/localstore"
)

// LocalStoreHarness provides repository access backed by a temporary SQLite
// document store for integration-style persistence tests.
type LocalStoreHarness struct {
	Requests persistence.RequestRepository
	Students persistence.StudentRepository
	Teachers persistence.TeacherRepository
	HODs     persistence.HODRepository
	Sessions persistence.SessionStore

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *LocalStoreHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewLocalStoreHarness constructs a LocalStoreHarness using a temporary file
// that is migrated automatically. Callers may optionally invoke Close, but the
// helper will also register a cleanup callback with the provided testing.TB.
func NewLocalStoreHarness(tb testing.TB) *LocalStoreHarness {
	tb.Helper()

	dir := tb.TempDir()
	path := filepath.Join(dir, "leaveportal.db")

	store, err := localstore.Open("file:"+path, slog.Default())
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate store: %v", err)
	}

	harness := &LocalStoreHarness{
		Requests: localstore.NewRequestRepository(store),
		Students: localstore.NewStudentRepository(store),
		Teachers: localstore.NewTeacherRepository(store),
		HODs:     localstore.NewHODRepository(store),
		Sessions: localstore.NewSessionStore(store),
		cleanup: func() {
			_ = store.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
