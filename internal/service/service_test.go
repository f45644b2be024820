package service

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/catalog"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/session"
)

// =========================================================================
// MOCK REPOSITORY
// =========================================================================
//
// mockSessionRepo implements repository.SessionRepository in memory, so the
// services run against a real session.Manager without a database.

type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]model.SessionRecord
}

func newMockRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]model.SessionRecord)}
}

func (m *mockSessionRepo) Save(_ context.Context, rec model.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[rec.ID] = rec
	return nil
}

func (m *mockSessionRepo) Get(_ context.Context, id string) (*model.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.sessions[id]
	if !ok {
		return nil, apperror.NotFound("session", id)
	}
	return &rec, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteIdle(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

// newTestSessionService returns a service and the id of a fresh anonymous
// session.
func newTestSessionService(t *testing.T) (*SessionService, string) {
	t.Helper()
	c := testCatalog(t)
	users := func(id string) (model.User, bool) {
		u := c.MockUser()
		return u, u.ID == id
	}
	mgr := session.NewManager(newMockRepo(), users, testLogger())

	snap, err := mgr.Open(context.Background())
	require.NoError(t, err)
	return NewSessionService(mgr, c, nil, testLogger()), snap.ID
}
