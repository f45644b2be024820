package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// UserLookup resolves a user id to a user. The catalog's mock user is the
// only user the server knows about.
type UserLookup func(id string) (model.User, bool)

// Manager owns every live session and serialises mutations.
//
// Each browser drives its own session, so there is no contention worth
// designing for beyond "the most recent action wins". A single mutex around
// load-mutate-save keeps two requests from the same browser from losing each
// other's writes.
type Manager struct {
	mu     sync.Mutex
	repo   repository.SessionRepository
	users  UserLookup
	logger *slog.Logger
	now    func() time.Time

	// touchEvery is the smallest gap between two activity stamps written by
	// Touch. Mutations always stamp.
	touchEvery time.Duration
}

// NewManager creates a Manager that stores sessions in repo.
func NewManager(repo repository.SessionRepository, users UserLookup, logger *slog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    time.Now,

		touchEvery: time.Minute,
	}
}

// SetTouchInterval sets how often Touch rewrites a session's activity stamp.
// A session read more often than that is still stored at most once per
// interval. Zero stamps on every Touch.
func (m *Manager) SetTouchInterval(d time.Duration) {
	m.touchEvery = d
}

// Open starts a new anonymous session.
func (m *Manager) Open(ctx context.Context) (Snapshot, error) {
	s := New(xid.New().String(), m.now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Save(ctx, s.Record()); err != nil {
		return Snapshot{}, fmt.Errorf("session: opening: %w", err)
	}
	m.logger.Debug("session opened", slog.String("sessionID", s.ID()))
	return s.Snapshot(), nil
}

// Get returns the current state of session id. A missing session yields an
// apperror.ErrNotFound error from the repository.
func (m *Manager) Get(ctx context.Context, id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Touch is Get for a session that is in use: it also moves the session's
// activity stamp forward, so Sweep only removes sessions nobody has asked for
// within the ttl. The stamp is written at most once per touch interval.
func (m *Manager) Touch(ctx context.Context, id string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	if now := m.now(); now.Sub(s.updatedAt) >= m.touchEvery {
		s.stamp(now)
		if err := m.repo.Save(ctx, s.Record()); err != nil {
			return Snapshot{}, fmt.Errorf("session: touching %s: %w", id, err)
		}
	}
	return s.Snapshot(), nil
}

// Update applies fn to session id and stores the result.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Session)) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return Snapshot{}, err
	}
	fn(s)
	s.stamp(m.now())
	if err := m.repo.Save(ctx, s.Record()); err != nil {
		return Snapshot{}, fmt.Errorf("session: saving %s: %w", id, err)
	}
	return s.Snapshot(), nil
}

// Sweep deletes sessions idle for longer than ttl and returns how many went.
func (m *Manager) Sweep(ctx context.Context, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.repo.DeleteIdle(ctx, m.now().Add(-ttl))
	if err != nil {
		return 0, fmt.Errorf("session: sweeping: %w", err)
	}
	if n > 0 {
		m.logger.Info("idle sessions removed", slog.Int64("count", n))
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (m *Manager) RunSweeper(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx, ttl); err != nil && ctx.Err() == nil {
				m.logger.Warn("session sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	rec, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return Restore(*rec, m.users), nil
}
