package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/catalog"
	"github.com/sakif/prompt-library/internal/metrics"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/session"
)

// FavoriteResult reports what a favorite toggle did.
type FavoriteResult struct {
	PromptID string `json:"promptId"`
	// Favorite is whether the prompt is a favorite after the toggle.
	Favorite bool `json:"favorite"`
	// Applied is false when the session was anonymous and nothing changed.
	Applied bool             `json:"applied"`
	Session session.Snapshot `json:"session"`
}

// CollectionView is a collection with its prompt ids resolved.
type CollectionView struct {
	model.Collection
	Items []model.Prompt `json:"items"`
}

// SessionService implements login, logout, favorites and the display flag
// on top of session.Manager.
type SessionService struct {
	sessions *session.Manager
	catalog  *catalog.Catalog
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewSessionService creates a SessionService. m may be nil.
func NewSessionService(mgr *session.Manager, c *catalog.Catalog, m *metrics.Metrics, logger *slog.Logger) *SessionService {
	return &SessionService{sessions: mgr, catalog: c, metrics: m, logger: logger}
}

// Snapshot returns the current state of session sid.
func (s *SessionService) Snapshot(ctx context.Context, sid string) (session.Snapshot, error) {
	return s.sessions.Get(ctx, sid)
}

// Login authenticates sid as the catalog's mock user. There are no
// credentials to check, so it cannot fail for a live session.
func (s *SessionService) Login(ctx context.Context, sid string) (session.Snapshot, error) {
	user := s.catalog.MockUser()
	snap, err := s.sessions.Update(ctx, sid, func(sess *session.Session) {
		sess.Login(user)
	})
	if err != nil {
		return session.Snapshot{}, err
	}

	s.metrics.Login()
	s.logger.Info("session logged in",
		slog.String("sessionID", sid),
		slog.String("userID", user.ID),
	)
	return snap, nil
}

// Logout returns sid to the anonymous state and clears its favorites.
func (s *SessionService) Logout(ctx context.Context, sid string) (session.Snapshot, error) {
	snap, err := s.sessions.Update(ctx, sid, func(sess *session.Session) {
		sess.Logout()
	})
	if err != nil {
		return session.Snapshot{}, err
	}

	s.logger.Info("session logged out", slog.String("sessionID", sid))
	return snap, nil
}

// ToggleFavorite flips promptID in the favorites of sid. Unknown prompts are
// apperror.ErrNotFound. An anonymous session is left unchanged and the result
// has Applied set to false.
func (s *SessionService) ToggleFavorite(ctx context.Context, sid, promptID string) (FavoriteResult, error) {
	if !s.catalog.Has(promptID) {
		return FavoriteResult{}, apperror.NotFound("prompt", promptID)
	}

	res := FavoriteResult{PromptID: promptID}
	snap, err := s.sessions.Update(ctx, sid, func(sess *session.Session) {
		res.Applied = sess.State() == session.Authenticated
		res.Favorite = sess.ToggleFavorite(promptID)
	})
	if err != nil {
		return FavoriteResult{}, err
	}
	res.Session = snap

	outcome := "ignored"
	switch {
	case res.Applied && res.Favorite:
		outcome = "added"
	case res.Applied:
		outcome = "removed"
	}
	s.metrics.FavoriteToggled(outcome)
	s.logger.Debug("favorite toggled",
		slog.String("sessionID", sid),
		slog.String("promptID", promptID),
		slog.String("outcome", outcome),
	)
	return res, nil
}

// IsFavorite reports whether promptID is a favorite of sid.
func (s *SessionService) IsFavorite(ctx context.Context, sid, promptID string) (bool, error) {
	snap, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return false, err
	}
	return slices.Contains(snap.Favorites, promptID), nil
}

// FavoritePrompts resolves the favorites of sid against the catalog, in the
// order they were marked. Ids the catalog does not know are skipped.
func (s *SessionService) FavoritePrompts(ctx context.Context, sid string) ([]model.Prompt, error) {
	snap, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	return s.resolve(snap.Favorites), nil
}

// Collections returns the logged-in user's collections with their prompts
// resolved. It is empty for an anonymous session.
func (s *SessionService) Collections(ctx context.Context, sid string) ([]CollectionView, error) {
	snap, err := s.sessions.Get(ctx, sid)
	if err != nil {
		return nil, err
	}
	if snap.User == nil {
		return []CollectionView{}, nil
	}

	out := make([]CollectionView, 0, len(snap.User.Collections))
	for _, c := range snap.User.Collections {
		out = append(out, CollectionView{Collection: c, Items: s.resolve(c.Prompts)})
	}
	return out, nil
}

// ToggleDarkMode flips the display flag of sid.
func (s *SessionService) ToggleDarkMode(ctx context.Context, sid string) (session.Snapshot, error) {
	return s.sessions.Update(ctx, sid, func(sess *session.Session) {
		sess.ToggleDarkMode()
	})
}

func (s *SessionService) resolve(ids []string) []model.Prompt {
	out := make([]model.Prompt, 0, len(ids))
	for _, id := range ids {
		p, err := s.catalog.Prompt(id)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}
