// Package session holds per-browser session state: who is logged in, which
// prompts they marked as favorites, and the dark-mode display flag.
//
// A Session has two states, anonymous and authenticated. Login always
// succeeds and moves to authenticated; Logout moves back to anonymous and
// clears the favorites. ToggleFavorite is accepted in both states but only has
// an effect when authenticated.
//
// The favorites list held by the Session is the only copy. User() derives the
// user's Favorites field from it on every call.
package session

import (
	"slices"
	"time"

	"github.com/sakif/prompt-library/internal/model"
)

// State is the session's authentication state.
type State string

const (
	Anonymous     State = "anonymous"
	Authenticated State = "authenticated"
)

// Session is one browser session. It is not safe for concurrent use; Manager
// serialises access.
type Session struct {
	id        string
	user      *model.User
	favorites []string
	darkMode  bool
	createdAt time.Time
	updatedAt time.Time
}

// New returns an anonymous session with the given id.
func New(id string, now time.Time) *Session {
	return &Session{id: id, createdAt: now, updatedAt: now}
}

func (s *Session) ID() string { return s.id }

// State reports anonymous or authenticated.
func (s *Session) State() State {
	if s.user == nil {
		return Anonymous
	}
	return Authenticated
}

// Login authenticates the session as user and adopts the user's stored
// favorites. There is no credential check.
func (s *Session) Login(user model.User) {
	u := user
	u.Favorites = nil
	s.user = &u
	s.favorites = slices.Clone(user.Favorites)
	if s.favorites == nil {
		s.favorites = []string{}
	}
}

// Logout drops the user and the favorites. The dark-mode flag survives.
func (s *Session) Logout() {
	s.user = nil
	s.favorites = nil
}

// ToggleFavorite flips id in the favorites list and reports whether id is a
// favorite afterwards. It does nothing while anonymous.
func (s *Session) ToggleFavorite(id string) bool {
	if s.user == nil {
		return false
	}
	if s.IsFavorite(id) {
		s.favorites = slices.DeleteFunc(s.favorites, func(f string) bool { return f == id })
		return false
	}
	s.favorites = append(s.favorites, id)
	return true
}

// ToggleDarkMode flips the display flag and returns the new value.
func (s *Session) ToggleDarkMode() bool {
	s.darkMode = !s.darkMode
	return s.DarkMode()
}

func (s *Session) DarkMode() bool { return s.darkMode }

// IsFavorite reports whether id is in the favorites list.
func (s *Session) IsFavorite(id string) bool {
	return slices.Contains(s.favorites, id)
}

// Favorites returns a copy of the favorites in the order they were marked.
// It is empty while anonymous.
func (s *Session) Favorites() []string {
	if s.favorites == nil {
		return []string{}
	}
	return slices.Clone(s.favorites)
}

// User returns the logged-in user with Favorites derived from the session,
// or nil while anonymous.
func (s *Session) User() *model.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	u.Favorites = s.Favorites()
	return &u
}

// Snapshot is the read-only view handed to callers outside the package.
type Snapshot struct {
	ID        string      `json:"id"`
	State     State       `json:"state"`
	User      *model.User `json:"user"`
	Favorites []string    `json:"favorites"`
	DarkMode  bool        `json:"darkMode"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:        s.id,
		State:     s.State(),
		User:      s.User(),
		Favorites: s.Favorites(),
		DarkMode:  s.DarkMode(),
	}
}

// Record converts the session into its storable form.
func (s *Session) Record() model.SessionRecord {
	r := model.SessionRecord{
		ID:        s.id,
		Favorites: s.Favorites(),
		DarkMode:  s.darkMode,
		CreatedAt: s.createdAt,
		UpdatedAt: s.updatedAt,
	}
	if s.user != nil {
		r.UserID = s.user.ID
	}
	return r
}

// Restore rebuilds a session from a stored record. lookup resolves the
// record's user id; if it returns false the session comes back anonymous.
func Restore(r model.SessionRecord, lookup func(id string) (model.User, bool)) *Session {
	s := &Session{
		id:        r.ID,
		darkMode:  r.DarkMode,
		createdAt: r.CreatedAt,
		updatedAt: r.UpdatedAt,
	}
	if r.UserID == "" {
		return s
	}
	if u, ok := lookup(r.UserID); ok {
		u.Favorites = nil
		s.user = &u
		s.favorites = slices.Clone(r.Favorites)
		if s.favorites == nil {
			s.favorites = []string{}
		}
	}
	return s
}

// stamp records activity at now. The Manager stamps every session it saves,
// using its own clock.
func (s *Session) stamp(now time.Time) {
	s.updatedAt = now
}
