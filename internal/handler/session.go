package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/auth"
	"github.com/sakif/prompt-library/internal/service"
)

// SessionHandler exposes the browser session: login state, favorites,
// collections and the dark-mode flag.
//
// Every route sits behind auth.Sessions, so a session id is always in the
// request context. "Login" here is the mock login of the library: any
// request succeeds and authenticates the catalog's single user.
type SessionHandler struct {
	sessions *service.SessionService
	validate *Validator
	logger   *slog.Logger
}

func NewSessionHandler(s *service.SessionService, v *Validator, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: s, validate: v, logger: logger}
}

// loginRequest mirrors the login form. Its contents are checked for shape
// and then ignored.
type loginRequest struct {
	Email    string `json:"email"    validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"max=256"`
}

// HandleGet returns the session snapshot.
//
// HTTP: GET /api/session
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.sessions.Snapshot(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleLogin authenticates the session as the mock user.
//
// HTTP: POST /api/session/login
// REQUEST BODY (optional): {"email": "alex@example.com", "password": "..."}
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req loginRequest
	if err := decodeJSON(r, &req, true); err != nil {
		writeError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, err)
		return
	}

	snap, err := h.sessions.Login(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleLogout returns the session to anonymous.
//
// HTTP: POST /api/session/logout
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.sessions.Logout(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleToggleFavorite flips one prompt in the favorites.
//
// HTTP: POST /api/session/favorites/{id}
//
// Anonymous sessions get 200 with "applied": false; the toggle is a no-op
// rather than an error.
func (h *SessionHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := h.sessions.ToggleFavorite(r.Context(), sid, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleFavorites lists the favorite prompts in the order they were marked.
//
// HTTP: GET /api/session/favorites
func (h *SessionHandler) HandleFavorites(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	prompts, err := h.sessions.FavoritePrompts(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// HandleCollections lists the user's collections with prompts resolved.
//
// HTTP: GET /api/session/collections
func (h *SessionHandler) HandleCollections(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cols, err := h.sessions.Collections(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

// HandleToggleDarkMode flips the display flag.
//
// HTTP: POST /api/session/dark-mode
func (h *SessionHandler) HandleToggleDarkMode(w http.ResponseWriter, r *http.Request) {
	sid, err := sessionID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	snap, err := h.sessions.ToggleDarkMode(r.Context(), sid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// sessionID reads the id placed in the context by auth.Sessions.
func sessionID(r *http.Request) (string, error) {
	sid, ok := auth.SessionIDFromContext(r.Context())
	if !ok {
		return "", apperror.Unauthorized("no session")
	}
	return sid, nil
}
