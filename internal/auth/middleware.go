package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/session"
)

// CookieName is the cookie that carries the signed session id.
const CookieName = "session"

// contextKey is an unexported type used for context keys in this package.
// Only this package can create a key of type contextKey, so nothing else can
// read or shadow the session id stored in the context.
type contextKey string

const sessionIDKey contextKey = "sessionID"

// SessionStore is the part of session.Manager the middleware needs. Touch
// must return an apperror.ErrNotFound error for sessions that no longer exist.
type SessionStore interface {
	Open(ctx context.Context) (session.Snapshot, error)
	Touch(ctx context.Context, id string) (session.Snapshot, error)
}

const internalErrorBody = `{"error":"internal_error","message":"an unexpected error occurred"}`

// CookieOptions controls the attributes of the session cookie.
type CookieOptions struct {
	// Secure marks the cookie HTTPS-only. Leave off for local development.
	Secure bool
}

// Sessions is a middleware that makes sure every request has a session.
//
// It reads the JWT from the "session" HttpOnly cookie and touches the session
// it names, which keeps a session in use clear of the idle sweeper. If the
// cookie is missing, invalid, expired, or points at a session that has been
// swept, a new anonymous session is opened and a fresh cookie is set. Any
// other store failure is a 500: the browser keeps its cookie and its session
// for the next request. Either way the session id ends up in the request
// context for SessionIDFromContext.
//
// A valid token past half its lifetime is re-issued so that a browser in
// regular use keeps its cookie as well as its session.
//
// COOKIE-BASED TOKEN STORAGE:
// HttpOnly means JavaScript cannot read the cookie, which prevents XSS from
// stealing it. SameSite=Lax keeps it off cross-site POSTs.
func Sessions(tokens *TokenService, store SessionStore, opts CookieOptions, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id, refresh, err := resolveSession(r, tokens, store)
			if err != nil {
				logger.Error("loading session", slog.String("error", err.Error()))
				http.Error(w, internalErrorBody, http.StatusInternalServerError)
				return
			}
			if id == "" {
				snap, err := store.Open(ctx)
				if err != nil {
					logger.Error("opening session", slog.String("error", err.Error()))
					http.Error(w, internalErrorBody, http.StatusInternalServerError)
					return
				}
				id = snap.ID
				refresh = true
			}

			if refresh {
				if err := setCookie(w, tokens, id, opts); err != nil {
					logger.Error("issuing session cookie",
						slog.String("sessionID", id),
						slog.String("error", err.Error()),
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSessionID(ctx, id)))
		})
	}
}

// WithSessionID returns a copy of ctx carrying the session id.
// Handlers tests use it to skip the cookie round trip.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext retrieves the session id placed by Sessions.
//
// Returns ("", false) if the request never went through the middleware.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok && id != ""
}

// resolveSession returns the session id from a valid cookie naming a live
// session, and whether the cookie should be re-issued. It returns "" when a
// new session is needed, and an error only when the store failed.
func resolveSession(r *http.Request, tokens *TokenService, store SessionStore) (string, bool, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false, nil
	}

	id, expires, err := tokens.Validate(cookie.Value)
	if err != nil {
		return "", false, nil
	}
	if _, err := store.Touch(r.Context(), id); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	refresh := time.Until(expires) < tokens.TTL()/2
	return id, refresh, nil
}

func setCookie(w http.ResponseWriter, tokens *TokenService, id string, opts CookieOptions) error {
	token, err := tokens.Generate(id)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
