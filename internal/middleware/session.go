package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ukydev/motor-quotation/internal/session"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	SessionContextKey contextKey = "session"

	// SessionHeader carries the wizard session token. A bearer
	// Authorization header is accepted as well.
	SessionHeader = "X-Wizard-Session"
)

// SessionMiddleware resolves the wizard session token of a request
type SessionMiddleware struct {
	sessions *session.Service
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions *session.Service) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
	}
}

// RequireSession validates the session token and adds its claims to the
// request context.
func (m *SessionMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Session token required")
			return
		}

		claims, err := m.sessions.Parse(token)
		if err != nil {
			msg := "Invalid session"
			if errors.Is(err, session.ErrExpiredToken) {
				msg = "Session expired"
			}
			writeError(w, http.StatusUnauthorized, msg)
			return
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TokenFromRequest returns the session token from the session header or,
// failing that, a bearer Authorization header.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(SessionHeader); token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetSessionFromContext extracts the session claims from request context
func GetSessionFromContext(ctx context.Context) (*session.Claims, bool) {
	claims, ok := ctx.Value(SessionContextKey).(*session.Claims)
	return claims, ok
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
