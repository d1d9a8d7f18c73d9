package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type contextKey string

const (
	SessionIDKey contextKey = "sessionId"
)

// SessionHeader carries the session handle for clients that cannot set Authorization
const SessionHeader = "X-Session-Token"

// SessionAuthorizer validates a session handle for a session id
type SessionAuthorizer interface {
	Authorize(token, sessionID string) error
}

// AuthMiddleware binds requests to the session their handle was issued for
type AuthMiddleware struct {
	authorizer SessionAuthorizer
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(authorizer SessionAuthorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// RequireSession validates the handle against the {id} route variable
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			token = r.Header.Get(SessionHeader)
		}
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		id := mux.Vars(r)["id"]
		if err := m.authorizer.Authorize(token, id); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session token")
			return
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID extracts the authorized session id from context
func GetSessionID(ctx context.Context) string {
	if v := ctx.Value(SessionIDKey); v != nil {
		return v.(string)
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
