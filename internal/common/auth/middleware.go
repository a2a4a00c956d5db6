package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/logger"
)

type contextKey string

const claimsContextKey = contextKey("claims")

// Revoker reports whether a session has been invalidated by logout.
type Revoker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Middleware authenticates every request before the handlers run.
// The session token comes from the access_token cookie, with the
// Authorization header as a fallback for non-browser clients.
type Middleware struct {
	manager    *Manager
	revoker    Revoker
	cookieName string
}

func NewMiddleware(manager *Manager, revoker Revoker, cookieName string) *Middleware {
	return &Middleware{manager: manager, revoker: revoker, cookieName: cookieName}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.extractToken(r)
		if token == "" {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		claims, err := m.manager.ParseToken(token)
		if err != nil {
			http.Error(w, "session expired or invalid", http.StatusUnauthorized)
			return
		}

		if m.revoker != nil {
			revoked, err := m.revoker.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				logger.Error("session_revocation_check_failed", "Failed to check session revocation", err, logger.User(claims.UserID))
				http.Error(w, "session check failed", http.StatusServiceUnavailable)
				return
			}
			if revoked {
				http.Error(w, "session expired or invalid", http.StatusUnauthorized)
				return
			}
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) extractToken(r *http.Request) string {
	if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); h != "" {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// FromContext returns the claims the middleware attached, or nil when
// the request never passed through Authenticate.
func FromContext(r *http.Request) *Claims {
	claims, ok := r.Context().Value(claimsContextKey).(*Claims)
	if !ok {
		return nil
	}
	return claims
}
