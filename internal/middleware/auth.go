package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/podryad/podryad/internal/auth"
	"github.com/podryad/podryad/internal/domain"
)

type contextKey string

const (
	// ContextKeyActor is the key for storing the actor in request context.
	ContextKeyActor contextKey = "actor"
)

// AuthMiddleware handles Bearer token authentication.
type AuthMiddleware struct {
	tokens *auth.TokenManager
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// bearerToken extracts the token from the Authorization header, empty
// when absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// Authenticate validates the Bearer token and adds the actor to the
// request context. Requests without a valid token are rejected.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		actor, err := m.tokens.Verify(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyActor, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MaybeAuthenticate adds the actor to the context when a valid token is
// present and lets the request through anonymously otherwise. Used on
// public endpoints whose response depends on who is asking.
func (m *AuthMiddleware) MaybeAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if actor, err := m.tokens.Verify(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ContextKeyActor, actor))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// GetActorFromContext retrieves the authenticated actor from request
// context. Anonymous when the request carried no valid token.
func GetActorFromContext(ctx context.Context) domain.Actor {
	actor, ok := ctx.Value(ContextKeyActor).(domain.Actor)
	if !ok {
		return domain.Anonymous
	}
	return actor
}
