package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/anshgupta/community-board/internal/api"
	"github.com/anshgupta/community-board/internal/auth"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// BearerToken extracts the token from an Authorization: Bearer header, or
// returns "" when the header is absent or malformed.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// ClaimsFrom returns the verified claims attached by RequireAuth or
// OptionalAuth, if any.
func ClaimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

// RequireAuth gates a route on a valid bearer token and injects the
// verified claims into the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				api.Error(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches claims when a valid bearer token is present and
// otherwise passes the request through anonymously. Public read endpoints
// use it so an expired token downgrades the view instead of failing it.
func OptionalAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := BearerToken(r); token != "" {
				if claims, err := tokens.Verify(token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
