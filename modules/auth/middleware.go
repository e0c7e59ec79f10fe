package auth

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gigledger/gigledger/core"
)

// Middleware validates the Bearer session token and injects its claims into
// the request context. Requests without a valid token get 401.
func Middleware(tokens *TokenIssuer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := bearerToken(r)
			if err != nil {
				core.JSONError(w, core.ErrUnauthorized)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				core.JSONError(w, core.ErrUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaims(r.Context(), claims)))
		})
	}
}

// RequireRole gates a route to requests whose verified claims carry one of
// the given roles. Must be mounted inside Middleware.
func RequireRole(roles ...string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				core.JSONError(w, core.ErrUnauthorized)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				core.JSONError(w, core.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrTokenInvalid
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrTokenInvalid
	}

	return parts[1], nil
}
