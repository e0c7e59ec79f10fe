package auth

import "context"

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var claimsContextKey = &contextKey{name: "auth_claims"}

// SetClaims stores verified session claims in the context.
func SetClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok
}
