package auth

import "context"

// contextKey is unexported to prevent collisions with other packages.
type contextKey struct{}

var claimsKey = contextKey{}

// WithClaims stores validated claims in the context. Middleware calls this
// after authenticating a request.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext retrieves validated claims from the context. The second
// return is false when the request was not authenticated with a token, for
// example when auth is disabled or an API key was used.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
