// Package auth provides request authentication for the hydration service:
// JWT bearer tokens signed with an HMAC secret, and pre-shared API keys
// stored as bcrypt hashes.
//
// # Bearer tokens
//
//	svc, err := auth.NewService(cfg.JWT)
//	token, err := svc.Generate("client-name", "movie", "series")
//	claims, err := svc.Parse(token)
//
// Tokens carry an optional scope list naming the trees the caller may
// hydrate; an empty list allows all trees. Middleware stores parsed claims
// in the request context:
//
//	ctx = auth.WithClaims(ctx, claims)
//	claims, ok := auth.ClaimsFromContext(ctx)
//
// # API keys
//
//	key, _ := auth.NewAPIKey(32)
//	hash, _ := auth.HashAPIKey(key)   // goes into config
//	verifier := auth.NewAPIKeyVerifier(cfg.APIKeys)
//	client, err := verifier.Verify(presentedKey)
package auth
