// Package middleware provides the Gin middleware stack for the hydration
// service: panic recovery, request IDs, request logging, CORS, body size
// limits, rate limiting, and authentication.
//
// Middleware is applied by server.ApplyMiddleware in a fixed order; the
// individual constructors are exported for services that assemble their own
// stack.
package middleware
