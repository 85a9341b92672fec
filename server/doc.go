// Package server provides the HTTP surface of the hydration service: a Gin
// engine with h2c support, the standard middleware stack, operational
// endpoints, and the v1 hydration API.
//
// # API
//
// The HydrationAPI mounts three routes under /v1:
//
//	GET  /v1/trees               list registered tree names
//	GET  /v1/trees/:tree         describe one tree's definition
//	POST /v1/trees/:tree/hydrate run a tree against the request input
//
// A hydrate request carries the root input and an optional selection:
//
//	{"input": 603, "select": ["cast", "similar"]}
//
// The response wraps the merged document with run metadata:
//
//	{"data": {...}, "meta": {"run_id": "...", "tree": "movie", "duration_ms": 42}}
//
// # Middleware
//
// Built-in middleware (server/middleware): Recovery, RequestID, CORS,
// BodySizeLimit, RateLimit, RequestLogger, and Auth. ApplyMiddleware installs
// everything except Auth, which is applied per route group so probe endpoints
// stay open.
//
// # Operational endpoints
//
// RegisterDefaultEndpoints registers /health, /alive, /ready, /info,
// /version, and /metrics.
package server
