// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request logging, CORS, request correlation, tracing,
// the per-request database session, and panic recovery
package middleware
