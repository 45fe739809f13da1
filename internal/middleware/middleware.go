// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as token authentication, request logging, CORS,
// rate limiting, tracing and panic recovery
package middleware
