// Package handler binds HTTP requests to typed structs, validates them and
// calls into the service layer.
//
// Endpoints are plain methods registered through Handle, HandleNoContent,
// HandleFile or HandleRedirect, which share one bind/validate/respond
// pipeline.
package handler
