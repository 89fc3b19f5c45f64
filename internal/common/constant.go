// Package common contains constants, sentinel errors and small helpers shared
// by the client packages.
package common

// Header names used on every outbound API request.
const (
	AuthorizationHeader = "Authorization"
	ContentTypeHeader   = "Content-Type"
	RequestIDHeader     = "X-Request-ID"

	ContentTypeJSON = "application/json"
	BearerPrefix    = "Bearer "
)
