// Package session holds the authenticated identity of the current user: a
// bearer token and a display username.
//
// The Store keeps both values in memory and mirrors them into a durable
// Storage (the SQLite metadata table in production). It is hydrated once at
// start-up, written on every non-empty change and cleared on logout.
package session
