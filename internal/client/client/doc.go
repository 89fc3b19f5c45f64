// Package client talks to the journal HTTP/JSON API.
//
// # Overview
//
// HTTPClient builds requests against a configured base URL, attaches the
// headers supplied by a HeaderSource (normally the session store) and decodes
// JSON responses into the types of package models. It keeps no state between
// calls apart from the underlying *http.Client.
//
// # Error Handling
//
// Failures are reported in three shapes that callers match with errors.Is and
// errors.As:
//
//   - ErrUnavailable wraps transport failures (connection refused, DNS, a
//     cancelled context).
//   - ErrBadResponse wraps a success status whose body is not the expected
//     JSON.
//   - *APIError carries a non-2xx status and the server's "error" or "message"
//     text. errors.Is(err, ErrUnauthorized) holds for 401 and 403.
//   - context errors are returned wrapped in ErrUnavailable, so
//     errors.Is(err, context.Canceled) still works.
//
// # Concurrency
//
// HTTPClient is safe for concurrent use.
package client
