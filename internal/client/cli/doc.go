// Package cli provides the interactive devlog command-line client.
//
// It wires configuration, the local session database, the API client and the
// entries controller into a REPL. The REPL is the router: each command is a
// route, commands that need a session are guarded, and the help text depends
// on whether the user is logged in.
//
// Key features:
//   - Register / Login (username or e-mail) / Logout / Whoami
//   - Entries: list, search, filter, show, add, edit, save, delete, export
//   - Title and tag generation for the entry form
//   - Snippets: list, search, filter, show, add, edit, delete, export
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
