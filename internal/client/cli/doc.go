// Package cli provides the interactive userdesk terminal client.
//
// It wires configuration, the local session store, the HTTP API client and
// an interactive REPL. On start a stored session token opens the dashboard
// directly; otherwise the user is asked to log in first.
//
// Commands:
//   - login / logout
//   - list, search, sort, page, next, prev, refresh
//   - show and edit a single user
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
