// Package client contains client-side building blocks for userdesk.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     userdesk server: Login, Session, Users, UserDetail, UpdateUser, Ping.
//  2. An HTTP/JSON implementation (see HTTPClient) that attaches the session
//     token as a bearer header and maps status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite file and applying embedded goose migrations.
//
// # Error Handling
//
// Sentinel errors, matched with errors.Is:
//
//   - ErrInvalidCredentials: login refused
//   - ErrUnauthorized: missing, invalid or expired session
//   - ErrRejected: the server refused the input (400)
//   - ErrLoadFailed: the server could not load data (5xx)
//   - ErrUnavailable: the server could not be reached
package client
