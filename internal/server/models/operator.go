// Package models defines server-side records persisted in the database and
// the identity handed out by the auth gate.
package models

import "time"

// Operator is an account in the credential store. The password itself is
// never stored: Verifier is sha256(argon2id(password, Salt)).
type Operator struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}

// Identity is who a session token speaks for.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
