package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeySessionToken = "session_token"
	KeyUsername     = "username"
)

// Repository is a small key/value store for client state that must survive
// restarts.
type Repository interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
