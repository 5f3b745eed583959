// Package common defines shared constants and sentinel errors used across
// client and server layers of userdesk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth gate errors. ErrInvalidCredentials never says which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDataLoad covers every failure of the directory collaborator.
	ErrDataLoad = errors.New("failed to load")

	// Validation errors for submitted records and queries.
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
