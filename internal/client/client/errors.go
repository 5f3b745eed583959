package client

import "errors"

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoadFailed         = errors.New("failed to load")
	ErrRejected           = errors.New("request rejected")
)
