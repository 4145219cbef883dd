package auth

import "errors"

var (
	// ErrInvalidCredentials covers both "no such user" and "wrong
	// password" so the two cases are indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrConfigIncomplete means required backend settings are missing;
	// the attempt fails before any network traffic.
	ErrConfigIncomplete = errors.New("authentication backend not fully configured")

	// ErrBackendUnreachable means the remote server could not be reached.
	ErrBackendUnreachable = errors.New("authentication server unreachable")

	// ErrCredentialsRejected means the remote server was reached but
	// rejected the login or bind step.
	ErrCredentialsRejected = errors.New("authentication server rejected credentials")

	// ErrBackendNotRegistered is returned by Open for an unknown mode.
	ErrBackendNotRegistered = errors.New("unknown authentication backend")
)
