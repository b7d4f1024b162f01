package types

import "errors"

var (
	// ErrInvalidKind is returned for a destination type other than switch or server.
	ErrInvalidKind = errors.New("invalid destination type")

	// ErrNotSupported is returned for a destination kind that has no implementation.
	ErrNotSupported = errors.New("destination type not supported")

	// ErrTimeout is returned when a device call does not finish within the guard window.
	ErrTimeout = errors.New("timed out waiting for device")

	// ErrTokenNotFound is returned in strict mode when a token to rewrite is absent from the configuration.
	ErrTokenNotFound = errors.New("token not found in configuration")
)
