// Package common defines shared constants and sentinel errors used across
// client and server layers of lifedash. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Store-level errors.
	ErrNotFound      = errors.New("not found")
	ErrTrashDisabled = errors.New("trash is not enabled for this collection")
	ErrInvalidRecord = errors.New("invalid record")

	// Remote mirror errors. Any failure talking to a mirror wraps
	// ErrRemoteUnavailable.
	ErrRemoteUnavailable   = errors.New("remote unavailable")
	ErrRemoteNotConfigured = errors.New("remote not configured")

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
)
