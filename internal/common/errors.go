// Package common defines shared constants and sentinel errors used across
// the AgriSmart client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyCredential  = errors.New("empty credential")

	// API errors.
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnavailable       = errors.New("server unavailable")
	ErrNotFound          = errors.New("not found")
	ErrContractViolation = errors.New("unexpected response shape")

	// Validation errors (caught before any network call).
	ErrValidation = errors.New("validation error")

	// Preference errors.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Messaging errors.
	ErrNotJoined     = errors.New("no active room")
	ErrAlreadyActive = errors.New("room already active")
)
