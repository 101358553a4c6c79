package domain

import "errors"

var (
	// ErrNoSession indicates the request carries no session cookie or the
	// session is not in the store.
	ErrNoSession = errors.New("no active session")

	// ErrSessionExpired indicates the stored credential's expiry claim is in
	// the past, or the credential could not be decoded at all. Both cases
	// fail closed into a logout.
	ErrSessionExpired = errors.New("session expired")

	// ErrAccessDenied indicates a role mismatch resolved by the access
	// policy. Never presented as a crash.
	ErrAccessDenied = errors.New("access denied")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
