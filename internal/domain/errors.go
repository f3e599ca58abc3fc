package domain

import "errors"

var (
	// ErrNotFound signals that a referenced entity does not exist or is
	// outside the caller's visibility scope.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken signals a violation of the email uniqueness invariant.
	ErrEmailTaken = errors.New("email already registered")
)
