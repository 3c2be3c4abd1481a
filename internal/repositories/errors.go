package repositories

import "errors"

var (
	// ErrUsernameTaken is the uniqueness-violation outcome of
	// UserRepository.Create. It is recoverable and expected under concurrent
	// registration; callers surface it as a boolean failure, never as a
	// server error.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrNotFound is returned by single-record lookups with no match. A
	// credential miss is reported as a nil record instead, so login cannot
	// tell an unknown username from a wrong password.
	ErrNotFound = errors.New("record not found")
)
