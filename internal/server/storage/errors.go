package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken indicates that a user with this email already exists.
	// Returned when the UNIQUE constraint on users.email rejects an insert,
	// which makes concurrent duplicate registrations race-safe.
	ErrEmailTaken = errors.New("email already in use")

	// ErrDocumentNotFound indicates that document was not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNewsNotFound indicates that news item was not found
	ErrNewsNotFound = errors.New("news item not found")

	// ErrAlreadySubscribed indicates that email is already subscribed
	ErrAlreadySubscribed = errors.New("email already subscribed")
)
