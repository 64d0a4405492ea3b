package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicateEmail is returned when an insert would violate the unique
	// email constraint on users.
	ErrDuplicateEmail = errors.New("persistence: email already registered")
	// ErrConstraintViolation is returned for CHECK constraint failures and
	// records missing required attributes.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrForeignKeyViolation is returned when a referenced record does not exist.
	ErrForeignKeyViolation = errors.New("persistence: foreign key violation")
)
