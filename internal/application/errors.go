package application

import "errors"

var (
	// ErrUnauthorized is returned when the acting user lacks permission for an
	// operation, including anonymous access to authenticated routes.
	ErrUnauthorized = errors.New("application: unauthorized")
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("application: email already registered")
	// ErrUnknownEmail is returned at login when no account matches the email.
	ErrUnknownEmail = errors.New("application: unknown email")
	// ErrInvalidCredentials is returned at login when the password does not match.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrInvalidRole is returned when a registration names a role outside the
	// closed client/professional enum.
	ErrInvalidRole = errors.New("application: invalid role")
	// ErrSessionExpired is returned when a resolved session is past its expiry.
	ErrSessionExpired = errors.New("application: session expired")
	// ErrSessionRevoked is returned when a resolved session was destroyed.
	ErrSessionRevoked = errors.New("application: session revoked")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
