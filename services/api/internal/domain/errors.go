package domain

import "errors"

var (
	// ErrResourceNotFound is returned when a referenced user, gym or check-in does not exist.
	ErrResourceNotFound = errors.New("resource not found")
	// ErrEmailAlreadyExists is returned when registering an email that is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrInvalidCredentials is returned when the email is unknown or the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMaxDistanceExceeded is returned when the user is too far from the gym to check in.
	ErrMaxDistanceExceeded = errors.New("max distance reached")
	// ErrMaxNumberOfCheckIns is returned on a second check-in within the same calendar day.
	ErrMaxNumberOfCheckIns = errors.New("max number of check-ins reached")
	// ErrLateCheckInValidation is returned when validation happens after the validation window.
	ErrLateCheckInValidation = errors.New("the check-in can only be validated until 20 minutes of its creation")
)

// ValidationError reports malformed input before any use case runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
