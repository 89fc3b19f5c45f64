package common

import "errors"

var (
	// ErrValidation marks a local required-field failure; no request was sent.
	ErrValidation = errors.New("validation error")

	// ErrUnauthenticated means the session holds no token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrDeclined is returned when the user answers "no" to a confirmation.
	ErrDeclined = errors.New("declined by user")
)

// ValidationError carries the user-facing text of a local validation
// failure. errors.Is(err, ErrValidation) holds for it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a *ValidationError with msg.
func Invalid(msg string) error {
	return &ValidationError{Message: msg}
}
