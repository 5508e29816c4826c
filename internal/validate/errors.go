// errors.go defines the validation error type and its sentinel causes.
//
// Sentinels describe the category of failure and are matched with
// errors.Is. Error carries the field name so messages can point at the
// offending input without the caller parsing strings.

package validate

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalid matches every validation failure.
	ErrInvalid = errors.New("invalid input")

	ErrRequired    = errors.New("value required")
	ErrInvalidID   = errors.New("invalid id")
	ErrInvalidName = errors.New("invalid name")
	ErrInvalidPath = errors.New("invalid file path")
	ErrInvalidDate = errors.New("invalid date")
	ErrTooLong     = errors.New("value too long")
)

// Error reports a rejected input field.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap exposes both the specific cause and ErrInvalid.
func (e *Error) Unwrap() []error {
	return []error{e.Err, ErrInvalid}
}

func fail(field string, err error) *Error {
	return &Error{Field: field, Err: err}
}
