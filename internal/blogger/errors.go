package blogger

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField = errors.New("blogger: required field is missing")
	ErrInvalidDate  = errors.New("blogger: date could not be parsed")
)

// MissingFieldError reports a required entry element that is absent or blank.
type MissingFieldError struct {
	EntryID string
	Field   string
}

func (e *MissingFieldError) Error() string {
	if e.EntryID == "" {
		return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
	}
	return fmt.Sprintf("%s: %s (entry %s)", ErrMissingField, e.Field, e.EntryID)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// DateParseError reports a timestamp that matches none of the accepted layouts.
type DateParseError struct {
	EntryID string
	Field   string
	Value   string
	Err     error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: %s=%q (entry %s): %v", ErrInvalidDate, e.Field, e.Value, e.EntryID, e.Err)
}

func (e *DateParseError) Unwrap() []error {
	return []error{ErrInvalidDate, e.Err}
}
