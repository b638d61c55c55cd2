package convert

import (
	"errors"
	"fmt"
)

var ErrConversionFailed = errors.New("convert: html conversion failed")

// Stages at which a conversion can be abandoned.
const (
	StageWellFormed = "xhtml"
	StageConvert    = "convert"
	StageEmpty      = "empty"
)

// ConversionError is the diagnostic attached to a fallback result. It is
// never returned as an error by the converter.
type ConversionError struct {
	Stage string
	Err   error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s (%s)", ErrConversionFailed, e.Stage)
	}
	return fmt.Sprintf("%s (%s): %v", ErrConversionFailed, e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConversionFailed}
	}
	return []error{ErrConversionFailed, e.Err}
}
