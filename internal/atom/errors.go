package atom

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedFeed  = errors.New("atom: feed is not well-formed xml")
	ErrFeedUnreadable = errors.New("atom: feed could not be read")
)

// MalformedFeedError describes why an export could not be decoded. It is
// fatal for the whole import.
type MalformedFeedError struct {
	Offset int64
	Reason string
	Err    error
}

func (e *MalformedFeedError) Error() string {
	if e == nil {
		return ErrMalformedFeed.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s at offset %d: %s: %v", ErrMalformedFeed, e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s at offset %d: %s", ErrMalformedFeed, e.Offset, e.Reason)
}

func (e *MalformedFeedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedFeed}
	}
	return []error{ErrMalformedFeed, e.Err}
}
