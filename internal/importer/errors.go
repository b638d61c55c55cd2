package importer

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

var (
	ErrSiteRootRequired   = errors.New("importer: site root is required")
	ErrImportFileRequired = errors.New("importer: import file is required")
	ErrImportIncomplete   = errors.New("importer: import finished with failures")
	ErrImportAborted      = errors.New("importer: import aborted")
)

// Text codes attached to collected entry failures.
const (
	TextCodeEntryInvalid = "ENTRY_INVALID"
	TextCodeWriteFailed  = "POST_WRITE_FAILED"
)

// IncompleteError is returned alongside a result when some entries could not
// be imported. Summary is the collector's aggregate of every failure.
type IncompleteError struct {
	Failures []interfaces.EntryFailure
	Summary  *goerrors.Error
}

func (e *IncompleteError) Error() string {
	if e.Summary == nil {
		return fmt.Sprintf("%s: %d entries failed", ErrImportIncomplete, len(e.Failures))
	}
	return fmt.Sprintf("%s: %d entries failed: %s", ErrImportIncomplete, len(e.Failures), e.Summary.Message)
}

func (e *IncompleteError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+2)
	errs = append(errs, ErrImportIncomplete)
	if e.Summary != nil {
		errs = append(errs, e.Summary)
	}
	for _, failure := range e.Failures {
		if failure.Err != nil {
			errs = append(errs, failure.Err)
		}
	}
	return errs
}
