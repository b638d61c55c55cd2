package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached by the shared handler.
const (
	TextCodeValidation    = "COMMAND_VALIDATION_FAILED"
	TextCodeCanceled      = "COMMAND_CONTEXT_CANCELED"
	TextCodeTimeout       = "COMMAND_CONTEXT_TIMEOUT"
	TextCodeContextError  = "COMMAND_CONTEXT_ERROR"
	TextCodeExecuteFailed = "COMMAND_EXECUTION_FAILED"
)

// ErrorRule maps errors matching Target to a go-errors category and text
// code. Rules are tried in order before the handler's defaults.
type ErrorRule struct {
	Target   error
	Category goerrors.Category
	TextCode string
	Message  string
}

// wrap keeps err as the source, even when err already holds a go-errors
// value, so sentinels below it stay reachable.
func (r ErrorRule) wrap(err error) *goerrors.Error {
	wrapped := goerrors.New(r.Message, r.Category).WithTextCode(r.TextCode)
	wrapped.Source = err
	return wrapped
}

var contextRules = []ErrorRule{
	{Target: context.Canceled, Category: goerrors.CategoryCommand, TextCode: TextCodeCanceled, Message: "command execution cancelled"},
	{Target: context.DeadlineExceeded, Category: goerrors.CategoryCommand, TextCode: TextCodeTimeout, Message: "command execution deadline exceeded"},
}

var (
	validationFallback = ErrorRule{Category: goerrors.CategoryValidation, TextCode: TextCodeValidation, Message: "command validation failed"}
	contextFallback    = ErrorRule{Category: goerrors.CategoryCommand, TextCode: TextCodeContextError, Message: "command context error"}
	executeFallback    = ErrorRule{Category: goerrors.CategoryCommand, TextCode: TextCodeExecuteFailed, Message: "command execution failed"}
)

// classify wraps err with the first matching rule. Errors already carrying a
// go-errors value are left alone unless a rule claims them.
func classify(err error, rules []ErrorRule, fallback ErrorRule) error {
	if err == nil {
		return nil
	}
	for _, rule := range rules {
		if rule.Target != nil && errors.Is(err, rule.Target) {
			return rule.wrap(err)
		}
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return fallback.wrap(err)
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
