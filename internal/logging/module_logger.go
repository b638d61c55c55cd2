package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

const (
	rootModule    = "blogimport"
	feedModule    = "blogimport.feed"
	importModule  = "blogimport.import"
	convertModule = "blogimport.convert"
	emitModule    = "blogimport.emit"
)

const (
	fieldEntryID    = "entry_id"
	fieldEntryTitle = "title"
	fieldEntryStage = "stage"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// FeedLogger returns the logger namespace reserved for feed loading.
func FeedLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, feedModule)
}

// ImportLogger returns the logger namespace reserved for the import pipeline.
func ImportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, importModule)
}

// ConvertLogger returns the logger namespace reserved for HTML conversion.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// EmitLogger returns the logger namespace reserved for post emission.
func EmitLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, emitModule)
}

// WithEntryContext enriches the logger with the entry id, title and pipeline
// stage. Empty values are ignored.
func WithEntryContext(logger interfaces.Logger, entryID, title, stage string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(entryID); trimmed != "" {
		fields[fieldEntryID] = trimmed
	}
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		fields[fieldEntryTitle] = trimmed
	}
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		fields[fieldEntryStage] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
