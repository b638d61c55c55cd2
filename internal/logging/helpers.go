package logging

import (
	"context"
	"maps"

	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. Nil or empty maps are a no-op.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fieldsLogger.WithFields(maps.Clone(fields))
}

// RunFields describes one import run.
func RunFields(runID, siteRoot, importFile string, dryRun bool) map[string]any {
	fields := map[string]any{
		"run_id":      runID,
		"site_root":   siteRoot,
		"import_file": importFile,
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}

// WithRunContext stores fields on ctx and returns a logger bound to ctx.
// Loggers derived later with WithContext(ctx) carry the same fields.
func WithRunContext(ctx context.Context, logger interfaces.Logger, fields map[string]any) (context.Context, interfaces.Logger) {
	if logger == nil {
		logger = NoOp()
	}
	ctx = ContextWithFields(ctx, fields)
	return ctx, logger.WithContext(ctx)
}
