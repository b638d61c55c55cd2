package bloggercmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blogimport/internal/atom"
	"github.com/goliatone/go-blogimport/internal/commands"
	"github.com/goliatone/go-blogimport/internal/importer"
	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

const importOperation = "blogger.import_feed"

// ErrImporterRequired is returned when no importer is wired.
var ErrImporterRequired = errors.New("blogger command: importer is required")

// Text codes reported for import failures.
const (
	TextCodeFeedMalformed    = "FEED_MALFORMED"
	TextCodeFeedUnreadable   = "FEED_UNREADABLE"
	TextCodeImportAborted    = "IMPORT_ABORTED"
	TextCodeImportIncomplete = "IMPORT_INCOMPLETE"
)

// ErrorRules classify importer failures at the command boundary.
var ErrorRules = []commands.ErrorRule{
	{Target: atom.ErrMalformedFeed, Category: goerrors.CategoryBadInput, TextCode: TextCodeFeedMalformed, Message: "blogger export is not well-formed XML"},
	{Target: atom.ErrFeedUnreadable, Category: goerrors.CategoryNotFound, TextCode: TextCodeFeedUnreadable, Message: "blogger export could not be read"},
	{Target: importer.ErrImportAborted, Category: goerrors.CategoryOperation, TextCode: TextCodeImportAborted, Message: "import aborted"},
	{Target: importer.ErrImportIncomplete, Category: goerrors.CategoryOperation, TextCode: TextCodeImportIncomplete, Message: "import finished with failures"},
}

var _ command.Commander[ImportFeedCommand] = (*ImportFeedHandler)(nil)

// ResultObserver receives the result of every run, including runs that
// finished with entry failures.
type ResultObserver func(*interfaces.ImportResult)

// ImportFeedHandler runs a Blogger import through the shared command handler.
type ImportFeedHandler struct {
	inner *commands.Handler[ImportFeedCommand]
}

// NewImportFeedHandler binds the handler to importer. observer may be nil.
func NewImportFeedHandler(importer interfaces.Importer, logger interfaces.Logger, observer ResultObserver, opts ...commands.HandlerOption[ImportFeedCommand]) *ImportFeedHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ImportFeedCommand) error {
		if importer == nil {
			return ErrImporterRequired
		}

		result, err := importer.Import(ctx, interfaces.ImportOptions{
			SiteRoot:   msg.SiteRoot,
			ImportFile: msg.ImportFile,
			DryRun:     msg.DryRun,
		})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"run_id":        result.RunID.String(),
				"entries_count": result.EntriesSeen,
				"posts_count":   result.PostsSelected,
				"written_count": len(result.Written),
				"skipped_count": result.Skipped,
				"fallbacks":     result.Fallbacks,
				"dry_run":       result.DryRun,
			}).Info("blogger.command.import_feed.completed")
			if observer != nil {
				observer(result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ImportFeedCommand]{
		commands.WithLogger[ImportFeedCommand](baseLogger),
		commands.WithOperation[ImportFeedCommand](importOperation),
		commands.WithMessageFields[ImportFeedCommand](func(msg ImportFeedCommand) map[string]any {
			fields := map[string]any{
				"site_root":   msg.SiteRoot,
				"import_file": msg.ImportFile,
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ImportFeedCommand](baseLogger)),
		commands.WithErrorRules[ImportFeedCommand](ErrorRules...),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportFeedHandler{
		inner: commands.NewHandler[ImportFeedCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ImportFeedCommand].
func (h *ImportFeedHandler) Execute(ctx context.Context, msg ImportFeedCommand) error {
	return h.inner.Execute(ctx, msg)
}
