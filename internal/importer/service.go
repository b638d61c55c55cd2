// Package importer runs the Blogger export to posts pipeline: load the feed,
// select posts, extract their fields, convert the HTML and emit the files.
package importer

import (
	"context"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-blogimport/internal/atom"
	"github.com/goliatone/go-blogimport/internal/blogger"
	"github.com/goliatone/go-blogimport/internal/convert"
	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/internal/posts"
	"github.com/goliatone/go-blogimport/internal/runtimeconfig"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// Pipeline stages reported on EntryFailure.
const (
	StageExtract = "extract"
	StageEmit    = "emit"
)

// Option customises a Service.
type Option func(*Service)

// WithConverter overrides the HTML converter.
func WithConverter(converter interfaces.HTMLConverter) Option {
	return func(s *Service) {
		if converter != nil {
			s.converter = converter
		}
	}
}

// WithWriter overrides the post writer used for non dry runs.
func WithWriter(writer interfaces.PostWriter) Option {
	return func(s *Service) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithLoggerProvider wires module loggers from provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.provider = provider
	}
}

// WithRunIDGenerator overrides how run identifiers are produced.
func WithRunIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) {
		if fn != nil {
			s.newRunID = fn
		}
	}
}

// WithFeedLoader overrides how the export is read.
func WithFeedLoader(fn func(path string) (*atom.Feed, error)) Option {
	return func(s *Service) {
		if fn != nil {
			s.loadFeed = fn
		}
	}
}

// Service implements interfaces.Importer.
type Service struct {
	cfg       runtimeconfig.Config
	schemes   blogger.Schemes
	converter interfaces.HTMLConverter
	writer    interfaces.PostWriter
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	newRunID  func() uuid.UUID
	loadFeed  func(path string) (*atom.Feed, error)
}

var _ interfaces.Importer = (*Service)(nil)

// NewService builds a Service. The configuration is expected to be validated.
func NewService(cfg runtimeconfig.Config, opts ...Option) *Service {
	s := &Service{
		cfg: cfg,
		schemes: blogger.Schemes{
			Kind: cfg.Schemes.Kind,
			Post: cfg.Schemes.Post,
			Tag:  cfg.Schemes.Tag,
		}.WithDefaults(),
		writer:   posts.NewOSWriter(),
		newRunID: uuid.New,
		loadFeed: atom.LoadFile,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.ImportLogger(s.provider)
	if s.converter == nil {
		s.converter = convert.New(
			convert.WithSanitize(cfg.Convert.Sanitize),
			convert.WithLogger(logging.ConvertLogger(s.provider)),
		)
	}
	return s
}

// Import runs the whole pipeline. A feed that cannot be read or parsed fails
// before anything is written. Entry failures are handled according to the
// configured policies; when the run completes with failures the result is
// returned together with an *IncompleteError.
func (s *Service) Import(ctx context.Context, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if strings.TrimSpace(opts.SiteRoot) == "" {
		return nil, ErrSiteRootRequired
	}
	if strings.TrimSpace(opts.ImportFile) == "" {
		return nil, ErrImportFileRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dryRun := opts.DryRun || s.cfg.Import.DryRun
	result := &interfaces.ImportResult{
		RunID:   s.newRunID(),
		Written: []string{},
		DryRun:  dryRun,
	}
	ctx, logger := logging.WithRunContext(ctx, s.logger,
		logging.RunFields(result.RunID.String(), opts.SiteRoot, opts.ImportFile, dryRun))
	logger.Info("import.start")

	feed, err := s.loadFeed(opts.ImportFile)
	if err != nil {
		logger.Error("import.feed.failed", "error", err)
		return result, fmt.Errorf("importer: load %s: %w", opts.ImportFile, err)
	}
	logging.FeedLogger(s.provider).WithContext(ctx).Debug("feed.loaded", "path", opts.ImportFile, "entries", len(feed.Entries))

	writer := s.writer
	if dryRun {
		writer = posts.NewDryRunWriter()
	}
	emitter, err := posts.NewEmitter(opts.SiteRoot, writer, posts.EmitterConfig{
		PostsDir:      s.cfg.Import.PostsDir,
		Layout:        s.cfg.Import.Layout,
		SlugStyle:     s.cfg.Import.SlugStyle,
		SlugMaxLength: s.cfg.Import.SlugMaxLength,
	}, posts.WithEmitterLogger(logging.EmitLogger(s.provider)))
	if err != nil {
		return result, err
	}

	collector := goerrors.NewCollector(goerrors.WithContext(ctx), goerrors.WithMaxErrors(len(feed.Entries)+1))
	result.EntriesSeen = len(feed.Entries)

	for _, entry := range feed.Entries {
		if err := ctx.Err(); err != nil {
			logger.Warn("import.cancelled", "error", err)
			return result, fmt.Errorf("%w: %w", ErrImportAborted, err)
		}

		if !blogger.IsPost(entry, s.schemes) {
			logger.Debug("import.entry.ignored", "entry_id", entry.ID, "kind", blogger.Kind(entry, s.schemes))
			continue
		}
		result.PostsSelected++

		path, failure := s.importEntry(ctx, emitter, entry, result, logger)
		if failure == nil {
			result.Written = append(result.Written, path)
			continue
		}

		result.Skipped++
		result.Failures = append(result.Failures, *failure)
		collector.Add(collectable(*failure))
		entryLogger := logging.WithEntryContext(logger, failure.EntryID, failure.Title, failure.Stage)
		if s.aborts(failure.Stage) {
			entryLogger.Error("import.entry.aborted", "error", failure.Err)
			return result, fmt.Errorf("%w: %s %s: %w", ErrImportAborted, failure.Stage, describe(*failure), failure.Err)
		}
		entryLogger.Warn("import.entry.skipped", "error", failure.Err)
	}

	logger.Info("import.completed",
		"entries", result.EntriesSeen,
		"posts", result.PostsSelected,
		"written", len(result.Written),
		"skipped", result.Skipped,
		"fallbacks", result.Fallbacks,
	)

	if collector.HasErrors() {
		return result, &IncompleteError{
			Failures: result.Failures,
			Summary:  collector.Merge(),
		}
	}
	return result, nil
}

func (s *Service) importEntry(ctx context.Context, emitter *posts.Emitter, entry atom.Entry, result *interfaces.ImportResult, logger interfaces.Logger) (string, *interfaces.EntryFailure) {
	post, err := blogger.ExtractFields(entry, s.schemes)
	if err != nil {
		return "", &interfaces.EntryFailure{EntryID: entry.ID, Title: entry.Title, Stage: StageExtract, Err: err}
	}

	converted := s.converter.Convert(post.Content)
	if converted.Fallback {
		result.Fallbacks++
		logging.WithEntryContext(logger, post.ID, post.Title, "convert").
			Warn("import.entry.fallback", "error", converted.Err)
	}
	post.Content = converted.Markdown

	path, err := emitter.Emit(ctx, post)
	if err != nil {
		return "", &interfaces.EntryFailure{EntryID: post.ID, Title: post.Title, Stage: StageEmit, Err: err}
	}
	logger.Info("import.post.written", "entry_id", post.ID, "path", path)
	return path, nil
}

func (s *Service) aborts(stage string) bool {
	switch stage {
	case StageExtract:
		return s.cfg.Import.EntryPolicy == runtimeconfig.EntryPolicyAbort
	case StageEmit:
		return s.cfg.Import.WritePolicy == runtimeconfig.WritePolicyAbort
	default:
		return false
	}
}

func collectable(failure interfaces.EntryFailure) *goerrors.Error {
	category, code := goerrors.CategoryValidation, TextCodeEntryInvalid
	if failure.Stage == StageEmit {
		category, code = goerrors.CategoryOperation, TextCodeWriteFailed
	}
	return goerrors.Wrap(failure.Err, category, "entry "+describe(failure)).
		WithTextCode(code).
		WithMetadata(map[string]any{
			"entry_id": failure.EntryID,
			"title":    failure.Title,
			"stage":    failure.Stage,
		})
}

func describe(failure interfaces.EntryFailure) string {
	if failure.EntryID != "" {
		return failure.EntryID
	}
	if failure.Title != "" {
		return fmt.Sprintf("%q", failure.Title)
	}
	return "(unidentified)"
}
