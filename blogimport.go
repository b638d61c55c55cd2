// Package blogimport converts a Blogger Atom export into Markdown posts with
// front matter, one file per post, under a static site's posts directory.
package blogimport

import (
	"context"

	"github.com/goliatone/go-blogimport/internal/atom"
	bloggercmd "github.com/goliatone/go-blogimport/internal/commands/blogger"
	"github.com/goliatone/go-blogimport/internal/di"
	"github.com/goliatone/go-blogimport/internal/importer"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

type (
	Post             = interfaces.Post
	ImportOptions    = interfaces.ImportOptions
	ImportResult     = interfaces.ImportResult
	EntryFailure     = interfaces.EntryFailure
	ConversionResult = interfaces.ConversionResult
	HTMLConverter    = interfaces.HTMLConverter
	PostWriter       = interfaces.PostWriter
	Logger           = interfaces.Logger
	LoggerProvider   = interfaces.LoggerProvider

	// ImportFeedCommand is the command message accepted by ImportHandler.
	ImportFeedCommand = bloggercmd.ImportFeedCommand
	// IncompleteError is returned with a result when some entries failed.
	IncompleteError = importer.IncompleteError
)

var (
	ErrMalformedFeed    = atom.ErrMalformedFeed
	ErrFeedUnreadable   = atom.ErrFeedUnreadable
	ErrImportIncomplete = importer.ErrImportIncomplete
	ErrImportAborted    = importer.ErrImportAborted
)

// Option customises module construction.
type Option = di.Option

// WithLoggerProvider overrides the provider selected by Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option {
	return di.WithLoggerProvider(provider)
}

// WithWriter overrides how posts are written to disk.
func WithWriter(writer PostWriter) Option {
	return di.WithWriter(writer)
}

// WithConverter overrides the HTML to Markdown converter.
func WithConverter(converter HTMLConverter) Option {
	return di.WithConverter(converter)
}

// Module is the importer façade.
type Module struct {
	container *di.Container
}

// New validates cfg and builds a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Import converts every post in importFile into siteRoot's posts directory.
func (m *Module) Import(ctx context.Context, siteRoot, importFile string) (*ImportResult, error) {
	return m.container.Importer().Import(ctx, ImportOptions{
		SiteRoot:   siteRoot,
		ImportFile: importFile,
		DryRun:     m.container.Config().Import.DryRun,
	})
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config()
}

// LoggerProvider returns the provider every service logs through.
func (m *Module) LoggerProvider() LoggerProvider {
	return m.container.LoggerProvider()
}

// Importer returns the underlying import service.
func (m *Module) Importer() interfaces.Importer {
	return m.container.Importer()
}

// ImportHandler returns a go-command handler for ImportFeedCommand. observer,
// when set, receives every run's result.
func (m *Module) ImportHandler(observer func(*ImportResult)) (*bloggercmd.ImportFeedHandler, error) {
	if observer == nil {
		return m.container.ImportCommandHandler()
	}
	return m.container.ImportCommandHandler(bloggercmd.WithResultObserver(observer))
}

// Import runs a complete import with the default configuration and logging
// disabled.
func Import(siteRoot, importFile string) error {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "none"
	module, err := New(cfg)
	if err != nil {
		return err
	}
	_, err = module.Import(context.Background(), siteRoot, importFile)
	return err
}
