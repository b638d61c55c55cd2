// Package di wires the importer's services from a runtime configuration.
package di

import (
	"fmt"
	"os"
	"strings"

	bloggercmd "github.com/goliatone/go-blogimport/internal/commands/blogger"
	"github.com/goliatone/go-blogimport/internal/convert"
	"github.com/goliatone/go-blogimport/internal/importer"
	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/internal/logging/console"
	"github.com/goliatone/go-blogimport/internal/logging/gologger"
	"github.com/goliatone/go-blogimport/internal/runtimeconfig"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithWriter overrides the filesystem writer.
func WithWriter(writer interfaces.PostWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithConverter overrides the HTML to Markdown converter.
func WithConverter(converter interfaces.HTMLConverter) Option {
	return func(c *Container) {
		c.converter = converter
	}
}

// Container holds the services built for one configuration.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	writer         interfaces.PostWriter
	converter      interfaces.HTMLConverter

	importer *importer.Service
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.converter == nil {
		c.converter = convert.New(
			convert.WithSanitize(cfg.Convert.Sanitize),
			convert.WithLogger(logging.ConvertLogger(c.loggerProvider)),
		)
	}

	c.importer = importer.NewService(cfg,
		importer.WithLoggerProvider(c.loggerProvider),
		importer.WithConverter(c.converter),
		importer.WithWriter(c.writer),
	)
	return c, nil
}

// Config returns the configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Importer returns the import service.
func (c *Container) Importer() interfaces.Importer {
	return c.importer
}

// ImportCommandHandler builds the command handler that fronts the importer.
func (c *Container) ImportCommandHandler(opts ...bloggercmd.Option) (*bloggercmd.ImportFeedHandler, error) {
	return bloggercmd.RegisterBloggerCommands(nil, c.importer, c.loggerProvider, opts...)
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, err := console.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", runtimeconfig.ErrLoggingLevelInvalid, err)
		}
		return console.NewProvider(console.Options{Writer: os.Stderr, MinLevel: level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{Level: cfg.Level, Format: cfg.Format})
	case "none":
		return noopProvider{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
