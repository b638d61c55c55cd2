package bloggercmd

import (
	"github.com/goliatone/go-blogimport/internal/commands"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract used when wiring
// handlers into a dispatcher.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	observer    ResultObserver
	handlerOpts []commands.HandlerOption[ImportFeedCommand]
}

// WithResultObserver forwards every import result to observer.
func WithResultObserver(observer ResultObserver) Option {
	return func(cfg *options) {
		cfg.observer = observer
	}
}

// WithHandlerOptions forwards options to the handler constructor.
func WithHandlerOptions(opts ...commands.HandlerOption[ImportFeedCommand]) Option {
	return func(cfg *options) {
		cfg.handlerOpts = append(cfg.handlerOpts, opts...)
	}
}

// RegisterBloggerCommands builds the import handler and registers it with
// reg when one is supplied.
func RegisterBloggerCommands(reg CommandRegistry, importer interfaces.Importer, provider interfaces.LoggerProvider, opts ...Option) (*ImportFeedHandler, error) {
	if importer == nil {
		return nil, ErrImporterRequired
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	handler := NewImportFeedHandler(importer, commands.CommandLogger(provider, "blogger"), cfg.observer, cfg.handlerOpts...)
	if reg != nil {
		if err := reg.RegisterCommand(handler); err != nil {
			return nil, err
		}
	}
	return handler, nil
}
