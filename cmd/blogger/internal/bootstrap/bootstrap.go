package bootstrap

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"

	blogimport "github.com/goliatone/go-blogimport"
	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "BLOGIMPORT_"

// DefaultEnvFile is loaded when present.
const DefaultEnvFile = ".env"

// Options captures configuration for the blogger CLI bootstraps. Nil and
// empty fields leave the environment or default value in place.
type Options struct {
	EnvFile string
	// Lookuper replaces the process environment.
	Lookuper envconfig.Lookuper

	PostsDir       string
	Layout         string
	SlugStyle      string
	EntryPolicy    string
	WritePolicy    string
	DryRun         *bool
	Sanitize       *bool
	LogProvider    string
	LogLevel       string
	LogFormat      string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the importer module and a CLI scoped logger.
type Module struct {
	Module *blogimport.Module
	Config blogimport.Config
	Logger interfaces.Logger
}

// Env mirrors the BLOGIMPORT_* environment variables.
type Env struct {
	PostsDir      *string `env:"POSTS_DIR, noinit"`
	Layout        *string `env:"LAYOUT, noinit"`
	SlugStyle     *string `env:"SLUG_STYLE, noinit"`
	SlugMaxLength *int    `env:"SLUG_MAX_LENGTH, noinit"`
	EntryPolicy   *string `env:"ON_ENTRY_ERROR, noinit"`
	WritePolicy   *string `env:"ON_WRITE_ERROR, noinit"`
	DryRun        *bool   `env:"DRY_RUN, noinit"`
	Sanitize      *bool   `env:"SANITIZE, noinit"`
	LogProvider   *string `env:"LOG_PROVIDER, noinit"`
	LogLevel      *string `env:"LOG_LEVEL, noinit"`
	LogFormat     *string `env:"LOG_FORMAT, noinit"`
}

// LoadConfig layers the defaults, the env file, the environment and opts, in
// that order.
func LoadConfig(ctx context.Context, opts Options) (blogimport.Config, error) {
	cfg := blogimport.DefaultConfig()

	lookuper := opts.Lookuper
	if lookuper == nil {
		envFile := strings.TrimSpace(opts.EnvFile)
		if envFile == "" {
			envFile = DefaultEnvFile
		}
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load env file %s: %w", envFile, err)
		}
		lookuper = envconfig.OsLookuper()
	}

	var env Env
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}
	env.apply(&cfg)
	opts.apply(&cfg)
	return cfg, nil
}

// BuildModule constructs an importer module from the layered configuration.
func BuildModule(ctx context.Context, opts Options) (*Module, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	moduleOpts := []blogimport.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, blogimport.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blogimport.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise importer module: %w", err)
	}

	return &Module{
		Module: module,
		Config: module.Config(),
		Logger: logging.ModuleLogger(module.LoggerProvider(), "blogimport.cli"),
	}, nil
}

func (e Env) apply(cfg *blogimport.Config) {
	setString(&cfg.Import.PostsDir, e.PostsDir)
	setString(&cfg.Import.Layout, e.Layout)
	setString(&cfg.Import.SlugStyle, e.SlugStyle)
	setString(&cfg.Import.EntryPolicy, e.EntryPolicy)
	setString(&cfg.Import.WritePolicy, e.WritePolicy)
	setString(&cfg.Logging.Provider, e.LogProvider)
	setString(&cfg.Logging.Level, e.LogLevel)
	setString(&cfg.Logging.Format, e.LogFormat)
	if e.SlugMaxLength != nil {
		cfg.Import.SlugMaxLength = *e.SlugMaxLength
	}
	if e.DryRun != nil {
		cfg.Import.DryRun = *e.DryRun
	}
	if e.Sanitize != nil {
		cfg.Convert.Sanitize = *e.Sanitize
	}
}

func (o Options) apply(cfg *blogimport.Config) {
	override := func(dst *string, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*dst = trimmed
		}
	}
	override(&cfg.Import.PostsDir, o.PostsDir)
	override(&cfg.Import.Layout, o.Layout)
	override(&cfg.Import.SlugStyle, o.SlugStyle)
	override(&cfg.Import.EntryPolicy, o.EntryPolicy)
	override(&cfg.Import.WritePolicy, o.WritePolicy)
	override(&cfg.Logging.Provider, o.LogProvider)
	override(&cfg.Logging.Level, o.LogLevel)
	override(&cfg.Logging.Format, o.LogFormat)
	if o.DryRun != nil {
		cfg.Import.DryRun = *o.DryRun
	}
	if o.Sanitize != nil {
		cfg.Convert.Sanitize = *o.Sanitize
	}
}

func setString(dst *string, value *string) {
	if value == nil {
		return
	}
	if trimmed := strings.TrimSpace(*value); trimmed != "" {
		*dst = trimmed
	}
}

// SetFlags reports which flags were passed explicitly, so unset flags do
// not mask environment overrides.
func SetFlags(flags *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// BoolIf returns a pointer to value when set is true.
func BoolIf(set bool, value bool) *bool {
	if !set {
		return nil
	}
	return &value
}
