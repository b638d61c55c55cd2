package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-blogimport/internal/blogger"
)

var (
	ErrPostsDirRequired       = errors.New("blogimport config: posts directory is required")
	ErrPostsDirUnsafe         = errors.New("blogimport config: posts directory must stay inside the site root")
	ErrLayoutRequired         = errors.New("blogimport config: layout is required")
	ErrSlugStyleInvalid       = errors.New("blogimport config: slug style is invalid")
	ErrSlugLengthInvalid      = errors.New("blogimport config: slug max length must be positive")
	ErrEntryPolicyInvalid     = errors.New("blogimport config: entry error policy is invalid")
	ErrWritePolicyInvalid     = errors.New("blogimport config: write error policy is invalid")
	ErrSchemesRequired        = errors.New("blogimport config: kind scheme, post term and tag scheme are required")
	ErrLoggingProviderUnknown = errors.New("blogimport config: logging provider is invalid")
	ErrLoggingLevelInvalid    = errors.New("blogimport config: logging level is invalid")
	ErrLoggingFormatInvalid   = errors.New("blogimport config: logging format is invalid")
)

const (
	SlugStyleSafe     = "safe"
	SlugStyleVerbatim = "verbatim"

	EntryPolicySkip  = "skip"
	EntryPolicyAbort = "abort"

	WritePolicyContinue = "continue"
	WritePolicyAbort    = "abort"
)

// Config aggregates every knob of an import run.
type Config struct {
	Import  ImportConfig
	Convert ConvertConfig
	Schemes SchemeConfig
	Logging LoggingConfig
}

// ImportConfig controls where and how posts are written.
type ImportConfig struct {
	// PostsDir is the folder, relative to the site root, that receives posts.
	PostsDir string
	// Layout is written verbatim as the front matter layout value.
	Layout string
	// SlugStyle selects "verbatim" (the title with spaces as hyphens) or "safe"
	// (transliterated lowercase letters, digits and hyphens).
	SlugStyle     string
	SlugMaxLength int
	// EntryPolicy decides what happens to an entry with a missing or
	// unparseable required field: "skip" or "abort".
	EntryPolicy string
	// WritePolicy decides what happens when a post cannot be written:
	// "continue" or "abort".
	WritePolicy string
	DryRun      bool
}

// ConvertConfig controls HTML to Markdown conversion.
type ConvertConfig struct {
	// Sanitize strips scripts, iframes and event handlers before conversion.
	Sanitize bool
}

// SchemeConfig holds the Blogger category sentinels used to classify entries.
type SchemeConfig struct {
	Kind string
	Post string
	Tag  string
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider string
	Level    string
	Format   string
}

// DefaultConfig returns the configuration matching Blogger exports and
// Jekyll-style sites.
func DefaultConfig() Config {
	return Config{
		Import: ImportConfig{
			PostsDir:      "_posts",
			Layout:        "post",
			SlugStyle:     SlugStyleVerbatim,
			SlugMaxLength: 80,
			EntryPolicy:   EntryPolicySkip,
			WritePolicy:   WritePolicyContinue,
		},
		Schemes: SchemeConfig{
			Kind: blogger.KindScheme,
			Post: blogger.PostTerm,
			Tag:  blogger.TagScheme,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks before a run starts.
func (cfg Config) Validate() error {
	postsDir := strings.TrimSpace(cfg.Import.PostsDir)
	if postsDir == "" {
		return ErrPostsDirRequired
	}
	if clean := filepath.Clean(postsDir); filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPostsDirUnsafe, postsDir)
	}
	if strings.TrimSpace(cfg.Import.Layout) == "" {
		return ErrLayoutRequired
	}
	if err := validation.Validate(cfg.Import.SlugStyle, validation.Required, validation.In(SlugStyleSafe, SlugStyleVerbatim)); err != nil {
		return fmt.Errorf("%w: %q", ErrSlugStyleInvalid, cfg.Import.SlugStyle)
	}
	if cfg.Import.SlugMaxLength <= 0 {
		return fmt.Errorf("%w: %d", ErrSlugLengthInvalid, cfg.Import.SlugMaxLength)
	}
	if err := validation.Validate(cfg.Import.EntryPolicy, validation.Required, validation.In(EntryPolicySkip, EntryPolicyAbort)); err != nil {
		return fmt.Errorf("%w: %q", ErrEntryPolicyInvalid, cfg.Import.EntryPolicy)
	}
	if err := validation.Validate(cfg.Import.WritePolicy, validation.Required, validation.In(WritePolicyContinue, WritePolicyAbort)); err != nil {
		return fmt.Errorf("%w: %q", ErrWritePolicyInvalid, cfg.Import.WritePolicy)
	}
	if err := validation.ValidateStruct(&cfg.Schemes,
		validation.Field(&cfg.Schemes.Kind, validation.Required),
		validation.Field(&cfg.Schemes.Post, validation.Required),
		validation.Field(&cfg.Schemes.Tag, validation.Required),
	); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemesRequired, err)
	}

	provider := normalize(cfg.Logging.Provider)
	if err := validation.Validate(provider, validation.In("console", "gologger", "none")); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if err := validation.Validate(normalize(cfg.Logging.Level), validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal")); err != nil {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, cfg.Logging.Level)
	}
	if provider == "gologger" {
		if err := validation.Validate(normalize(cfg.Logging.Format), validation.In("json", "console", "pretty")); err != nil {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Logging.Format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
