// Package convert turns Blogger HTML fragments into Markdown, falling back to
// the raw fragment whenever conversion cannot be trusted.
package convert

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// Result is the outcome of a single conversion.
type Result = interfaces.ConversionResult

// Option customises a Converter.
type Option func(*Converter)

// WithSanitize strips scripts, iframes and event handlers before conversion.
func WithSanitize(enabled bool) Option {
	return func(c *Converter) {
		c.sanitize = enabled
	}
}

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMarkdownFunc swaps the html-to-markdown backend.
func WithMarkdownFunc(fn func(string) (string, error)) Option {
	return func(c *Converter) {
		if fn != nil {
			c.toMarkdown = fn
		}
	}
}

// Converter implements interfaces.HTMLConverter.
type Converter struct {
	sanitize   bool
	policy     *bluemonday.Policy
	logger     interfaces.Logger
	toMarkdown func(string) (string, error)
}

var _ interfaces.HTMLConverter = (*Converter)(nil)

// New builds a Converter backed by html-to-markdown.
func New(opts ...Option) *Converter {
	c := &Converter{
		logger: logging.NoOp(),
		toMarkdown: func(html string) (string, error) {
			return htmltomarkdown.ConvertString(html)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.sanitize {
		c.policy = bluemonday.UGCPolicy()
	}
	return c
}

// Convert converts fragment. On any failure, or when the converter produces
// nothing, the result carries the original fragment with Fallback set.
func (c *Converter) Convert(fragment string) (result Result) {
	if strings.TrimSpace(fragment) == "" {
		return Result{Markdown: fragment}
	}

	defer func() {
		if r := recover(); r != nil {
			result = c.fallback(fragment, &ConversionError{Stage: StageConvert, Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	if err := CheckWellFormed(WrapDocument(fragment)); err != nil {
		return c.fallback(fragment, &ConversionError{Stage: StageWellFormed, Err: err})
	}

	input := fragment
	if c.policy != nil {
		input = c.policy.Sanitize(fragment)
	}

	markdown, err := c.toMarkdown(input)
	if err != nil {
		return c.fallback(fragment, &ConversionError{Stage: StageConvert, Err: err})
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return c.fallback(fragment, &ConversionError{Stage: StageEmpty})
	}
	return Result{Markdown: markdown}
}

func (c *Converter) fallback(fragment string, err *ConversionError) Result {
	c.logger.Debug("convert.fallback", "stage", err.Stage, "error", err)
	return Result{Markdown: fragment, Fallback: true, Err: err}
}

var defaultConverter = New()

// ToMarkdown converts fragment with default settings. It never fails.
func ToMarkdown(fragment string) string {
	return defaultConverter.Convert(fragment).Markdown
}
