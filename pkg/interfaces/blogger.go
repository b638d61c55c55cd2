package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Post is the transient record built from a single Blogger entry. It lives
// only long enough to be written to disk.
type Post struct {
	ID         string
	Title      string
	Published  time.Time
	Updated    time.Time
	Content    string
	Tags       []string
	Categories []string
}

// ConversionResult reports the outcome of an HTML to Markdown conversion.
// Markdown always carries usable content: when Fallback is true it holds the
// original fragment and Err explains why conversion was abandoned.
type ConversionResult struct {
	Markdown string
	Fallback bool
	Err      error
}

// HTMLConverter turns Blogger HTML fragments into Markdown.
type HTMLConverter interface {
	Convert(fragment string) ConversionResult
}

// PostWriter persists rendered posts. Paths are passed through as given.
type PostWriter interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, path string, data []byte) error
}

// ImportOptions describes a single import run.
type ImportOptions struct {
	// SiteRoot is the static site directory that receives the _posts folder.
	SiteRoot string
	// ImportFile points at the Blogger Atom export.
	ImportFile string
	// DryRun renders every post without touching the filesystem.
	DryRun bool
}

// EntryFailure records an entry that could not be imported.
type EntryFailure struct {
	EntryID string
	Title   string
	Stage   string
	Err     error
}

// ImportResult summarises an import run.
type ImportResult struct {
	RunID         uuid.UUID
	EntriesSeen   int
	PostsSelected int
	Written       []string
	Skipped       int
	Fallbacks     int
	Failures      []EntryFailure
	DryRun        bool
}

// Importer runs the Blogger import pipeline.
type Importer interface {
	Import(ctx context.Context, opts ImportOptions) (*ImportResult, error)
}
