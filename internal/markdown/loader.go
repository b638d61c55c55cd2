package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"
)

// ErrNotPostName is returned for files that do not follow the
// "YYYY-MM-DD-slug.md" naming scheme.
var ErrNotPostName = errors.New("markdown loader: file name is not a post name")

var postNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})-(.+)\.md$`)

// PostName splits a post file name into its date and slug.
func PostName(name string) (time.Time, string, error) {
	match := postNamePattern.FindStringSubmatch(path.Base(name))
	if match == nil {
		return time.Time{}, "", fmt.Errorf("%w: %s", ErrNotPostName, name)
	}
	date, err := time.Parse(time.DateOnly, match[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: %s: %v", ErrNotPostName, name, err)
	}
	return date, match[2], nil
}

// Loader reads posts from a filesystem rooted at the site.
type Loader struct {
	fs fs.FS
}

// NewLoader returns a Loader over filesystem.
func NewLoader(filesystem fs.FS) *Loader {
	return &Loader{fs: filesystem}
}

// LoadFile reads and parses a single post.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = path.Clean(strings.TrimPrefix(name, "./"))

	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}
	info, err := fs.Stat(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", name, err)
	}
	return BuildDocument(name, data, info.ModTime())
}

// LoadDir reads every "*.md" post directly inside dir, sorted by name so
// posts come back in date order.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*Document, error) {
	entries, err := fs.ReadDir(l.fs, path.Clean(dir))
	if err != nil {
		return nil, fmt.Errorf("markdown loader list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	docs := make([]*Document, 0, len(names))
	for _, name := range names {
		doc, err := l.LoadFile(ctx, path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
