// Package posts renders Blogger posts as front matter Markdown files and
// writes them below a site's posts directory.
package posts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// DefaultPostsDir is the folder, relative to the site root, that receives posts.
const DefaultPostsDir = "_posts"

// EmitterConfig controls file naming and the header layout.
type EmitterConfig struct {
	PostsDir      string
	Layout        string
	SlugStyle     string
	SlugMaxLength int
}

// EmitterOption customises an Emitter.
type EmitterOption func(*Emitter)

// WithEmitterLogger sets the emitter logger.
func WithEmitterLogger(logger interfaces.Logger) EmitterOption {
	return func(e *Emitter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Emitter writes posts for a single site root.
type Emitter struct {
	siteRoot string
	writer   interfaces.PostWriter
	cfg      EmitterConfig
	logger   interfaces.Logger
	ensured  bool
	claimed  map[string]string
}

// NewEmitter builds an Emitter that writes below siteRoot through writer.
func NewEmitter(siteRoot string, writer interfaces.PostWriter, cfg EmitterConfig, opts ...EmitterOption) (*Emitter, error) {
	if strings.TrimSpace(siteRoot) == "" {
		return nil, ErrSiteRootMissing
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}
	if strings.TrimSpace(cfg.PostsDir) == "" {
		cfg.PostsDir = DefaultPostsDir
	}
	if strings.TrimSpace(cfg.Layout) == "" {
		cfg.Layout = DefaultLayout
	}
	if cfg.SlugStyle == "" {
		cfg.SlugStyle = SlugStyleVerbatim
	}
	if cfg.SlugMaxLength <= 0 {
		cfg.SlugMaxLength = DefaultSlugMaxLength
	}

	e := &Emitter{
		siteRoot: siteRoot,
		writer:   writer,
		cfg:      cfg,
		logger:   logging.NoOp(),
		claimed:  map[string]string{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Dir returns the directory posts are written to.
func (e *Emitter) Dir() string {
	return filepath.Join(e.siteRoot, e.cfg.PostsDir)
}

// PathFor computes the destination of post without writing it. Names
// already claimed by this emitter are not taken into account.
func (e *Emitter) PathFor(post *interfaces.Post) (string, error) {
	return e.pathFor(post, 1)
}

func (e *Emitter) pathFor(post *interfaces.Post, n int) (string, error) {
	if post == nil {
		return "", ErrPostRequired
	}
	name, err := Slugify(e.cfg.SlugStyle, post.Title, e.cfg.SlugMaxLength)
	if err != nil {
		return "", fmt.Errorf("%w: title %q", err, post.Title)
	}
	dir := e.Dir()
	path := filepath.Join(dir, FileName(post.Published, DisambiguatedName(name, n)))
	if filepath.Dir(path) != filepath.Clean(dir) {
		return "", fmt.Errorf("%w: title %q", ErrUnsafePath, post.Title)
	}
	return path, nil
}

// claim returns the first path for post that no earlier post of this run
// has taken. Names are compared case-insensitively so runs behave the same
// on case-folding filesystems.
func (e *Emitter) claim(post *interfaces.Post) (string, error) {
	for n := 1; ; n++ {
		path, err := e.pathFor(post, n)
		if err != nil {
			return "", err
		}
		key := strings.ToLower(path)
		if _, taken := e.claimed[key]; taken {
			continue
		}
		e.claimed[key] = post.ID
		return path, nil
	}
}

// Emit renders post and writes it, replacing any existing file with the same
// name. Posts whose name was already written during this run get a numeric
// suffix instead of overwriting the earlier file. It returns the written
// path.
func (e *Emitter) Emit(ctx context.Context, post *interfaces.Post) (string, error) {
	path, err := e.claim(post)
	if err != nil {
		return "", err
	}
	if base, _ := e.PathFor(post); base != path {
		e.logger.WithContext(ctx).Warn("emit.post.renamed",
			"entry_id", post.ID, "path", path, "conflicts_with", e.claimed[strings.ToLower(base)])
	}
	if err := e.write(ctx, post, path); err != nil {
		delete(e.claimed, strings.ToLower(path))
		return "", err
	}
	return path, nil
}

func (e *Emitter) write(ctx context.Context, post *interfaces.Post, path string) error {
	data, err := RenderPost(post, e.cfg.Layout)
	if err != nil {
		return err
	}

	if !e.ensured {
		if err := e.writer.EnsureDir(ctx, e.Dir()); err != nil {
			return fmt.Errorf("posts: create %s: %w", e.Dir(), err)
		}
		e.ensured = true
	}
	if err := e.writer.WriteFile(ctx, path, data); err != nil {
		return fmt.Errorf("posts: write %s: %w", path, err)
	}

	e.logger.WithContext(ctx).Debug("emit.post.written", "path", path, "bytes", len(data))
	return nil
}
