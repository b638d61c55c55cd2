package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

var ErrSiteRootRequired = errors.New("markdown service: site root is required")

// Config controls where the preview service looks for posts.
type Config struct {
	SiteRoot string
	PostsDir string
	Render   RenderOptions
}

// Preview is a post together with its rendered body and any problems found
// in its name or header.
type Preview struct {
	Document *Document
	HTML     []byte
	Warnings []string
}

// Service loads emitted posts and renders them for inspection.
type Service struct {
	cfg      Config
	loader   *Loader
	renderer *Renderer
	logger   interfaces.Logger
}

// NewService builds a Service reading from cfg.SiteRoot.
func NewService(cfg Config, logger interfaces.Logger) (*Service, error) {
	root := strings.TrimSpace(cfg.SiteRoot)
	if root == "" {
		return nil, ErrSiteRootRequired
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("markdown service: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown service: %s is not a directory", root)
	}
	if strings.TrimSpace(cfg.PostsDir) == "" {
		cfg.PostsDir = "_posts"
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Service{
		cfg:      cfg,
		loader:   NewLoader(os.DirFS(root)),
		renderer: NewRenderer(cfg.Render),
		logger:   logger,
	}, nil
}

// Preview loads the post at name, relative to the site root, and renders it.
func (s *Service) Preview(ctx context.Context, name string) (*Preview, error) {
	doc, err := s.loader.LoadFile(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.preview(doc)
}

// PreviewAll previews every post in the posts directory.
func (s *Service) PreviewAll(ctx context.Context) ([]*Preview, error) {
	docs, err := s.loader.LoadDir(ctx, s.cfg.PostsDir)
	if err != nil {
		return nil, err
	}
	previews := make([]*Preview, 0, len(docs))
	for _, doc := range docs {
		p, err := s.preview(doc)
		if err != nil {
			return nil, err
		}
		previews = append(previews, p)
	}
	return previews, nil
}

func (s *Service) preview(doc *Document) (*Preview, error) {
	html, err := s.renderer.Render(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Path, err)
	}
	p := &Preview{Document: doc, HTML: html, Warnings: Check(doc)}
	for _, warning := range p.Warnings {
		s.logger.Warn("markdown.preview.warning", "path", doc.Path, "warning", warning)
	}
	return p, nil
}

// Check reports inconsistencies between a post's file name and header.
func Check(doc *Document) []string {
	var warnings []string
	fm := doc.FrontMatter
	if strings.TrimSpace(fm.Title) == "" {
		warnings = append(warnings, "title is empty")
	}
	if fm.Layout == "" {
		warnings = append(warnings, "layout is empty")
	}
	published, ok := fm.Published()
	if !ok {
		warnings = append(warnings, fmt.Sprintf("date %q is not YYYY-MM-DD", fm.Date))
	}
	nameDate, _, err := PostName(path.Base(doc.Path))
	if err != nil {
		warnings = append(warnings, err.Error())
	} else if ok && !nameDate.Equal(published) {
		warnings = append(warnings, fmt.Sprintf("file date %s does not match header date %s", nameDate.Format("2006-01-02"), fm.Date))
	}
	return warnings
}
