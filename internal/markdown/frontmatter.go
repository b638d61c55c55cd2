package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the header of an emitted post.
type FrontMatter struct {
	Title      string
	Date       string
	Layout     string
	Categories []string
	Tags       []string
	Custom     map[string]any
}

// Published parses Date as a calendar date.
func (fm FrontMatter) Published() (time.Time, bool) {
	ts, err := time.Parse(time.DateOnly, fm.Date)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// Document is a post read from disk.
type Document struct {
	Path         string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
}

// ParseFrontMatter splits source into its header and Markdown body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.MustParse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return meta.frontMatter(), body, nil
}

// BuildDocument parses source into a Document.
func BuildDocument(path string, source []byte, modified time.Time) (*Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Document{
		Path:         path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title      string         `yaml:"title"`
	Date       string         `yaml:"date"`
	Layout     string         `yaml:"layout"`
	Categories []string       `yaml:"categories"`
	Tags       []string       `yaml:"tags"`
	Custom     map[string]any `yaml:",inline"`
}

func (env frontMatterEnvelope) frontMatter() FrontMatter {
	custom := map[string]any{}
	maps.Copy(custom, env.Custom)
	return FrontMatter{
		Title:      env.Title,
		Date:       env.Date,
		Layout:     env.Layout,
		Categories: append([]string{}, env.Categories...),
		Tags:       append([]string{}, env.Tags...),
		Custom:     custom,
	}
}
