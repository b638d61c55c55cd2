package posts

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// DefaultLayout is written when no layout is configured.
const DefaultLayout = "post"

const delimiter = "---"

// Header is the front matter block written above each post.
type Header struct {
	Title      string
	Date       time.Time
	Layout     string
	Categories []string
	Tags       []string
}

// NewHeader builds the header for post.
func NewHeader(post *interfaces.Post, layout string) Header {
	if strings.TrimSpace(layout) == "" {
		layout = DefaultLayout
	}
	return Header{
		Title:      post.Title,
		Date:       post.Published,
		Layout:     layout,
		Categories: post.Categories,
		Tags:       post.Tags,
	}
}

// RenderHeader renders the header fields in a fixed order without the
// delimiter lines.
func RenderHeader(h Header) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeScalar(&buf, "title", h.Title); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "date: %s\n", h.Date.Format(time.DateOnly))
	if err := writeScalar(&buf, "layout", h.Layout); err != nil {
		return nil, err
	}
	if err := writeSequence(&buf, "categories", h.Categories); err != nil {
		return nil, err
	}
	if err := writeSequence(&buf, "tags", h.Tags); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPost renders the complete file: delimited header, a blank line, then
// the content verbatim.
func RenderPost(post *interfaces.Post, layout string) ([]byte, error) {
	if post == nil {
		return nil, ErrPostRequired
	}
	header, err := RenderHeader(NewHeader(post, layout))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(header) + len(post.Content) + 16)
	buf.WriteString(delimiter + "\n")
	buf.Write(header)
	buf.WriteString(delimiter + "\n\n")
	buf.WriteString(post.Content)
	return buf.Bytes(), nil
}

func writeScalar(buf *bytes.Buffer, key, value string) error {
	encoded, err := encodeScalar(value)
	if err != nil {
		return fmt.Errorf("posts: encode %s: %w", key, err)
	}
	fmt.Fprintf(buf, "%s: %s\n", key, encoded)
	return nil
}

func writeSequence(buf *bytes.Buffer, key string, values []string) error {
	buf.WriteString(key + ":\n")
	for _, value := range values {
		encoded, err := encodeScalar(value)
		if err != nil {
			return fmt.Errorf("posts: encode %s item: %w", key, err)
		}
		fmt.Fprintf(buf, "- %s\n", encoded)
	}
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// unicodeBreaks are the YAML line breaks besides CR and LF. The encoder
// writes them raw unless the scalar is double-quoted.
const unicodeBreaks = "\u0085\u2028\u2029"

// encodeScalar quotes value only when YAML requires it. Invalid UTF-8 is
// replaced so the value stays a string. Values holding other line breaks
// are written double-quoted so they stay on one escaped line.
func encodeScalar(value string) (string, error) {
	value = strings.ToValidUTF8(lineBreaks.Replace(value), "\uFFFD")
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", err
	}
	encoded := strings.TrimSuffix(string(out), "\n")
	if strings.Contains(encoded, "\n") || strings.ContainsAny(value, unicodeBreaks) {
		return marshalScalar(&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: value})
	}
	return encoded, nil
}

func marshalScalar(node *yaml.Node) (string, error) {
	out, err := yaml.Marshal(node)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
