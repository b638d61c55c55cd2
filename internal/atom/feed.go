package atom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Namespace is the Atom 1.0 XML namespace.
const Namespace = "http://www.w3.org/2005/Atom"

// Feed is the decoded export. Only the parts needed to import posts are kept.
type Feed struct {
	Title   string
	Entries []Entry
}

// Entry is one Atom entry. Blogger stores posts, pages, comments and
// settings as entries that only differ by their categories.
type Entry struct {
	ID           string
	Title        string
	HasTitle     bool
	Published    string
	HasPublished bool
	Updated      string
	HasUpdated   bool
	Content      Content
	HasContent   bool
	Categories   []Category
}

// Category is an Atom category element. Text holds any character data the
// element carries, which older exports use instead of the term attribute.
type Category struct {
	Scheme string
	Rel    string
	Term   string
	Text   string
}

// Content is the entry body. Body is the unescaped text for html and text
// payloads and the raw inner markup for xhtml payloads.
type Content struct {
	Type string
	Body string
}

type textElement struct {
	Type  string `xml:"type,attr"`
	Text  string `xml:",chardata"`
	Inner string `xml:",innerxml"`
}

type categoryElement struct {
	Scheme string `xml:"scheme,attr"`
	Rel    string `xml:"rel,attr"`
	Term   string `xml:"term,attr"`
	Text   string `xml:",chardata"`
}

type entryElement struct {
	ID         string            `xml:"id"`
	Title      *textElement      `xml:"title"`
	Published  *string           `xml:"published"`
	Updated    *string           `xml:"updated"`
	Content    *textElement      `xml:"content"`
	Categories []categoryElement `xml:"category"`
}

// LoadFile reads and decodes the export stored at path.
func LoadFile(path string) (*Feed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFeedUnreadable, path, err)
	}
	return Parse(data)
}

// Load reads and decodes the export stored at path inside fsys.
func Load(fsys fs.FS, path string) (*Feed, error) {
	if fsys == nil {
		return LoadFile(path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFeedUnreadable, path, err)
	}
	return Parse(data)
}

// Parse decodes an Atom document. Entries are collected from anywhere below
// the root feed element in document order. The whole document is read so
// trailing syntax errors are reported too.
func Parse(data []byte) (*Feed, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &MalformedFeedError{Reason: "document is empty"}
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = true

	feed := &Feed{}
	depth := 0
	sawRoot := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(decoder, "invalid xml", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !sawRoot {
				if t.Name.Local != "feed" {
					return nil, malformed(decoder, fmt.Sprintf("root element is %q, want feed", t.Name.Local), nil)
				}
				sawRoot = true
				depth++
				continue
			}
			if depth == 0 {
				return nil, malformed(decoder, "content after root element", nil)
			}
			switch {
			case t.Name.Local == "entry":
				var raw entryElement
				if err := decoder.DecodeElement(&raw, &t); err != nil {
					return nil, malformed(decoder, "invalid entry", err)
				}
				feed.Entries = append(feed.Entries, raw.entry())
			case t.Name.Local == "title" && depth == 1:
				var title textElement
				if err := decoder.DecodeElement(&title, &t); err != nil {
					return nil, malformed(decoder, "invalid feed title", err)
				}
				feed.Title = strings.TrimSpace(title.Text)
			default:
				depth++
			}
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, &MalformedFeedError{Reason: "document has no root element"}
	}
	return feed, nil
}

func malformed(decoder *xml.Decoder, reason string, err error) error {
	return &MalformedFeedError{
		Offset: decoder.InputOffset(),
		Reason: reason,
		Err:    err,
	}
}

func (raw entryElement) entry() Entry {
	entry := Entry{
		ID:         strings.TrimSpace(raw.ID),
		Categories: make([]Category, 0, len(raw.Categories)),
	}
	if raw.Title != nil {
		entry.HasTitle = true
		entry.Title = raw.Title.Text
	}
	if raw.Published != nil {
		entry.HasPublished = true
		entry.Published = strings.TrimSpace(*raw.Published)
	}
	if raw.Updated != nil {
		entry.HasUpdated = true
		entry.Updated = strings.TrimSpace(*raw.Updated)
	}
	if raw.Content != nil {
		entry.HasContent = true
		entry.Content = Content{Type: raw.Content.Type, Body: raw.Content.Text}
		if strings.EqualFold(raw.Content.Type, "xhtml") {
			entry.Content.Body = strings.TrimSpace(raw.Content.Inner)
		}
	}
	for _, cat := range raw.Categories {
		entry.Categories = append(entry.Categories, Category{
			Scheme: cat.Scheme,
			Rel:    cat.Rel,
			Term:   cat.Term,
			Text:   strings.TrimSpace(cat.Text),
		})
	}
	return entry
}
