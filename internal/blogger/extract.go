package blogger

import (
	"strings"
	"time"

	"github.com/goliatone/go-blogimport/internal/atom"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// Field names reported by MissingFieldError and DateParseError.
const (
	FieldTitle     = "title"
	FieldPublished = "published"
	FieldUpdated   = "updated"
)

// ExtractFields builds a Post from a post entry. Content is the raw HTML
// fragment; a missing content element yields an empty body.
func ExtractFields(entry atom.Entry, schemes Schemes) (*interfaces.Post, error) {
	title := entry.Title
	if !entry.HasTitle || strings.TrimSpace(title) == "" {
		return nil, &MissingFieldError{EntryID: entry.ID, Field: FieldTitle}
	}

	published, err := requiredDate(entry.ID, FieldPublished, entry.Published, entry.HasPublished)
	if err != nil {
		return nil, err
	}
	updated, err := requiredDate(entry.ID, FieldUpdated, entry.Updated, entry.HasUpdated)
	if err != nil {
		return nil, err
	}

	return &interfaces.Post{
		ID:         entry.ID,
		Title:      strings.TrimSpace(title),
		Published:  published,
		Updated:    updated,
		Content:    entry.Content.Body,
		Tags:       Tags(entry, schemes),
		Categories: []string{},
	}, nil
}

// Tags returns the labels of entry in document order, duplicates included.
// The term attribute wins over element text.
func Tags(entry atom.Entry, schemes Schemes) []string {
	tags := make([]string, 0, len(entry.Categories))
	for _, cat := range entry.Categories {
		if !matchesScheme(cat, schemes.Tag) {
			continue
		}
		value := cat.Term
		if value == "" {
			value = cat.Text
		}
		if value == "" {
			continue
		}
		tags = append(tags, value)
	}
	return tags
}

func requiredDate(entryID, field, value string, present bool) (time.Time, error) {
	if !present || strings.TrimSpace(value) == "" {
		return time.Time{}, &MissingFieldError{EntryID: entryID, Field: field}
	}
	parsed, perr := ParseDate(value)
	if perr != nil {
		return time.Time{}, &DateParseError{EntryID: entryID, Field: field, Value: value, Err: perr}
	}
	return parsed, nil
}
