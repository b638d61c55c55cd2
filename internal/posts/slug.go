package posts

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/goliatone/go-slug"
)

// Slug styles.
const (
	SlugStyleSafe     = "safe"
	SlugStyleVerbatim = "verbatim"
)

// DefaultSlugMaxLength bounds safe slugs.
const DefaultSlugMaxLength = 80

const fallbackSlug = "post"

// SafeSlug produces a lowercase slug of letters, digits and hyphens. Latin,
// Greek and Cyrillic letters are transliterated to ASCII; letters of other
// scripts are kept as they are. Runs of hyphens are collapsed, the result is
// trimmed and cut to maxLen runes. A title with nothing usable yields "post".
func SafeSlug(title string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSlugMaxLength
	}

	candidate := strings.TrimSpace(title)
	if normalized, err := slug.HashNormalize(candidate); err == nil && normalized != "" {
		candidate = normalized
	}

	var b strings.Builder
	b.Grow(len(candidate))
	lastHyphen := true
	for _, r := range candidate {
		if isSlugRune(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if runes := []rune(out); len(runes) > maxLen {
		out = strings.TrimRight(string(runes[:maxLen]), "-")
	}
	if out == "" {
		return fallbackSlug
	}
	return out
}

// VerbatimSlug replaces spaces with hyphens and drops double quotes, leaving
// every other character alone. Titles that would leave the posts directory
// are rejected.
func VerbatimSlug(title string) (string, error) {
	out := strings.ReplaceAll(title, " ", "-")
	out = strings.ReplaceAll(out, `"`, "")
	if out == "" || out == "." || out == ".." || strings.ContainsAny(out, `/\`) || strings.ContainsRune(out, 0) {
		return "", ErrUnsafePath
	}
	return out, nil
}

// Slugify applies style to title.
func Slugify(style, title string, maxLen int) (string, error) {
	if style == SlugStyleVerbatim {
		return VerbatimSlug(title)
	}
	return SafeSlug(title, maxLen), nil
}

// FileName returns "{YYYY-MM-DD}-{slug}.md" using the calendar date of
// published in its own offset.
func FileName(published time.Time, name string) string {
	return published.Format(time.DateOnly) + "-" + name + ".md"
}

// DisambiguatedName appends "-n" to name for the n-th post claiming the same
// file name in one run.
func DisambiguatedName(name string, n int) string {
	if n <= 1 {
		return name
	}
	return name + "-" + strconv.Itoa(n)
}

func isSlugRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
