package blogger

import "github.com/goliatone/go-blogimport/internal/atom"

// Entry kinds reported by Kind.
const (
	KindPost    = "post"
	KindPage    = "page"
	KindComment = "comment"
	KindOther   = "other"
)

// IsPost reports whether the entry carries the post kind category.
func IsPost(entry atom.Entry, schemes Schemes) bool {
	return hasKind(entry, schemes.Kind, schemes.Post)
}

// Kind classifies an entry for diagnostics.
func Kind(entry atom.Entry, schemes Schemes) string {
	switch {
	case hasKind(entry, schemes.Kind, schemes.Post):
		return KindPost
	case schemes.Page != "" && hasKind(entry, schemes.Kind, schemes.Page):
		return KindPage
	case schemes.Comment != "" && hasKind(entry, schemes.Kind, schemes.Comment):
		return KindComment
	default:
		return KindOther
	}
}

func hasKind(entry atom.Entry, scheme, term string) bool {
	for _, cat := range entry.Categories {
		if matchesScheme(cat, scheme) && cat.Term == term {
			return true
		}
	}
	return false
}

// matchesScheme accepts the scheme on either attribute; some exports put the
// kind sentinel on rel.
func matchesScheme(cat atom.Category, scheme string) bool {
	return cat.Scheme == scheme || cat.Rel == scheme
}
