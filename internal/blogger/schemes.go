package blogger

// Category sentinels used by Blogger exports to classify entries.
const (
	KindScheme  = "http://schemas.google.com/g/2005#kind"
	PostTerm    = "http://schemas.google.com/blogger/2008/kind#post"
	PageTerm    = "http://schemas.google.com/blogger/2008/kind#page"
	CommentTerm = "http://schemas.google.com/blogger/2008/kind#comment"
	TagScheme   = "http://www.blogger.com/atom/ns#"
)

// Schemes maps the roles an entry category can play to the literal values
// found in the export.
type Schemes struct {
	Kind    string
	Post    string
	Page    string
	Comment string
	Tag     string
}

// DefaultSchemes returns the values Blogger uses today.
func DefaultSchemes() Schemes {
	return Schemes{
		Kind:    KindScheme,
		Post:    PostTerm,
		Page:    PageTerm,
		Comment: CommentTerm,
		Tag:     TagScheme,
	}
}

// WithDefaults fills blank values from DefaultSchemes.
func (s Schemes) WithDefaults() Schemes {
	def := DefaultSchemes()
	if s.Kind == "" {
		s.Kind = def.Kind
	}
	if s.Post == "" {
		s.Post = def.Post
	}
	if s.Page == "" {
		s.Page = def.Page
	}
	if s.Comment == "" {
		s.Comment = def.Comment
	}
	if s.Tag == "" {
		s.Tag = def.Tag
	}
	return s
}
