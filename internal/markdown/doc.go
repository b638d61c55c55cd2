// Package markdown reads emitted posts back: it parses their front matter,
// renders bodies to HTML with goldmark and discovers posts in a site's posts
// directory. The preview tool uses it to check an import.
package markdown
