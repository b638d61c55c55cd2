// Package atom decodes Blogger Atom exports into a minimal entry tree.
package atom
