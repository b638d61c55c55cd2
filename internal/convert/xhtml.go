package convert

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

const (
	shellPrefix = `<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en"><head><title/></head><body>`
	shellSuffix = `</body></html>`
)

// WrapDocument places fragment inside a minimal XHTML document.
func WrapDocument(fragment string) string {
	var b strings.Builder
	b.Grow(len(shellPrefix) + len(fragment) + len(shellSuffix))
	b.WriteString(shellPrefix)
	b.WriteString(fragment)
	b.WriteString(shellSuffix)
	return b.String()
}

// CheckWellFormed reports whether document parses as strict XML. HTML named
// entities such as &nbsp; are accepted.
func CheckWellFormed(document string) error {
	decoder := xml.NewDecoder(strings.NewReader(document))
	decoder.Strict = true
	decoder.Entity = xml.HTMLEntity
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
