package atom

import (
	"errors"
	"os"
	"testing"
	"testing/fstest"
)

func TestLoadFileDecodesEntriesInDocumentOrder(t *testing.T) {
	feed, err := LoadFile("testdata/export.xml")
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if feed.Title != "Field Notes" {
		t.Fatalf("unexpected feed title %q", feed.Title)
	}
	if len(feed.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(feed.Entries))
	}

	wantTitles := []string{"Template: Field Notes", "Hello, World", "About", "Raw markup", "Nice post"}
	for i, want := range wantTitles {
		if feed.Entries[i].Title != want {
			t.Fatalf("entry %d: expected title %q, got %q", i, want, feed.Entries[i].Title)
		}
	}

	post := feed.Entries[1]
	if post.ID != "tag:blogger.com,1999:blog-1.post-100" {
		t.Fatalf("unexpected id %q", post.ID)
	}
	if !post.HasPublished || post.Published != "2007-02-01T14:01:23.326Z" {
		t.Fatalf("unexpected published %q (present=%v)", post.Published, post.HasPublished)
	}
	if post.Content.Type != "html" || post.Content.Body != "<p>Hi</p>" {
		t.Fatalf("unexpected content %+v", post.Content)
	}
	if len(post.Categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(post.Categories))
	}
	if post.Categories[1].Term != "Tech" || post.Categories[2].Term != "Go" {
		t.Fatalf("unexpected category order %+v", post.Categories)
	}

	textTag := feed.Entries[3].Categories[1]
	if textTag.Term != "" || textTag.Text != "Notes" {
		t.Fatalf("expected text category, got %+v", textTag)
	}
}

func TestLoadUsesFS(t *testing.T) {
	data, err := os.ReadFile("testdata/export.xml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	fsys := fstest.MapFS{"blog/export.xml": &fstest.MapFile{Data: data}}

	feed, err := Load(fsys, "blog/export.xml")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(feed.Entries) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(feed.Entries))
	}

	if _, err := Load(fsys, "blog/missing.xml"); !errors.Is(err, ErrFeedUnreadable) {
		t.Fatalf("expected ErrFeedUnreadable, got %v", err)
	}
}

func TestParseRecordsMissingElements(t *testing.T) {
	feed, err := Parse([]byte(`<feed xmlns="http://www.w3.org/2005/Atom"><entry><id>x</id></entry></feed>`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	entry := feed.Entries[0]
	if entry.HasTitle || entry.HasPublished || entry.HasUpdated || entry.HasContent {
		t.Fatalf("expected absent fields, got %+v", entry)
	}

	feed, err = Parse([]byte(`<feed><entry><title></title><content type="html"></content></entry></feed>`))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	entry = feed.Entries[0]
	if !entry.HasTitle || entry.Title != "" || !entry.HasContent {
		t.Fatalf("expected present but empty fields, got %+v", entry)
	}
}

func TestParseFindsNestedEntries(t *testing.T) {
	doc := `<feed><group><entry><title>nested</title></entry></group><entry><title>top</title></entry></feed>`
	feed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(feed.Entries) != 2 || feed.Entries[0].Title != "nested" || feed.Entries[1].Title != "top" {
		t.Fatalf("unexpected entries %+v", feed.Entries)
	}
}

func TestParseXHTMLContentKeepsMarkup(t *testing.T) {
	doc := `<feed><entry><content type="xhtml"><div xmlns="http://www.w3.org/1999/xhtml"><p>Hi</p></div></content></entry></feed>`
	feed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	body := feed.Entries[0].Content.Body
	if body != `<div xmlns="http://www.w3.org/1999/xhtml"><p>Hi</p></div>` {
		t.Fatalf("unexpected xhtml body %q", body)
	}
}

func TestParseRejectsMalformedDocuments(t *testing.T) {
	cases := map[string]string{
		"empty":          "   ",
		"unclosed":       `<feed><entry><title>x</title>`,
		"mismatched":     `<feed><entry></feed></entry>`,
		"wrong root":     `<rss><channel/></rss>`,
		"not xml":        `hello world`,
		"bad entity":     `<feed><title>&nbsp;</title></feed>`,
		"trailing root":  `<feed></feed><feed></feed>`,
		"broken content": `<feed><entry><content>a < b</content></entry></feed>`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if !errors.Is(err, ErrMalformedFeed) {
				t.Fatalf("expected ErrMalformedFeed, got %v", err)
			}
			var malformed *MalformedFeedError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected *MalformedFeedError, got %T", err)
			}
		})
	}
}
