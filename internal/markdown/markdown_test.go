package markdown

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Hello, World\ndate: 2007-02-01\nlayout: post\ncategories:\ntags:\n- Tech\nextra: 3\n---\n\nHi")

	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "Hello, World" || fm.Layout != "post" {
		t.Fatalf("unexpected front matter %+v", fm)
	}
	if fm.Date != "2007-02-01" {
		t.Fatalf("expected raw date, got %q", fm.Date)
	}
	published, ok := fm.Published()
	if !ok || !published.Equal(time.Date(2007, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected published %v", published)
	}
	if !reflect.DeepEqual(fm.Tags, []string{"Tech"}) || len(fm.Categories) != 0 {
		t.Fatalf("unexpected sequences tags=%v categories=%v", fm.Tags, fm.Categories)
	}
	if fm.Custom["extra"] != 3 {
		t.Fatalf("expected custom key, got %v", fm.Custom)
	}
	if strings.TrimSpace(string(body)) != "Hi" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterRequiresHeader(t *testing.T) {
	if _, _, err := ParseFrontMatter([]byte("just text")); err == nil {
		t.Fatal("expected error for missing front matter")
	}
}

func TestPostName(t *testing.T) {
	date, slug, err := PostName("_posts/2007-02-01-Hello,-World.md")
	if err != nil {
		t.Fatalf("PostName: %v", err)
	}
	if date.Format(time.DateOnly) != "2007-02-01" || slug != "Hello,-World" {
		t.Fatalf("unexpected split %s %s", date, slug)
	}
	for _, name := range []string{"notes.md", "2007-02-01.md", "2007-13-01-x.md", "2007-02-01-x.txt"} {
		if _, _, err := PostName(name); !errors.Is(err, ErrNotPostName) {
			t.Fatalf("expected ErrNotPostName for %s, got %v", name, err)
		}
	}
}

func TestLoaderLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		"_posts/2008-01-01-b.md": {Data: []byte("---\ntitle: B\ndate: 2008-01-01\nlayout: post\n---\n\nb")},
		"_posts/2007-01-01-a.md": {Data: []byte("---\ntitle: A\ndate: 2007-01-01\nlayout: post\n---\n\na")},
		"_posts/readme.txt":      {Data: []byte("skip")},
		"_posts/drafts/x.md":     {Data: []byte("---\ntitle: X\n---\n")},
	}
	docs, err := NewLoader(fsys).LoadDir(context.Background(), "_posts")
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(docs) != 2 || docs[0].FrontMatter.Title != "A" || docs[1].FrontMatter.Title != "B" {
		t.Fatalf("unexpected documents %+v", docs)
	}
	if docs[0].Path != "_posts/2007-01-01-a.md" {
		t.Fatalf("unexpected path %s", docs[0].Path)
	}
}

func TestRendererRendersMarkdown(t *testing.T) {
	html, err := NewRenderer(RenderOptions{}).Render([]byte("Hi **there**"))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(html), "<strong>there</strong>") {
		t.Fatalf("unexpected html %s", html)
	}

	raw := []byte("<b>bold</b>")
	unsafe, _ := NewRenderer(RenderOptions{}).Render(raw)
	if !strings.Contains(string(unsafe), "<b>bold</b>") {
		t.Fatalf("expected raw html passthrough, got %s", unsafe)
	}
	safe, _ := NewRenderer(RenderOptions{SafeMode: true}).Render(raw)
	if strings.Contains(string(safe), "<b>bold</b>") {
		t.Fatalf("expected raw html to be dropped, got %s", safe)
	}
}

func TestServicePreviewAll(t *testing.T) {
	svc, err := NewService(Config{SiteRoot: "testdata/site"}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	previews, err := svc.PreviewAll(context.Background())
	if err != nil {
		t.Fatalf("PreviewAll: %v", err)
	}
	if len(previews) != 2 {
		t.Fatalf("expected 2 previews, got %d", len(previews))
	}

	hello := previews[0]
	if hello.Document.FrontMatter.Title != "Hello, World" || len(hello.Warnings) != 0 {
		t.Fatalf("unexpected hello preview %+v", hello)
	}
	if !strings.Contains(string(hello.HTML), "<strong>there</strong>") {
		t.Fatalf("unexpected html %s", hello.HTML)
	}

	raw := previews[1]
	if len(raw.Warnings) != 1 || !strings.Contains(raw.Warnings[0], "does not match") {
		t.Fatalf("expected date mismatch warning, got %v", raw.Warnings)
	}
}

func TestServicePreviewSingle(t *testing.T) {
	svc, err := NewService(Config{SiteRoot: "testdata/site"}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	p, err := svc.Preview(context.Background(), filepath.ToSlash(filepath.Join("_posts", "2007-02-01-Hello,-World.md")))
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if !reflect.DeepEqual(p.Document.FrontMatter.Tags, []string{"Tech", "Go"}) {
		t.Fatalf("unexpected tags %v", p.Document.FrontMatter.Tags)
	}
}

func TestNewServiceValidatesRoot(t *testing.T) {
	if _, err := NewService(Config{}, nil); !errors.Is(err, ErrSiteRootRequired) {
		t.Fatalf("expected ErrSiteRootRequired, got %v", err)
	}
	if _, err := NewService(Config{SiteRoot: filepath.Join(t.TempDir(), "missing")}, nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
