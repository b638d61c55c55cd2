package importer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/goliatone/go-blogimport/internal/atom"
	"github.com/goliatone/go-blogimport/internal/blogger"
	"github.com/goliatone/go-blogimport/internal/posts"
	"github.com/goliatone/go-blogimport/internal/runtimeconfig"
	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

var fixedRunID = uuid.MustParse("00000000-0000-0000-0000-000000000042")

func newTestService(cfg runtimeconfig.Config, opts ...Option) *Service {
	opts = append([]Option{WithRunIDGenerator(func() uuid.UUID { return fixedRunID })}, opts...)
	return NewService(cfg, opts...)
}

func verbatimConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Import.SlugStyle = runtimeconfig.SlugStyleVerbatim
	return cfg
}

func readPosts(t *testing.T, root string) map[string][]byte {
	t.Helper()
	dir := filepath.Join(root, "_posts")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read posts dir: %v", err)
	}
	files := map[string][]byte{}
	for _, entry := range entries {
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", entry.Name(), err)
		}
		files[entry.Name()] = data
	}
	return files
}

func TestImportWritesOnlyPosts(t *testing.T) {
	root := t.TempDir()
	svc := newTestService(verbatimConfig())

	result, err := svc.Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if result.RunID != fixedRunID {
		t.Fatalf("unexpected run id %s", result.RunID)
	}
	if result.EntriesSeen != 5 || result.PostsSelected != 2 || len(result.Written) != 2 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if result.Fallbacks != 1 {
		t.Fatalf("expected one fallback, got %d", result.Fallbacks)
	}

	files := readPosts(t, root)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	want := map[string]bool{"2007-02-01-Hello,-World.md": true, "2007-04-02-Raw-markup.md": true}
	if len(files) != len(want) {
		t.Fatalf("expected %d files, got %v", len(want), names)
	}
	for name := range want {
		if _, ok := files[name]; !ok {
			t.Fatalf("missing %s in %v", name, names)
		}
	}

	hello := string(files["2007-02-01-Hello,-World.md"])
	wantHello := "---\ntitle: Hello, World\ndate: 2007-02-01\nlayout: post\ncategories:\ntags:\n- Tech\n- Go\n---\n\nHi"
	if hello != wantHello {
		t.Fatalf("unexpected post:\n%s", hello)
	}

	raw := string(files["2007-04-02-Raw-markup.md"])
	if !strings.HasSuffix(raw, "\n\n5 < 6 and <b>bold") {
		t.Fatalf("expected raw fallback content, got:\n%s", raw)
	}
	if !strings.Contains(raw, "tags:\n- Notes\n") {
		t.Fatalf("expected text category tag, got:\n%s", raw)
	}
}

func TestImportVerbatimNamesByDefault(t *testing.T) {
	root := t.TempDir()
	if _, err := newTestService(runtimeconfig.DefaultConfig()).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"}); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if _, ok := readPosts(t, root)["2007-02-01-Hello,-World.md"]; !ok {
		t.Fatalf("expected verbatim file name for the default config")
	}
}

func TestImportSafeSlugs(t *testing.T) {
	root := t.TempDir()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Import.SlugStyle = runtimeconfig.SlugStyleSafe

	result, err := newTestService(cfg).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	for _, path := range result.Written {
		name := strings.TrimSuffix(filepath.Base(path), ".md")
		for _, r := range name {
			if !(r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
				t.Fatalf("unsafe character %q in %s", r, name)
			}
		}
	}
}

func TestImportKeepsSameDayPostsApart(t *testing.T) {
	cases := []struct {
		style string
		want  []string
	}{
		{runtimeconfig.SlugStyleVerbatim, []string{
			"2007-02-01-Привет-мир.md",
			"2007-02-01-Второй-пост.md",
			"2007-02-01-Notes.md",
			"2007-02-01-notes-2.md",
		}},
		{runtimeconfig.SlugStyleSafe, []string{
			"2007-02-01-privet-mir.md",
			"2007-02-01-vtoroj-post.md",
			"2007-02-01-notes.md",
			"2007-02-01-notes-2.md",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.style, func(t *testing.T) {
			root := t.TempDir()
			cfg := runtimeconfig.DefaultConfig()
			cfg.Import.SlugStyle = tc.style

			result, err := newTestService(cfg).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/same_day.xml"})
			if err != nil {
				t.Fatalf("Import returned error: %v", err)
			}
			if len(result.Failures) != 0 || result.Skipped != 0 {
				t.Fatalf("expected no failures, got %+v", result.Failures)
			}

			var names []string
			for _, path := range result.Written {
				names = append(names, filepath.Base(path))
			}
			if !reflect.DeepEqual(names, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, names)
			}

			files := readPosts(t, root)
			if len(files) != len(tc.want) {
				t.Fatalf("expected %d files on disk, got %d", len(tc.want), len(files))
			}
			for i, name := range tc.want {
				body := fmt.Sprintf("\n\nBody %d", i+1)
				if !strings.HasSuffix(string(files[name]), body) {
					t.Fatalf("expected %s to end with %q, got:\n%s", name, body, files[name])
				}
			}
		})
	}
}

func TestImportIsIdempotent(t *testing.T) {
	root := t.TempDir()
	svc := newTestService(verbatimConfig())
	opts := interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"}

	if _, err := svc.Import(context.Background(), opts); err != nil {
		t.Fatalf("first import: %v", err)
	}
	first := readPosts(t, root)

	if _, err := newTestService(verbatimConfig()).Import(context.Background(), opts); err != nil {
		t.Fatalf("second import: %v", err)
	}
	second := readPosts(t, root)

	if len(first) != len(second) {
		t.Fatalf("file sets differ: %d vs %d", len(first), len(second))
	}
	for name, data := range first {
		if !bytes.Equal(data, second[name]) {
			t.Fatalf("%s changed between runs", name)
		}
	}
}

func TestImportMalformedFeedWritesNothing(t *testing.T) {
	root := t.TempDir()
	_, err := newTestService(runtimeconfig.DefaultConfig()).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/malformed.xml"})
	if !errors.Is(err, atom.ErrMalformedFeed) {
		t.Fatalf("expected ErrMalformedFeed, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "_posts")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no posts dir, got %v", statErr)
	}
}

func TestImportMissingFeed(t *testing.T) {
	_, err := newTestService(runtimeconfig.DefaultConfig()).Import(context.Background(), interfaces.ImportOptions{SiteRoot: t.TempDir(), ImportFile: "testdata/nope.xml"})
	if !errors.Is(err, atom.ErrFeedUnreadable) {
		t.Fatalf("expected ErrFeedUnreadable, got %v", err)
	}
}

func TestImportSkipsBadEntries(t *testing.T) {
	root := t.TempDir()
	result, err := newTestService(verbatimConfig()).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/broken_entries.xml"})
	if !errors.Is(err, ErrImportIncomplete) {
		t.Fatalf("expected ErrImportIncomplete, got %v", err)
	}
	if !errors.Is(err, blogger.ErrMissingField) || !errors.Is(err, blogger.ErrInvalidDate) {
		t.Fatalf("expected entry causes to be reachable, got %v", err)
	}
	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) || incomplete.Summary == nil {
		t.Fatalf("expected *IncompleteError with summary, got %v", err)
	}
	if !goerrors.IsCategory(incomplete.Summary, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %s", incomplete.Summary.Category)
	}

	if result.Skipped != 2 || len(result.Failures) != 2 || len(result.Written) != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Failures[0].EntryID != "post-missing-title" || result.Failures[1].EntryID != "post-bad-date" {
		t.Fatalf("unexpected failure order %+v", result.Failures)
	}
	for _, failure := range result.Failures {
		if failure.Stage != StageExtract {
			t.Fatalf("expected extract stage, got %s", failure.Stage)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "_posts", "2008-01-03-Good-one.md"))
	if err != nil {
		t.Fatalf("expected good post to be written: %v", err)
	}
	if !strings.Contains(string(data), "tags:\n- b\n- a\n- b\n") {
		t.Fatalf("expected tags in document order with duplicates, got:\n%s", data)
	}
}

func TestImportAbortsOnBadEntry(t *testing.T) {
	root := t.TempDir()
	cfg := verbatimConfig()
	cfg.Import.EntryPolicy = runtimeconfig.EntryPolicyAbort

	result, err := newTestService(cfg).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/broken_entries.xml"})
	if !errors.Is(err, ErrImportAborted) || !errors.Is(err, blogger.ErrMissingField) {
		t.Fatalf("expected abort on missing title, got %v", err)
	}
	if len(result.Written) != 0 || len(result.Failures) != 1 {
		t.Fatalf("expected nothing written after abort, got %+v", result)
	}
}

type flakyWriter struct {
	inner   interfaces.PostWriter
	failOn  string
	err     error
	written []string
}

func (w *flakyWriter) EnsureDir(ctx context.Context, dir string) error {
	return w.inner.EnsureDir(ctx, dir)
}

func (w *flakyWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if strings.Contains(path, w.failOn) {
		return w.err
	}
	w.written = append(w.written, path)
	return w.inner.WriteFile(ctx, path, data)
}

func TestImportWritePolicies(t *testing.T) {
	diskErr := errors.New("disk full")

	t.Run("continue", func(t *testing.T) {
		root := t.TempDir()
		writer := &flakyWriter{inner: posts.NewOSWriter(), failOn: "Hello", err: diskErr}
		result, err := newTestService(verbatimConfig(), WithWriter(writer)).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"})
		if !errors.Is(err, ErrImportIncomplete) || !errors.Is(err, diskErr) {
			t.Fatalf("expected incomplete import with disk error, got %v", err)
		}
		if len(result.Written) != 1 || len(result.Failures) != 1 || result.Failures[0].Stage != StageEmit {
			t.Fatalf("unexpected result %+v", result)
		}
		var incomplete *IncompleteError
		if !errors.As(err, &incomplete) || incomplete.Summary.TextCode != TextCodeWriteFailed {
			t.Fatalf("expected write failure text code, got %v", err)
		}
	})

	t.Run("abort", func(t *testing.T) {
		root := t.TempDir()
		cfg := verbatimConfig()
		cfg.Import.WritePolicy = runtimeconfig.WritePolicyAbort
		writer := &flakyWriter{inner: posts.NewOSWriter(), failOn: "Hello", err: diskErr}
		result, err := newTestService(cfg, WithWriter(writer)).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"})
		if !errors.Is(err, ErrImportAborted) || !errors.Is(err, diskErr) {
			t.Fatalf("expected aborted import, got %v", err)
		}
		if len(writer.written) != 0 || len(result.Written) != 0 {
			t.Fatalf("expected no writes after abort, got %v", writer.written)
		}
	})
}

func TestImportDryRun(t *testing.T) {
	root := t.TempDir()
	result, err := newTestService(verbatimConfig()).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml", DryRun: true})
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if !result.DryRun {
		t.Fatalf("expected dry run flag on result")
	}
	want := []string{
		filepath.Join(root, "_posts", "2007-02-01-Hello,-World.md"),
		filepath.Join(root, "_posts", "2007-04-02-Raw-markup.md"),
	}
	if !reflect.DeepEqual(result.Written, want) {
		t.Fatalf("expected %v, got %v", want, result.Written)
	}
	if _, statErr := os.Stat(filepath.Join(root, "_posts")); !os.IsNotExist(statErr) {
		t.Fatalf("dry run created posts dir: %v", statErr)
	}
}

type stubConverter struct{ calls int }

func (c *stubConverter) Convert(fragment string) interfaces.ConversionResult {
	c.calls++
	return interfaces.ConversionResult{Markdown: strings.ToUpper(fragment)}
}

func TestImportUsesInjectedConverter(t *testing.T) {
	root := t.TempDir()
	converter := &stubConverter{}
	if _, err := newTestService(verbatimConfig(), WithConverter(converter)).Import(context.Background(), interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"}); err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if converter.calls != 2 {
		t.Fatalf("expected converter per post, got %d", converter.calls)
	}
	files := readPosts(t, root)
	if !strings.HasSuffix(string(files["2007-02-01-Hello,-World.md"]), "<P>HI</P>") {
		t.Fatalf("expected converter output in file")
	}
}

func TestImportHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	loader := func(path string) (*atom.Feed, error) {
		feed, err := atom.LoadFile(path)
		cancel()
		return feed, err
	}
	root := t.TempDir()
	_, err := newTestService(verbatimConfig(), WithFeedLoader(loader)).Import(ctx, interfaces.ImportOptions{SiteRoot: root, ImportFile: "testdata/export.xml"})
	if !errors.Is(err, context.Canceled) || !errors.Is(err, ErrImportAborted) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "_posts")); !os.IsNotExist(statErr) {
		t.Fatalf("expected no output after cancellation")
	}
}

func TestImportValidatesOptions(t *testing.T) {
	svc := newTestService(runtimeconfig.DefaultConfig())
	if _, err := svc.Import(context.Background(), interfaces.ImportOptions{ImportFile: "x"}); !errors.Is(err, ErrSiteRootRequired) {
		t.Fatalf("expected ErrSiteRootRequired, got %v", err)
	}
	if _, err := svc.Import(context.Background(), interfaces.ImportOptions{SiteRoot: "x"}); !errors.Is(err, ErrImportFileRequired) {
		t.Fatalf("expected ErrImportFileRequired, got %v", err)
	}
}
