package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"

	blogimport "github.com/goliatone/go-blogimport"
	"github.com/goliatone/go-blogimport/cmd/blogger/internal/bootstrap"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	original := configLoader
	t.Cleanup(func() { configLoader = original })
	configLoader = func(ctx context.Context, opts bootstrap.Options) (blogimport.Config, error) {
		opts.Lookuper = envconfig.MapLookuper(nil)
		return original(ctx, opts)
	}
}

func TestRunPreviewRendersSinglePost(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	err := runPreview(context.Background(), []string{
		"-site", "testdata/site",
		"-file", "_posts/2007-02-01-Hello,-World.md",
	}, &out)
	if err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "<strong>there</strong>") {
		t.Fatalf("expected rendered HTML, got %q", got)
	}
	if !strings.Contains(got, `"Title": "Hello, World"`) {
		t.Fatalf("expected front matter dump, got %q", got)
	}
	if strings.Contains(got, "Warning:") {
		t.Fatalf("expected no warnings for a consistent post, got %q", got)
	}
}

func TestRunPreviewMarkdownBody(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	err := runPreview(context.Background(), []string{
		"-site", "testdata/site",
		"-file", "_posts/2007-02-01-Hello,-World.md",
		"-render-html=false",
	}, &out)
	if err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Hi **there**") {
		t.Fatalf("expected raw markdown body, got %q", out.String())
	}
}

func TestRunPreviewChecksEveryPost(t *testing.T) {
	isolateConfig(t)

	var out bytes.Buffer
	if err := runPreview(context.Background(), []string{"-site", "testdata/site"}, &out); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "does not match header date") {
		t.Fatalf("expected date mismatch warning, got %q", got)
	}
	if !strings.Contains(got, "2 posts checked, 1 without warnings") {
		t.Fatalf("expected check summary, got %q", got)
	}
}

func TestRunPreviewRequiresSite(t *testing.T) {
	isolateConfig(t)
	if err := runPreview(context.Background(), nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected missing -site to fail")
	}
}
