package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-blogimport/cmd/blogger/internal/bootstrap"
	"github.com/goliatone/go-blogimport/internal/logging"
	"github.com/goliatone/go-blogimport/internal/markdown"
)

var configLoader = bootstrap.LoadConfig

func main() {
	if err := runPreview(context.Background(), os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("blogger preview: %v", err)
	}
}

func runPreview(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("blogger-preview", flag.ContinueOnError)
	siteRoot := fs.String("site", "", "Static site root holding the posts directory")
	filePath := fs.String("file", "", "Post to preview, relative to the site root (default: check every post)")
	envFile := fs.String("env-file", bootstrap.DefaultEnvFile, "Optional dotenv file with BLOGIMPORT_* overrides")
	renderHTML := fs.Bool("render-html", true, "Render the Markdown body into HTML")
	hardWraps := fs.Bool("hard-wraps", false, "Render soft line breaks as <br>")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *siteRoot == "" {
		return fmt.Errorf("-site is required")
	}

	cfg, err := configLoader(ctx, bootstrap.Options{EnvFile: *envFile})
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	svc, err := markdown.NewService(markdown.Config{
		SiteRoot: *siteRoot,
		PostsDir: cfg.Import.PostsDir,
		Render:   markdown.RenderOptions{HardWraps: *hardWraps},
	}, logging.NoOp())
	if err != nil {
		return err
	}

	if *filePath == "" {
		previews, err := svc.PreviewAll(ctx)
		if err != nil {
			return err
		}
		clean := 0
		for _, p := range previews {
			if len(p.Warnings) == 0 {
				clean++
				continue
			}
			fmt.Fprintf(out, "%s\n", p.Document.Path)
			for _, warning := range p.Warnings {
				fmt.Fprintf(out, "  %s\n", warning)
			}
		}
		fmt.Fprintf(out, "%d posts checked, %d without warnings\n", len(previews), clean)
		return nil
	}

	p, err := svc.Preview(ctx, *filePath)
	if err != nil {
		return err
	}
	doc := p.Document

	fmt.Fprintf(out, "Path: %s\nModified: %s\n\n", doc.Path, doc.LastModified.Format("2006-01-02 15:04:05"))
	if header, err := json.MarshalIndent(doc.FrontMatter, "", "  "); err == nil {
		fmt.Fprintf(out, "Frontmatter:\n%s\n\n", header)
	}
	for _, warning := range p.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", warning)
	}
	if *renderHTML {
		fmt.Fprintf(out, "Rendered HTML:\n%s\n", string(p.HTML))
	} else {
		fmt.Fprintf(out, "Markdown Body:\n%s\n", doc.Body)
	}
	return nil
}
