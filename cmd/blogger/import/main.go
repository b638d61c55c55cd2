package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	goerrors "github.com/goliatone/go-errors"

	blogimport "github.com/goliatone/go-blogimport"
	"github.com/goliatone/go-blogimport/cmd/blogger/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := runImport(ctx, os.Args[1:], os.Stdout); err != nil {
		var richErr *goerrors.Error
		if errors.As(err, &richErr) && richErr.TextCode != "" {
			log.Fatalf("blogger import [%s]: %v", richErr.TextCode, err)
		}
		log.Fatalf("blogger import: %v", err)
	}
}

func runImport(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("blogger-import", flag.ContinueOnError)
	siteRoot := fs.String("site", "", "Static site root that receives the posts directory")
	importFile := fs.String("file", "", "Blogger Atom export to import")
	envFile := fs.String("env-file", bootstrap.DefaultEnvFile, "Optional dotenv file with BLOGIMPORT_* overrides")
	postsDir := fs.String("posts-dir", "", "Posts directory relative to the site root (default _posts)")
	dryRun := fs.Bool("dry-run", false, "Render every post without writing files")
	slugStyle := fs.String("slug-style", "", "Slug style for file names: verbatim (default) or safe")
	onEntryError := fs.String("on-entry-error", "", "What to do with an invalid entry: skip or abort")
	onWriteError := fs.String("on-write-error", "", "What to do when a post cannot be written: continue or abort")
	sanitize := fs.Bool("sanitize", false, "Strip scripts and event handlers before conversion")
	strict := fs.Bool("strict", false, "Exit with an error when any entry failed")
	logProvider := fs.String("log-provider", "", "Logger provider: console, gologger or none")
	logLevel := fs.String("log-level", "", "Minimum log level")
	logFormat := fs.String("log-format", "", "Log format for the gologger provider: console or json")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *siteRoot == "" {
		return fmt.Errorf("-site is required")
	}
	if *importFile == "" {
		return fmt.Errorf("-file is required")
	}

	set := bootstrap.SetFlags(fs)
	module, err := moduleBuilder(ctx, bootstrap.Options{
		EnvFile:     *envFile,
		PostsDir:    *postsDir,
		SlugStyle:   *slugStyle,
		EntryPolicy: *onEntryError,
		WritePolicy: *onWriteError,
		DryRun:      bootstrap.BoolIf(set["dry-run"], *dryRun),
		Sanitize:    bootstrap.BoolIf(set["sanitize"], *sanitize),
		LogProvider: *logProvider,
		LogLevel:    *logLevel,
		LogFormat:   *logFormat,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Module == nil {
		return fmt.Errorf("importer module not configured")
	}

	var result *blogimport.ImportResult
	handler, err := module.Module.ImportHandler(func(r *blogimport.ImportResult) {
		result = r
	})
	if err != nil {
		return fmt.Errorf("build import handler: %w", err)
	}

	execErr := handler.Execute(ctx, blogimport.ImportFeedCommand{
		SiteRoot:   *siteRoot,
		ImportFile: *importFile,
		DryRun:     module.Config.Import.DryRun,
	})
	failures := 0
	if result != nil {
		printSummary(out, result)
		failures = len(result.Failures)
	}
	if execErr == nil {
		return nil
	}
	if errors.Is(execErr, blogimport.ErrImportIncomplete) && !*strict {
		module.Logger.Warn("blogger.import.incomplete", "failures", failures)
		return nil
	}
	return fmt.Errorf("execute import command: %w", execErr)
}

func printSummary(out io.Writer, result *blogimport.ImportResult) {
	verb := "wrote"
	if result.DryRun {
		verb = "would write"
	}
	fmt.Fprintf(out, "run %s: %d entries, %d posts, %s %d files\n",
		result.RunID, result.EntriesSeen, result.PostsSelected, verb, len(result.Written))
	for _, path := range result.Written {
		fmt.Fprintf(out, "  %s\n", path)
	}
	if result.Fallbacks > 0 {
		fmt.Fprintf(out, "%d posts kept their original HTML\n", result.Fallbacks)
	}
	if len(result.Failures) > 0 {
		fmt.Fprintf(out, "%d entries failed:\n", len(result.Failures))
		for _, failure := range result.Failures {
			label := failure.Title
			if label == "" {
				label = failure.EntryID
			}
			fmt.Fprintf(out, "  [%s] %s: %v\n", failure.Stage, label, failure.Err)
		}
	}
}
