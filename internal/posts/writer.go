package posts

import (
	"context"
	"os"

	"github.com/goliatone/go-blogimport/pkg/interfaces"
)

// OSWriter writes posts to the local filesystem, overwriting existing files.
type OSWriter struct {
	DirMode  os.FileMode
	FileMode os.FileMode
}

var _ interfaces.PostWriter = OSWriter{}

// NewOSWriter returns a writer using 0755 directories and 0644 files.
func NewOSWriter() OSWriter {
	return OSWriter{DirMode: 0o755, FileMode: 0o644}
}

func (w OSWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := w.DirMode
	if mode == 0 {
		mode = 0o755
	}
	return os.MkdirAll(dir, mode)
}

func (w OSWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := w.FileMode
	if mode == 0 {
		mode = 0o644
	}
	return os.WriteFile(path, data, mode)
}

// DryRunWriter records what would be written and touches nothing.
type DryRunWriter struct {
	Dirs  []string
	Files map[string][]byte
}

var _ interfaces.PostWriter = (*DryRunWriter)(nil)

// NewDryRunWriter returns an empty DryRunWriter.
func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{Files: map[string][]byte{}}
}

func (w *DryRunWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.Dirs = append(w.Dirs, dir)
	return nil
}

func (w *DryRunWriter) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.Files == nil {
		w.Files = map[string][]byte{}
	}
	w.Files[path] = append([]byte(nil), data...)
	return nil
}
