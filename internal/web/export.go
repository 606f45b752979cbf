package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"ActionCountdown/internal/config"
	"ActionCountdown/internal/usecase"
)

// Exporter writes the site as static files.
type Exporter struct {
	pages    *usecase.Pages
	renderer *Renderer
	site     config.SiteConfig
	assets   fs.FS
	logger   *slog.Logger
}

// NewExporter builds a static exporter sharing the server's renderer.
func NewExporter(pages *usecase.Pages, renderer *Renderer, site config.SiteConfig, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exporter{pages: pages, renderer: renderer, site: site, assets: Static(), logger: logger}
}

type exportFile struct {
	name   string
	render func(io.Writer) error
}

// Export writes every page and asset into dir. A failing file does not stop
// the others; all failures are returned together.
func (e *Exporter) Export(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	files, err := e.files(ctx)
	var result *multierror.Error
	if err != nil {
		result = multierror.Append(result, err)
	}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}
		if err := writeFile(dir, f); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	e.logger.Info("export done", "dir", dir)
	return nil
}

// files lists everything to write. A failure to list the static assets is
// returned alongside the remaining files.
func (e *Exporter) files(ctx context.Context) ([]exportFile, error) {
	files := []exportFile{
		{name: "index.html", render: func(w io.Writer) error {
			return e.renderer.Masonry(w, e.pages.Masonry(ctx, nil))
		}},
		{name: "carousel/index.html", render: func(w io.Writer) error {
			return e.renderer.Carousel(w, e.pages.Carousel(ctx, 0, false))
		}},
		{name: "items.json", render: func(w io.Writer) error {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(e.pages.Items(ctx))
		}},
		{name: "static/app.css", render: func(w io.Writer) error {
			_, err := w.Write(e.renderer.CSS())
			return err
		}},
	}

	static, listErr := fs.ReadDir(e.assets, ".")
	if listErr != nil {
		listErr = fmt.Errorf("static: %w", listErr)
	}
	for _, entry := range static {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		files = append(files, exportFile{name: "static/" + name, render: func(w io.Writer) error {
			raw, err := fs.ReadFile(e.assets, name)
			if err != nil {
				return err
			}
			_, err = w.Write(raw)
			return err
		}})
	}

	if e.site.RedirectRoot && e.site.BasePath != "" {
		files = append(files, exportFile{name: "_redirects", render: func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "/  %s  302\n", e.site.BasePath)
			return err
		}})
	}
	return files, listErr
}

func writeFile(dir string, f exportFile) error {
	var buf bytes.Buffer
	if err := f.render(&buf); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}

	path := filepath.Join(dir, filepath.FromSlash(f.name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}
