package web

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportWritesSite(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(testSite)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dir := t.TempDir()
	exporter := NewExporter(newTestPages(sampleItems), renderer, testSite, nil)

	if err := exporter.Export(context.Background(), dir); err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, name := range []string{"index.html", "carousel/index.html", "items.json", "static/app.css", "static/app.js", "_redirects"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}

	index, _ := os.ReadFile(filepath.Join(dir, "index.html"))
	if !strings.Contains(string(index), `href="/No-Kings-Countdown/static/app.css"`) {
		t.Fatalf("asset urls not prefixed with base path")
	}

	redirects, _ := os.ReadFile(filepath.Join(dir, "_redirects"))
	if got := strings.TrimSpace(string(redirects)); got != "/  /No-Kings-Countdown  302" {
		t.Fatalf("unexpected redirects %q", got)
	}
}

func TestExportWithoutRedirect(t *testing.T) {
	t.Parallel()

	site := testSite
	site.RedirectRoot = false
	renderer, err := NewRenderer(site)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dir := t.TempDir()

	if err := NewExporter(newTestPages(sampleItems), renderer, site, nil).Export(context.Background(), dir); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "_redirects")); !os.IsNotExist(err) {
		t.Fatalf("unexpected _redirects file: %v", err)
	}
}

func TestExportAggregatesFailures(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(testSite)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dir := t.TempDir()
	// a plain file where a directory is needed breaks every nested path
	if err := os.WriteFile(filepath.Join(dir, "static"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "carousel"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err = NewExporter(newTestPages(sampleItems), renderer, testSite, nil).Export(context.Background(), dir)
	if err == nil {
		t.Fatalf("expected export error")
	}
	for _, name := range []string{"carousel/index.html", "static/app.css", "static/app.js"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error does not mention %s: %v", name, err)
		}
	}
	if _, statErr := os.Stat(filepath.Join(dir, "index.html")); statErr != nil {
		t.Fatalf("healthy files should still be written: %v", statErr)
	}
}

type brokenFS struct{}

func (brokenFS) Open(string) (fs.File, error) { return nil, errors.New("assets unavailable") }

func TestExportReportsUnreadableAssets(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(testSite)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	dir := t.TempDir()
	exporter := NewExporter(newTestPages(sampleItems), renderer, testSite, nil)
	exporter.assets = brokenFS{}

	err = exporter.Export(context.Background(), dir)
	if err == nil || !strings.Contains(err.Error(), "assets unavailable") {
		t.Fatalf("expected asset listing error, got %v", err)
	}
	for _, name := range []string{"index.html", "carousel/index.html", "items.json", "static/app.css"} {
		if _, statErr := os.Stat(filepath.Join(dir, name)); statErr != nil {
			t.Fatalf("%s should still be written: %v", name, statErr)
		}
	}
}

func TestExportCancelled(t *testing.T) {
	t.Parallel()

	renderer, err := NewRenderer(testSite)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewExporter(newTestPages(sampleItems), renderer, testSite, nil).Export(ctx, t.TempDir()); err == nil {
		t.Fatalf("expected cancellation error")
	}
}
