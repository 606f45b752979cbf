package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sheet = "date,headline,link,image\n1,First action,https://example.org/1,\n2,Second action,https://example.org/2,\n"

func writeConfig(t *testing.T, csvURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := fmt.Sprintf("source:\n  csvUrl: %s\ncampaign:\n  startDate: \"2025-10-01\"\nlogging:\n  level: error\n", csvURL)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExportCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, sheet)
	}))
	defer srv.Close()

	out := t.TempDir()
	var stdout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"export", "--config", writeConfig(t, srv.URL), "--out", out})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(stdout.String(), "exported") {
		t.Fatalf("unexpected output %q", stdout.String())
	}

	items, err := os.ReadFile(filepath.Join(out, "items.json"))
	if err != nil {
		t.Fatalf("read items: %v", err)
	}
	if !strings.Contains(string(items), "Second action") {
		t.Fatalf("items.json missing rows: %s", items)
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	if isTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is a terminal")
	}

	cmd := newRootCmd()
	cmd.SetArgs([]string{"tui"})
	if err := cmd.ExecuteContext(context.Background()); !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected errNotTerminal, got %v", err)
	}
}

func TestUnknownArgsRejected(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "extra"})
	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Fatalf("expected argument error")
	}
}

func TestExecuteReportsUsageErrors(t *testing.T) {
	for _, args := range [][]string{{"bogus"}, {"export", "--no-such-flag"}} {
		var stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(args)
		if err := execute(context.Background(), cmd, &stderr); err == nil {
			t.Fatalf("%v: expected error", args)
		}
		if !strings.Contains(stderr.String(), "✖") {
			t.Fatalf("%v: error not printed, stderr=%q", args, stderr.String())
		}
	}
}

func TestExecuteDoesNotRepeatReportedErrors(t *testing.T) {
	if isTerminal(os.Stdout.Fd()) {
		t.Skip("stdout is a terminal")
	}

	var stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"tui"})
	if err := execute(context.Background(), cmd, &stderr); !errors.Is(err, errNotTerminal) {
		t.Fatalf("expected errNotTerminal, got %v", err)
	}
	if stderr.Len() != 0 {
		t.Fatalf("reported error printed twice: %q", stderr.String())
	}
}
