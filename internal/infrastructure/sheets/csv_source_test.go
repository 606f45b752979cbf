package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ActionCountdown/internal/domain"
)

const sampleCSV = `Action,Details,link_url,link,date,image,headline
Call your rep,Five minutes,https://a.example/info,https://a.example,1,https://img.example/1.jpg,Make a call
Write a letter,"Long, with commas",,https://b.example,2,,Put pen to paper

Attend a meeting,,https://c.example/info,https://c.example,03,,Show up
`

func TestParseRoundTrip(t *testing.T) {
	t.Parallel()

	items, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	want := []domain.CountdownItem{
		{Action: "Call your rep", Details: "Five minutes", LinkURL: "https://a.example/info", Link: "https://a.example", Date: 1, Image: "https://img.example/1.jpg", Headline: "Make a call"},
		{Action: "Write a letter", Details: "Long, with commas", Link: "https://b.example", Date: 2, Headline: "Put pen to paper"},
		{Action: "Attend a meeting", LinkURL: "https://c.example/info", Link: "https://c.example", Date: 3, Headline: "Show up"},
	}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("unexpected items (-want +got):\n%s", diff)
	}
}

func TestParseToleratesShapeDifferences(t *testing.T) {
	t.Parallel()

	csvText := "\ufeff headline ,date,extra\nOnly headline,7,ignored,trailing\nShort row\n,,\n"
	items, err := Parse(strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d: %+v", len(items), items)
	}
	if items[0].Headline != "Only headline" || items[0].Date != 7 {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[1].Headline != "Short row" || items[1].Date != 0 || items[1].Link != "" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	items, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	_, err := Parse(strings.NewReader("date,headline\n1,broken \"quote\n"))
	if err == nil {
		t.Fatalf("expected parse error for bare quote")
	}
}

func TestToDate(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"1":    1,
		" 12 ": 12,
		"08":   8,
		"0":    0,
		"4.0":  4,
		"-2":   -2,
		"-08":  -8,
		"+09":  9,
		"-0":   0,
		"":     0,
		"soon": 0,
	}
	for in, want := range cases {
		if got := toDate(in); got != want {
			t.Fatalf("toDate(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestClientDownloadRejectsHTML(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>Sign in - Google Accounts</title></head><body></body></html>`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, 0)
	_, err := client.Download(context.Background())
	if !errors.Is(err, ErrNotCSV) {
		t.Fatalf("expected ErrNotCSV, got %v", err)
	}
	if !strings.Contains(err.Error(), "Sign in - Google Accounts") {
		t.Fatalf("expected page title in error, got %v", err)
	}
}

func TestClientDownloadStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), server.URL, 0).Download(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestSourceItems(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer server.Close()

	src := NewSource(NewClient(server.Client(), server.URL, 0), nil)
	items := src.Items(context.Background())
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[2].Date != 3 {
		t.Fatalf("unexpected date: %d", items[2].Date)
	}
}

func TestSourceItemsSwallowsFailures(t *testing.T) {
	t.Parallel()

	failing := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		},
		"html": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<!DOCTYPE html><html><title>Error</title></html>"))
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("date,headline\n1,\"unterminated\n"))
		},
	}

	for name, handler := range failing {
		name, handler := name, handler
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(handler)
			defer server.Close()

			items := NewSource(NewClient(server.Client(), server.URL, 0), nil).Items(context.Background())
			if items == nil || len(items) != 0 {
				t.Fatalf("expected empty slice, got %#v", items)
			}
		})
	}
}

func TestSourceItemsNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	items := NewSource(NewClient(nil, url, 0), nil).Items(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected no items after connection failure, got %d", len(items))
	}
}
