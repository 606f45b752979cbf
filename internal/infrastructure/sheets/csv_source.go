package sheets

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cast"

	"ActionCountdown/internal/domain"
	"ActionCountdown/internal/ports"
)

var (
	// ErrUnexpectedStatus is returned for any non-200 export response.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrNotCSV is returned when the export URL serves an HTML page instead of
	// CSV, which is what an unpublished or private sheet does.
	ErrNotCSV = errors.New("response is not csv")
)

// Column names of the published sheet header row.
const (
	colAction   = "Action"
	colDetails  = "Details"
	colLinkURL  = "link_url"
	colLink     = "link"
	colDate     = "date"
	colImage    = "image"
	colHeadline = "headline"
)

// Client downloads the CSV export of a published spreadsheet.
type Client struct {
	client  *http.Client
	url     string
	timeout time.Duration
}

// NewClient wires an HTTP client; a nil client uses one without a timeout so the
// transport defaults apply.
func NewClient(client *http.Client, url string, timeout time.Duration) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{client: client, url: url, timeout: timeout}
}

// Download fetches the raw CSV body.
func (c *Client) Download(ctx context.Context) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "ActionCountdown/1.0")
	req.Header.Set("Accept", "text/csv")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheet returned %s: %w", resp.Status, ErrUnexpectedStatus)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if looksLikeHTML(resp.Header.Get("Content-Type"), body) {
		return nil, fmt.Errorf("sheet served page %q: %w", pageTitle(body), ErrNotCSV)
	}

	return body, nil
}

func looksLikeHTML(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/html" {
		return true
	}
	head := bytes.ToLower(bytes.TrimSpace(body))
	return bytes.HasPrefix(head, []byte("<!doctype html")) || bytes.HasPrefix(head, []byte("<html"))
}

func pageTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// Parse reads a header-keyed CSV into countdown items. Unknown columns are
// ignored, missing columns stay empty and blank rows are skipped.
func Parse(r io.Reader) ([]domain.CountdownItem, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []domain.CountdownItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	items := make([]domain.CountdownItem, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if blankRecord(record) {
			continue
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		items = append(items, domain.CountdownItem{
			Action:   field(colAction),
			Details:  field(colDetails),
			LinkURL:  field(colLinkURL),
			Link:     field(colLink),
			Date:     toDate(field(colDate)),
			Image:    field(colImage),
			Headline: field(colHeadline),
		})
	}

	return items, nil
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// toDate coerces the date cell; anything non-numeric becomes 0. Leading zeros
// after an optional sign are dropped first since cast reads "08" as an octal
// literal.
func toDate(raw string) int {
	raw = strings.TrimSpace(raw)
	sign := ""
	if raw != "" && (raw[0] == '-' || raw[0] == '+') {
		sign, raw = raw[:1], raw[1:]
	}
	if trimmed := strings.TrimLeft(raw, "0"); trimmed != raw {
		if trimmed == "" || trimmed[0] == '.' {
			trimmed = "0" + trimmed
		}
		raw = trimmed
	}
	date, err := cast.ToIntE(sign + raw)
	if err != nil {
		return 0
	}
	return date
}

// Source implements ports.ItemSource on top of Client and Parse.
type Source struct {
	client *Client
	logger *slog.Logger
}

var _ ports.ItemSource = (*Source)(nil)

// NewSource wires the download client and a logger for swallowed failures.
func NewSource(client *Client, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{client: client, logger: logger}
}

// Items fetches and parses the sheet. Every failure is logged and yields an
// empty slice.
func (s *Source) Items(ctx context.Context) []domain.CountdownItem {
	items, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("fetch countdown items", "url", s.client.url, "error", err)
		return []domain.CountdownItem{}
	}
	s.logger.Debug("fetched countdown items", "count", len(items))
	return items
}

func (s *Source) fetch(ctx context.Context) ([]domain.CountdownItem, error) {
	body, err := s.client.Download(ctx)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}

	items, err := Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	for _, item := range items {
		if item.Date == 0 {
			s.logger.Debug("row without numeric date", "headline", item.Headline)
		}
	}
	return items, nil
}
