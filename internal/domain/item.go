package domain

import "strings"

// DefaultImage is shown for rows without an image.
const DefaultImage = "https://images.unsplash.com/photo-1582213782179-e0d53f98f2ca?w=900&auto=format&fit=crop&q=60&ixlib=rb-4.1.0&ixid=M3wxMjA3fDB8MHxzZWFyY2h8Mnx8Y29tbXVuaXR5fGVufDB8fDB8fHww"

// CountdownItem is one row of the source spreadsheet.
type CountdownItem struct {
	Action   string `json:"Action"`
	Details  string `json:"Details"`
	LinkURL  string `json:"link_url"`
	Link     string `json:"link"`
	Date     int    `json:"date"`
	Image    string `json:"image"`
	Headline string `json:"headline"`
}

// ImageURL returns the row image or DefaultImage when the cell is blank.
func (i CountdownItem) ImageURL() string {
	if strings.TrimSpace(i.Image) == "" {
		return DefaultImage
	}
	return i.Image
}

// Target is the URL opened when the item is activated.
func (i CountdownItem) Target() string {
	if i.Link != "" {
		return i.Link
	}
	return i.LinkURL
}

// DayStatus places an item relative to the current campaign day.
type DayStatus string

const (
	StatusPast   DayStatus = "past"
	StatusToday  DayStatus = "today"
	StatusFuture DayStatus = "future"
)

// IsPast reports whether the item's day has already gone by.
func (s DayStatus) IsPast() bool { return s == StatusPast }

// IsToday reports whether the item belongs to the current day.
func (s DayStatus) IsToday() bool { return s == StatusToday }
