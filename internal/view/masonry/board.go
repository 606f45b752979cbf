package masonry

import "sort"

// Outcome describes what a click on a card should do.
type Outcome struct {
	// Open is the card state after the click.
	Open bool
	// Navigate is set when the click must open URL in a new context.
	Navigate bool
	URL      string
	// PreventDefault is set when the browser's own link handling must be
	// suppressed.
	PreventDefault bool
}

// Board holds the flip state of every card, keyed by item date. Cards flip
// independently; any number may be open at once.
type Board struct {
	open map[int]struct{}
}

// NewBoard starts with the given dates face up.
func NewBoard(open ...int) *Board {
	b := &Board{open: make(map[int]struct{}, len(open))}
	for _, date := range open {
		b.open[date] = struct{}{}
	}
	return b
}

// IsOpen reports whether the card for date is face up.
func (b *Board) IsOpen(date int) bool {
	_, ok := b.open[date]
	return ok
}

// ClickCard toggles the card. It never navigates.
func (b *Board) ClickCard(date int) Outcome {
	if b.IsOpen(date) {
		delete(b.open, date)
		return Outcome{Open: false, PreventDefault: true}
	}
	b.open[date] = struct{}{}
	return Outcome{Open: true, PreventDefault: true}
}

// ClickLink handles a click on the card's link affordance. A closed card is
// opened instead of followed; an open card navigates to url exactly once.
func (b *Board) ClickLink(date int, url string) Outcome {
	if !b.IsOpen(date) {
		b.open[date] = struct{}{}
		return Outcome{Open: true, PreventDefault: true}
	}
	return Outcome{Open: true, Navigate: true, URL: url, PreventDefault: true}
}

// Open lists the face-up dates in ascending order.
func (b *Board) Open() []int {
	dates := make([]int, 0, len(b.open))
	for date := range b.open {
		dates = append(dates, date)
	}
	sort.Ints(dates)
	return dates
}
