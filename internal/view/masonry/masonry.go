// Package masonry arranges countdown items into a shuffled flip-card grid and
// tracks which cards are turned face up.
package masonry

import (
	"hash/fnv"
	"math/rand"
	"strconv"
	"sync"

	"ActionCountdown/internal/domain"
)

// Heights are the card height buckets in pixels, assigned by position.
var Heights = []int{200, 250, 300, 350, 280, 320, 240, 360}

// Theme is the decorative palette of a face-down card.
type Theme struct {
	Name      string
	BackClass string
	TextClass string
}

// Themes are the face-down card palettes, drawn uniformly per card.
var Themes = []Theme{
	{Name: "red", BackClass: "back-red", TextClass: "text-light"},
	{Name: "blue", BackClass: "back-blue", TextClass: "text-light"},
	{Name: "white", BackClass: "back-white", TextClass: "text-dark"},
}

// Columns maps minimum viewport widths to grid column counts.
var Columns = []Breakpoint{
	{MinWidth: 350, Columns: 1},
	{MinWidth: 640, Columns: 2},
	{MinWidth: 1024, Columns: 3},
	{MinWidth: 1280, Columns: 4},
}

// Breakpoint is one responsive column tier.
type Breakpoint struct {
	MinWidth int
	Columns  int
}

// ColumnsFor returns the column count for a viewport width.
func ColumnsFor(width int) int {
	cols := 1
	for _, bp := range Columns {
		if width >= bp.MinWidth {
			cols = bp.Columns
		}
	}
	return cols
}

// Card is an item with its decorative layout.
type Card struct {
	Item   domain.CountdownItem
	Height int
	Theme  Theme
}

// Layout shuffles items with a uniform permutation and assigns decorative state.
// The input slice is not modified.
func Layout(items []domain.CountdownItem, rng *rand.Rand) []Card {
	shuffled := make([]domain.CountdownItem, len(items))
	copy(shuffled, items)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cards := make([]Card, len(shuffled))
	for i, item := range shuffled {
		cards[i] = Card{
			Item:   item,
			Height: Heights[i%len(Heights)],
			Theme:  Themes[rng.Intn(len(Themes))],
		}
	}
	return cards
}

// Arranger computes a layout once per distinct item list and returns the same
// arrangement until the list changes. Safe for concurrent use.
type Arranger struct {
	mu          sync.Mutex
	rng         *rand.Rand
	fingerprint uint64
	cards       []Card
	ready       bool
}

// NewArranger seeds the shuffle source.
func NewArranger(seed int64) *Arranger {
	return &Arranger{rng: rand.New(rand.NewSource(seed))}
}

// Arrange returns the layout for items.
func (a *Arranger) Arrange(items []domain.CountdownItem) []Card {
	fp := Fingerprint(items)

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.ready || fp != a.fingerprint {
		a.cards = Layout(items, a.rng)
		a.fingerprint = fp
		a.ready = true
	}

	out := make([]Card, len(a.cards))
	copy(out, a.cards)
	return out
}

// Fingerprint hashes every field of every item in order.
func Fingerprint(items []domain.CountdownItem) uint64 {
	h := fnv.New64a()
	for _, item := range items {
		for _, field := range []string{
			strconv.Itoa(item.Date), item.Headline, item.Link, item.LinkURL,
			item.Image, item.Action, item.Details,
		} {
			h.Write([]byte(field))
			h.Write([]byte{0})
		}
		h.Write([]byte{1})
	}
	return h.Sum64()
}
