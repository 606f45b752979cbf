// Package carousel models a center-focused, wrap-around item carousel.
package carousel

import (
	"time"

	"ActionCountdown/internal/domain"
)

// SettleDelay is how long after mounting the centering pass is repeated, once
// layout has been measured.
const SettleDelay = 100 * time.Millisecond

// Settings controls how many slides are visible around the centered one.
type Settings struct {
	SlidesToShow  int
	CenterPadding int
}

// Tier overrides Settings at and below MaxWidth.
type Tier struct {
	Name     string
	MaxWidth int
	Settings Settings
}

// Default applies above every tier.
var Default = Settings{SlidesToShow: 3, CenterPadding: 0}

// Tiers are ordered widest first.
var Tiers = []Tier{
	{Name: "desktop", MaxWidth: 1024, Settings: Settings{SlidesToShow: 3, CenterPadding: 0}},
	{Name: "tablet", MaxWidth: 768, Settings: Settings{SlidesToShow: 1, CenterPadding: 20}},
	{Name: "mobile", MaxWidth: 480, Settings: Settings{SlidesToShow: 1, CenterPadding: 15}},
}

// SettingsFor resolves the responsive settings for a viewport width.
func SettingsFor(width int) Settings {
	s := Default
	for _, tier := range Tiers {
		if width <= tier.MaxWidth {
			s = tier.Settings
		}
	}
	return s
}

// InitialIndex is the index of the item dated currentDay, or 0 when no item
// matches.
func InitialIndex(items []domain.CountdownItem, currentDay int) int {
	for i, item := range items {
		if item.Date == currentDay {
			return i
		}
	}
	return 0
}

// Carousel tracks the centered slide. Navigation wraps around both ends.
type Carousel struct {
	items    []domain.CountdownItem
	target   int
	centered int
}

// Mount centers the carousel on today's item.
func Mount(items []domain.CountdownItem, currentDay int) *Carousel {
	idx := InitialIndex(items, currentDay)
	return &Carousel{items: items, target: idx, centered: idx}
}

// Settle repeats the mount-time centering pass.
func (c *Carousel) Settle() {
	c.centered = c.target
}

// Len is the number of slides.
func (c *Carousel) Len() int { return len(c.items) }

// Centered is the index of the focused slide.
func (c *Carousel) Centered() int { return c.centered }

// Current returns the focused item; ok is false for an empty carousel.
func (c *Carousel) Current() (domain.CountdownItem, bool) {
	if len(c.items) == 0 {
		return domain.CountdownItem{}, false
	}
	return c.items[c.centered], true
}

// Next moves focus one slide right.
func (c *Carousel) Next() { c.Focus(c.centered + 1) }

// Prev moves focus one slide left.
func (c *Carousel) Prev() { c.Focus(c.centered - 1) }

// Focus centers slide i, wrapping out-of-range indexes.
func (c *Carousel) Focus(i int) {
	if len(c.items) == 0 {
		return
	}
	c.centered = wrap(i, len(c.items))
}

// Window lists the indexes visible with n slides shown, centered slide in the
// middle. Slides are not repeated when there are fewer items than n.
func (c *Carousel) Window(n int) []int {
	total := len(c.items)
	if total == 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}

	left := (n - 1) / 2
	out := make([]int, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, wrap(c.centered-left+k, total))
	}
	return out
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
