package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"ActionCountdown/internal/calendar"
	"ActionCountdown/internal/domain"
	"ActionCountdown/internal/ports"
	"ActionCountdown/internal/view/carousel"
	"ActionCountdown/internal/view/masonry"
)

// PagesDeps wires the source and view models into the page builder.
type PagesDeps struct {
	Source   ports.ItemSource
	Calendar *calendar.Calendar
	Arranger *masonry.Arranger
	Logger   *slog.Logger
}

// Pages turns fetched items into render-ready page models.
type Pages struct {
	source   ports.ItemSource
	calendar *calendar.Calendar
	arranger *masonry.Arranger
	logger   *slog.Logger
}

// NewPages constructs the page builder.
func NewPages(deps PagesDeps) *Pages {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	arranger := deps.Arranger
	if arranger == nil {
		arranger = masonry.NewArranger(time.Now().UnixNano())
	}
	return &Pages{
		source:   deps.Source,
		calendar: deps.Calendar,
		arranger: arranger,
		logger:   logger,
	}
}

// ItemView is an item classified against the current day.
type ItemView struct {
	domain.CountdownItem
	Status domain.DayStatus `json:"status"`
	Src    string           `json:"imageSrc"`
	Href   string           `json:"href"`
}

// MasonryCard is a flip card with its layout and flip state.
type MasonryCard struct {
	ItemView
	Height int
	Theme  masonry.Theme
	Open   bool
}

// MasonryPage is the flip-card grid.
type MasonryPage struct {
	CurrentDay int
	Today      time.Time
	Cards      []MasonryCard
}

// CarouselSlide is one slide with its focus state.
type CarouselSlide struct {
	ItemView
	Index    int
	Centered bool
	// Visible is set for slides inside the widest responsive window.
	Visible bool
}

// CarouselPage is the center-focused carousel.
type CarouselPage struct {
	CurrentDay int
	Today      time.Time
	Centered   int
	Prev       int
	Next       int
	Slides     []CarouselSlide
}

// ItemsPage is the classified item list.
type ItemsPage struct {
	CurrentDay int        `json:"currentDay"`
	Items      []ItemView `json:"items"`
}

// CurrentDay exposes the day resolution used by every page.
func (p *Pages) CurrentDay() int {
	return p.calendar.CurrentDay()
}

// Items fetches the source and classifies every row.
func (p *Pages) Items(ctx context.Context) ItemsPage {
	items := p.fetch(ctx)
	day := p.calendar.CurrentDay()
	return ItemsPage{CurrentDay: day, Items: classify(items, day)}
}

// Masonry builds the grid with the given dates face up.
func (p *Pages) Masonry(ctx context.Context, open []int) MasonryPage {
	items := p.fetch(ctx)
	day := p.calendar.CurrentDay()
	board := masonry.NewBoard(open...)

	cards := p.arranger.Arrange(items)
	out := make([]MasonryCard, len(cards))
	for i, card := range cards {
		out[i] = MasonryCard{
			ItemView: view(card.Item, day),
			Height:   card.Height,
			Theme:    card.Theme,
			Open:     board.IsOpen(card.Item.Date),
		}
	}

	return MasonryPage{CurrentDay: day, Today: p.calendar.DateOf(day), Cards: out}
}

// Carousel builds the carousel centered on today's item, or on focus when
// hasFocus is set.
func (p *Pages) Carousel(ctx context.Context, focus int, hasFocus bool) CarouselPage {
	items := p.fetch(ctx)
	day := p.calendar.CurrentDay()

	c := carousel.Mount(items, day)
	if hasFocus {
		c.Focus(focus)
	}

	visible := map[int]bool{}
	for _, i := range c.Window(carousel.Default.SlidesToShow) {
		visible[i] = true
	}

	slides := make([]CarouselSlide, len(items))
	for i, item := range items {
		slides[i] = CarouselSlide{
			ItemView: view(item, day),
			Index:    i,
			Centered: i == c.Centered(),
			Visible:  visible[i],
		}
	}

	page := CarouselPage{
		CurrentDay: day,
		Today:      p.calendar.DateOf(day),
		Centered:   c.Centered(),
		Slides:     slides,
	}
	if n := c.Len(); n > 0 {
		page.Prev = (c.Centered() - 1 + n) % n
		page.Next = (c.Centered() + 1) % n
	}
	return page
}

func (p *Pages) fetch(ctx context.Context) []domain.CountdownItem {
	if p.source == nil {
		return []domain.CountdownItem{}
	}
	items := p.source.Items(ctx)
	p.logger.Debug("items ready", "count", len(items))
	return items
}

func classify(items []domain.CountdownItem, day int) []ItemView {
	out := make([]ItemView, len(items))
	for i, item := range items {
		out[i] = view(item, day)
	}
	return out
}

func view(item domain.CountdownItem, day int) ItemView {
	return ItemView{
		CountdownItem: item,
		Status:        calendar.Classify(item.Date, day),
		Src:           item.ImageURL(),
		Href:          item.Target(),
	}
}
