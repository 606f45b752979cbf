// Package tui is the terminal rendition of the countdown: a flip-card grid and
// a carousel over the same items.
package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ActionCountdown/internal/calendar"
	"ActionCountdown/internal/domain"
	"ActionCountdown/internal/ports"
	"ActionCountdown/internal/view/carousel"
	"ActionCountdown/internal/view/masonry"
)

type viewMode int

const (
	modeMasonry viewMode = iota
	modeCarousel
)

// Deps wires the model to its collaborators.
type Deps struct {
	Title    string
	Source   ports.ItemSource
	Calendar *calendar.Calendar
	Arranger *masonry.Arranger
	Opener   ports.Opener
	Logger   *slog.Logger
}

type itemsMsg struct {
	items []domain.CountdownItem
}

type settleMsg struct{}

type openedMsg struct {
	url string
	err error
}

// Model is the bubbletea model for the countdown.
type Model struct {
	ctx    context.Context
	title  string
	source ports.ItemSource
	cal    *calendar.Calendar
	arr    *masonry.Arranger
	opener ports.Opener
	logger *slog.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	loading     bool
	mode        viewMode
	width       int
	items       []domain.CountdownItem
	fingerprint uint64
	day         int
	cards       []masonry.Card
	cursor      int
	board       *masonry.Board
	carousel    *carousel.Carousel
	status      string
	failed      bool
}

// New builds a model that starts loading items once the program runs.
func New(ctx context.Context, deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	arr := deps.Arranger
	if arr == nil {
		arr = masonry.NewArranger(time.Now().UnixNano())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return Model{
		ctx:     ctx,
		title:   deps.Title,
		source:  deps.Source,
		cal:     deps.Calendar,
		arr:     arr,
		opener:  deps.Opener,
		logger:  logger,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: s,
		loading: true,
		width:   80,
		board:   masonry.NewBoard(),
	}
}

// Run starts the program on the alternate screen and blocks until it quits or
// ctx is cancelled.
func Run(ctx context.Context, deps Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(ctx, deps), opts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch())
}

func (m Model) fetch() tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		if source == nil {
			return itemsMsg{items: []domain.CountdownItem{}}
		}
		return itemsMsg{items: source.Items(ctx)}
	}
}

func settle() tea.Cmd {
	return tea.Tick(carousel.SettleDelay, func(time.Time) tea.Msg { return settleMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case itemsMsg:
		return m.load(msg.items)

	case settleMsg:
		if m.carousel != nil {
			m.carousel.Settle()
		}
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.logger.Error("open link", "url", msg.url, "error", msg.err)
			m.status, m.failed = "could not open "+msg.url, true
			return m, nil
		}
		m.status, m.failed = "opened "+msg.url, false
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// load initializes the day, layout and carousel from a fetched list. Layout and
// focus are kept when a refresh returns the same list.
func (m Model) load(items []domain.CountdownItem) (tea.Model, tea.Cmd) {
	m.loading = false
	m.day = m.cal.CurrentDay()

	fp := masonry.Fingerprint(items)
	if m.carousel != nil && fp == m.fingerprint {
		return m, nil
	}

	m.items = items
	m.fingerprint = fp
	m.cards = m.arr.Arrange(items)
	m.cursor = 0
	m.carousel = carousel.Mount(items, m.day)
	m.logger.Debug("items loaded", "count", len(items), "day", m.day)
	return m, settle()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.View):
		if m.mode == modeMasonry {
			m.mode = modeCarousel
		} else {
			m.mode = modeMasonry
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.fetch())
	}

	if m.mode == modeCarousel {
		return m.carouselKey(msg)
	}
	return m.masonryKey(msg)
}

func (m Model) masonryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.cards) == 0 {
		return m, nil
	}
	card := m.cards[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Left):
		m.cursor = (m.cursor - 1 + len(m.cards)) % len(m.cards)
	case key.Matches(msg, m.keys.Right):
		m.cursor = (m.cursor + 1) % len(m.cards)
	case key.Matches(msg, m.keys.Select):
		m.board.ClickCard(card.Item.Date)
	case key.Matches(msg, m.keys.Link):
		out := m.board.ClickLink(card.Item.Date, card.Item.Target())
		if out.Navigate {
			return m, m.open(out.URL)
		}
	}
	return m, nil
}

func (m Model) carouselKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.carousel.Prev()
	case key.Matches(msg, m.keys.Right):
		m.carousel.Next()
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Link):
		if item, ok := m.carousel.Current(); ok {
			return m, m.open(item.Target())
		}
	}
	return m, nil
}

func (m Model) open(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if opener == nil {
			return openedMsg{url: url, err: errors.New("no opener configured")}
		}
		return openedMsg{url: url, err: opener.Open(url)}
	}
}
