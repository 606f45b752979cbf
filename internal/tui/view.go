package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ActionCountdown/internal/calendar"
	"ActionCountdown/internal/domain"
	"ActionCountdown/internal/view/carousel"
	"ActionCountdown/internal/view/masonry"
)

const (
	// approximate pixels per terminal cell, used to reuse the web breakpoints
	cellWidthPx = 8
	// card pixel height per terminal line
	linePx = 40
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	switch {
	case m.loading && m.carousel == nil:
		b.WriteString(m.spinner.View() + " Loading actions…")
	case len(m.items) == 0:
		b.WriteString(mutedStyle.Render("No actions to show yet."))
	case m.mode == modeCarousel:
		b.WriteString(m.carouselView())
	default:
		b.WriteString(m.masonryView())
	}

	b.WriteString("\n\n")
	if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) header() string {
	title := titleStyle.Render(m.title)
	if m.loading {
		if m.carousel != nil {
			title += " " + m.spinner.View()
		}
		return title
	}
	if m.day < 1 {
		return title + "  " + dayStyle.Render("Day 1 is "+m.cal.Start().Format("Monday, January 2"))
	}
	date := m.cal.DateOf(m.day).Format("Monday, January 2")
	return title + "  " + dayStyle.Render(fmt.Sprintf("Day %d · %s", m.day, date))
}

func (m Model) masonryView() string {
	cols := masonry.ColumnsFor(m.width * cellWidthPx)
	colWidth := m.width/cols - 1
	if colWidth < 16 {
		colWidth = 16
	}

	columns := make([][]string, cols)
	heights := make([]int, cols)
	for i, card := range m.cards {
		c := shortest(heights)
		box := m.renderCard(card, i == m.cursor, colWidth)
		columns[c] = append(columns[c], box)
		heights[c] += lipgloss.Height(box)
	}

	rendered := make([]string, 0, cols)
	for _, col := range columns {
		rendered = append(rendered, lipgloss.JoinVertical(lipgloss.Left, col...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderCard(card masonry.Card, selected bool, width int) string {
	status := calendar.Classify(card.Item.Date, m.day)
	lines := card.Height / linePx

	style := cardStyle.Width(width - 2).Height(lines)
	if selected {
		style = style.BorderForeground(selectedBorder)
	} else {
		style = style.BorderForeground(statusColors[string(status)])
	}

	if !m.board.IsOpen(card.Item.Date) {
		colors := themeColors[card.Theme.Name]
		body := lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(card.Item.Date))
		if status.IsToday() {
			body += "\n" + todayBadge.Render("Today")
		}
		return style.
			Background(colors.bg).
			Foreground(colors.fg).
			Align(lipgloss.Center, lipgloss.Center).
			Render(body)
	}

	return style.Render(itemBody(card.Item, status, "Take Action →"))
}

func (m Model) carouselView() string {
	settings := carousel.SettingsFor(m.width * cellWidthPx)
	window := m.carousel.Window(settings.SlidesToShow)
	pad := settings.CenterPadding / cellWidthPx

	slideWidth := (m.width-2*pad-4)/len(window) - 1
	if slideWidth < 16 {
		slideWidth = 16
	}

	slides := make([]string, 0, len(window))
	for _, i := range window {
		item := m.items[i]
		status := calendar.Classify(item.Date, m.day)
		style := cardStyle.Width(slideWidth - 2).Height(8).
			BorderForeground(statusColors[string(status)])

		body := itemBody(item, status, "Press enter to learn more →")
		if i == m.carousel.Centered() {
			slides = append(slides, style.Bold(true).Render(body))
			continue
		}
		slides = append(slides, style.Faint(true).Render(body))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Center, slides...)
	nav := titleStyle.Render("‹")
	return lipgloss.JoinHorizontal(lipgloss.Center,
		nav, strings.Repeat(" ", pad+1), row, strings.Repeat(" ", pad+1), titleStyle.Render("›"),
	)
}

func itemBody(item domain.CountdownItem, status domain.DayStatus, cta string) string {
	badge := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("255")).
		Background(statusColors[string(status)]).
		Padding(0, 1).
		Render(strconv.Itoa(item.Date))
	if status.IsToday() {
		badge += " " + todayBadge.Render("Today's Action")
	}
	link := lipgloss.NewStyle().Foreground(statusColors[string(status)]).Render(cta)
	return badge + "\n\n" + item.Headline + "\n\n" + link
}

func shortest(heights []int) int {
	idx := 0
	for i, h := range heights {
		if h < heights[idx] {
			idx = i
		}
	}
	return idx
}
