package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160"))
	dayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Faint(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	todayBadge = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("27")).
			Padding(0, 1)
)

// back colors keyed by masonry theme name
var themeColors = map[string]struct{ bg, fg lipgloss.Color }{
	"red":   {bg: "160", fg: "255"},
	"blue":  {bg: "27", fg: "255"},
	"white": {bg: "255", fg: "236"},
}

// accent colors keyed by day status
var statusColors = map[string]lipgloss.Color{
	"past":   "245",
	"today":  "27",
	"future": "196",
}

const selectedBorder = lipgloss.Color("214")
