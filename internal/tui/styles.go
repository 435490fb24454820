package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Guliveer/vitalis/monitor/internal/viewmodel"
)

const (
	colorBorder        = lipgloss.Color("#3A3A5A")
	colorAccent        = lipgloss.Color("#7D56F4")
	colorHealthy       = lipgloss.Color("#04B575")
	colorWarning       = lipgloss.Color("#FFAA00")
	colorCritical      = lipgloss.Color("#FF4672")
	colorTextPrimary   = lipgloss.Color("#FFFFFF")
	colorTextSecondary = lipgloss.Color("#B4B4D0")
	colorTextMuted     = lipgloss.Color("#6B6B8D")
)

// warningThreshold colors usage amber; above viewmodel.HighUsageThreshold
// it turns red.
const warningThreshold = 70.0

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorTextPrimary).
			Background(colorAccent).
			Bold(true).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorTextPrimary).
			Underline(true).
			Bold(true).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	headingStyle = lipgloss.NewStyle().
			Foreground(colorTextPrimary).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextSecondary)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorTextPrimary)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorCritical).
			Bold(true)

	liveStyle = lipgloss.NewStyle().
			Foreground(colorHealthy)
)

// usageColor picks the severity color for a used percentage.
func usageColor(pct float64) lipgloss.Color {
	switch {
	case pct > viewmodel.HighUsageThreshold:
		return colorCritical
	case pct > warningThreshold:
		return colorWarning
	default:
		return colorHealthy
	}
}

// usageBar renders a fixed-width bar for pct in [0,100].
func usageBar(pct float64, width int) string {
	pct = min(max(pct, 0), 100)
	filled := int(pct / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(usageColor(pct)).Render(bar)
}
