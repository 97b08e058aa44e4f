package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHBar renders a single-color horizontal bar.
// Returns: "████░░░░" with value/maxValue proportion filled.
func renderHBar(value, maxValue int64, width int, fg lipgloss.Color) string {
	if maxValue <= 0 || width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > maxValue {
		value = maxValue
	}

	filled := int(value * int64(width) / maxValue)
	if filled == 0 && value > 0 {
		filled = 1
	}
	empty := width - filled

	var b strings.Builder
	if filled > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		b.WriteString(styleBarEmpty.Render(strings.Repeat("░", empty)))
	}
	return b.String()
}
