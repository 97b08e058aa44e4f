package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 color palette
var (
	// Status colors
	colorCleanGreen = lipgloss.Color("71")
	colorDirtyAmber = lipgloss.Color("179")
	colorDangerRed  = lipgloss.Color("167")

	// Accent
	colorCyan = lipgloss.Color("73")
	colorGold = lipgloss.Color("220")

	// Text
	colorFg  = lipgloss.Color("253")
	colorDim = lipgloss.Color("242")

	// Selection
	colorSelBg = lipgloss.Color("238")
	colorSelFg = lipgloss.Color("255")

	colorBarEmpty = lipgloss.Color("238") // ░ empty bar segments
	colorTableHdr = lipgloss.Color("245") // group header text
)

// Unicode icons
const (
	iconUnused   = "●"
	iconInUse    = "○"
	iconChecked  = "◆"
	iconUnchkd   = "◇"
	iconCursor   = "›"
	iconWarning  = "⚠"
	iconBranch   = "├─"
	iconLastLeaf = "└─"
)

// Lipgloss styles
var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim      = lipgloss.NewStyle().Foreground(colorDim)
	stylePath     = lipgloss.NewStyle().Foreground(colorFg)
	styleSize     = lipgloss.NewStyle().Foreground(colorGold)
	styleUnused   = lipgloss.NewStyle().Foreground(colorDirtyAmber)
	styleInUse    = lipgloss.NewStyle().Foreground(colorCleanGreen)
	styleDanger   = lipgloss.NewStyle().Foreground(colorDangerRed).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorCleanGreen).Bold(true)
	styleBarEmpty = lipgloss.NewStyle().Foreground(colorBarEmpty)
	styleTableHdr = lipgloss.NewStyle().Foreground(colorTableHdr).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(colorSelFg).Background(colorSelBg)

	styleKey = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
)

func truncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	// Truncate rune by rune
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		candidate := string(runes[:i]) + "…"
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return "…"
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
