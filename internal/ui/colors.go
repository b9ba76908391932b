package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// SymbolSuccess and SymbolFailure mark per-host outcomes in CLI output.
const (
	SymbolSuccess = "✓"
	SymbolFailure = "✗"
)

// AccentColor picks the highlight color for the selected table row: blue on
// dark backgrounds, cyan on light ones where blue reads too dim.
func AccentColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return ColorSecondary
	}
	return ColorInfo
}
