// Package style holds the lipgloss colors used across stacker output.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

func fg(color string, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(text)
}

// ColorBranchName colors a branch name based on whether it's current
func ColorBranchName(branchName string, isCurrent bool) string {
	if isCurrent {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Render(branchName + " (current)")
	}
	return fg("12", branchName)
}

// ColorObject colors an abbreviated object name
func ColorObject(text string) string {
	return fg("3", text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	return fg("8", text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	return fg("1", text)
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	return fg("2", text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	return fg("3", text)
}

// ColorMagenta colors text magenta
func ColorMagenta(text string) string {
	return fg("5", text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	return fg("6", text)
}
