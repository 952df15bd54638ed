// Package ui renders darkroom's terminal output: styled preset listings and
// an interactive preset picker.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	urlStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Underline(true)
)

// Heading renders a bold section heading.
func Heading(text string) string {
	return headingStyle.Render(text)
}

// PresetLine renders one row of the preset listing.
func PresetLine(index int, caption string) string {
	return fmt.Sprintf("%s\t%s",
		indexStyle.Render(fmt.Sprintf("[%d]", index)),
		captionStyle.Render(caption))
}

// ResultLine renders one develop or contacts result row.
func ResultLine(index int, caption, url string) string {
	return fmt.Sprintf("%s '%s' : %s",
		indexStyle.Render(fmt.Sprintf("%d.", index)),
		captionStyle.Render(caption),
		urlStyle.Render(url))
}
