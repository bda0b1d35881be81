// Package style holds the console's lipgloss styles and a few render helpers.
// Colors are dropped automatically when output is not a terminal.
package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	keyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue).
			Width(4).
			Align(lipgloss.Right)

	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
	failureStyle = lipgloss.NewStyle().Foreground(colorRed)
	warningStyle = lipgloss.NewStyle().Foreground(colorYellow)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
	warnMark  = "[??]"
)

// Title renders a bold heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Section renders a section heading.
func Section(s string) string {
	return sectionStyle.Render(s)
}

// Success renders a positive status line.
func Success(s string) string {
	return successStyle.Render(checkMark + " " + s)
}

// Failure renders an error status line.
func Failure(s string) string {
	return failureStyle.Render(crossMark + " " + s)
}

// Warning renders a warning status line.
func Warning(s string) string {
	return warningStyle.Render(warnMark + " " + s)
}

// Dim renders secondary text.
func Dim(s string) string {
	return dimStyle.Render(s)
}

// MenuItem is one selectable menu entry.
type MenuItem struct {
	Key   string
	Label string
}

// Menu renders a titled list of numbered entries.
func Menu(title string, items []MenuItem) string {
	var b strings.Builder
	b.WriteString(Section(title))
	b.WriteByte('\n')
	for _, item := range items {
		fmt.Fprintf(&b, "%s  %s\n", keyStyle.Render(item.Key), item.Label)
	}
	return b.String()
}
