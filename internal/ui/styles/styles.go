// Package styles provides shared lipgloss styles for command output.
//
// This package centralizes color definitions and status symbols so all
// commands report success and failure consistently. Styling is disabled
// automatically when stdout is not a terminal.
package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Primary colors
var (
	// Success is used for checkmarks and positive outcomes (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Error is used for error messages (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Muted is used for secondary text (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")
)

// Common styles
var (
	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)
)

// Status symbols (ASCII-safe)
const (
	CheckSymbol = "✓"
	CrossSymbol = "✕"
)

// enabled tracks whether styled output is active.
var enabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// SetEnabled overrides terminal detection, e.g. for tests.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether styled output is active.
func Enabled() bool {
	return enabled
}

// OK renders a green checkmark prefix for s, or a plain prefix when styling
// is disabled.
func OK(s string) string {
	if !enabled {
		return CheckSymbol + " " + s
	}
	return SuccessStyle.Render(CheckSymbol) + " " + s
}

// Fail renders a red cross prefix for s, or a plain prefix when styling is
// disabled.
func Fail(s string) string {
	if !enabled {
		return CrossSymbol + " " + s
	}
	return ErrorStyle.Render(CrossSymbol) + " " + s
}

// Dim renders s in the muted color when styling is enabled.
func Dim(s string) string {
	if !enabled {
		return s
	}
	return MutedStyle.Render(s)
}
