package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Success = lipgloss.Color("#10B981")
	Error   = lipgloss.Color("#EF4444")
	Muted   = lipgloss.Color("#6B7280")
)

// Text styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconInfo    = "›"
)

func PrintStatus(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", MutedStyle.Render(IconInfo), msg)
}

func PrintStatusf(w io.Writer, format string, args ...any) {
	PrintStatus(w, fmt.Sprintf(format, args...))
}

func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render(IconSuccess), SuccessStyle.Render(msg))
}

func PrintError(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render(IconError), ErrorStyle.Render(msg))
}
