package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Destinations for user-facing output. Tests swap these out.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Glyph styles. lipgloss drops the colors when stdout is not a terminal.
var (
	infoGlyph    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("ℹ")
	successGlyph = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	warningGlyph = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("⚠")
	errorGlyph   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

func userf(w io.Writer, glyph, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", glyph, fmt.Sprintf(format, args...))
}

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...any) {
	userf(Stdout, infoGlyph, format, args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...any) {
	userf(Stdout, successGlyph, format, args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...any) {
	userf(Stderr, warningGlyph, format, args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...any) {
	userf(Stderr, errorGlyph, format, args...)
}
