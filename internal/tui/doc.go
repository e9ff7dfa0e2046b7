// Package tui provides the terminal front end for configuration prompts.
//
// Terminal implements the interactive source used by the elicitation
// engine and the line reader used by the command shell. Each prompt runs
// as a short-lived Bubble Tea program:
//
//	term := tui.NewTerminal(os.Stdin, os.Stdout)
//	err := engine.RunInteractive(ctx, file, 10*time.Second, term)
//
// Properties with a choice set are shown as a list; free-form properties
// use a text input whose placeholder is the current value. Ctrl+C ends the
// prompt with an interrupt error.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
