package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/session"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/tui"
)

// openApp builds the application context from the environment, with the
// persistent flags taking precedence.
func openApp() (*app.App, error) {
	settings, err := app.LoadSettings()
	if err != nil {
		return nil, err
	}
	if configDir != "" {
		settings.Dir = configDir
	}
	if configFile != "" {
		settings.File = configFile
	}
	if schemaPath != "" {
		settings.Schema = schemaPath
	}
	return app.New(app.WithSettings(settings))
}

// newTerminal creates the terminal front end for a command. Tests replace
// it to avoid touching the real terminal.
var newTerminal = func(cmd *cobra.Command) *tui.Terminal {
	return tui.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
}

// exitProcess terminates after a confirmed exit.
var exitProcess = os.Exit

// terminalSource adds the session's exit confirmation to a Terminal so an
// interrupted prompt can end the program.
type terminalSource struct {
	*tui.Terminal
	session *session.Session
}

func (s terminalSource) ConfirmExit(ctx context.Context) (bool, error) {
	return s.session.ConfirmExit(ctx)
}

func newTerminalSource(cmd *cobra.Command) terminalSource {
	term := newTerminal(cmd)
	return terminalSource{
		Terminal: term,
		session: session.New(term,
			session.WithExit(exitProcess),
			session.WithNotice(term.Notice),
		),
	}
}

// parseValue reads a command-line value as JSON, falling back to the raw
// string.
func parseValue(s string) any {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

// printValue writes strings as-is and everything else as indented JSON.
func printValue(w io.Writer, v any) error {
	if s, ok := v.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
