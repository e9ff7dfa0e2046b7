package cmd

import (
	"context"
	"fmt"
	"io"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/session"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Read and change properties in an interactive session",
	Long: `Start an interactive session. Each line is split like a shell command:

  get <key> [filter]   print a property or collection
  set <key> <value>    store a value (JSON or plain string)
  reset <key>          restore a property's default
  show                 print every resolved property
  help                 list the commands

exit, quit or q ask for confirmation before leaving; Ctrl+C does the same
and a second Ctrl+C leaves at once.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	term := newTerminal(cmd)
	s := session.New(term,
		session.WithHandler(shellHandler(cmd, a)),
		session.WithExit(exitProcess),
		session.WithNotice(term.Notice),
	)

	logInfo("Configuration %s, type help for commands", a.ConfigPath())
	return s.Run(cmd.Context())
}

// shellHandler executes one session line against the application.
func shellHandler(cmd *cobra.Command, a *app.App) session.Handler {
	return func(ctx context.Context, line string) (bool, error) {
		words, err := shellquote.Split(line)
		if err != nil {
			return true, fmt.Errorf("cannot parse line: %w", err)
		}
		if len(words) == 0 {
			return true, nil
		}

		switch name, rest := words[0], words[1:]; name {
		case "get":
			if len(rest) < 1 || len(rest) > 2 {
				return true, fmt.Errorf("usage: get <key> [filter]")
			}
			return true, getValue(cmd, a.Config, rest)
		case "set":
			if len(rest) != 2 {
				return true, fmt.Errorf("usage: set <key> <value>")
			}
			if err := setValue(a.Config, rest[0], parseValue(rest[1])); err != nil {
				return true, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %v\n", rest[0], valueOrDefault(a.Config, rest[0]))
			return true, nil
		case "reset":
			if len(rest) != 1 {
				return true, fmt.Errorf("usage: reset <key>")
			}
			if err := setValue(a.Config, rest[0], nil); err != nil {
				return true, err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s reset to %v\n", rest[0], valueOrDefault(a.Config, rest[0]))
			return true, nil
		case "show":
			return true, showConfig(cmd, a.Config)
		case "help":
			printShellHelp(cmd.OutOrStdout())
			return true, nil
		}
		return false, nil
	}
}

func printShellHelp(w io.Writer) {
	fmt.Fprintln(w, "get <key> [filter]   print a property or collection")
	fmt.Fprintln(w, "set <key> <value>    store a value")
	fmt.Fprintln(w, "reset <key>          restore a property's default")
	fmt.Fprintln(w, "show                 print every resolved property")
	fmt.Fprintln(w, "exit                 leave the session")
}
