package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/audit"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the configuration whenever its file changes",
	Long: `Watch the main configuration file and reload it on every change made by
another process. Each reload is printed and recorded in the change history.
Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	file := a.Settings.File
	logInfo("Watching %s", a.ConfigPath())

	return a.Config.Watch(ctx, file, func(err error) {
		event := audit.Event{Type: audit.EventReload, Details: file}
		if err != nil {
			logWarning("Failed to reload %s: %v", file, err)
			event.Details = err.Error()
		} else {
			logInfo("Reloaded %s", file)
			if showErr := showConfig(cmd, a.Config); showErr != nil {
				logWarning("%v", showErr)
			}
		}
		if logErr := a.Journal.Log(event); logErr != nil {
			logWarning("Failed to record reload: %v", logErr)
		}
	})
}
