package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	configureTimeout time.Duration
	configureForce   bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Ask for configuration values interactively",
	Long: `Load the stored configuration and ask for every required property that
has no value yet.

Nothing is asked when the configuration is complete unless --force is given.
Without a terminal, or when the first question is declined, the defaults are
saved as they are. With --timeout the defaults are also used when the first
question is not answered in time.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().DurationVarP(&configureTimeout, "timeout", "t", 0, "Use defaults when the first question is not answered in time (env FORAGE_CONFIG_TIMEOUT)")
	configureCmd.Flags().BoolVar(&configureForce, "force", false, "Ask again even when the configuration is complete")
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !configureForce && !a.NeedsConfiguration() {
		logInfo("Configuration is complete: %s", a.ConfigPath())
		return nil
	}

	timeout := a.Settings.Timeout
	if cmd.Flags().Changed("timeout") {
		timeout = configureTimeout
	}

	if err := a.Engine().RunInteractive(cmd.Context(), a.Settings.File, timeout, newTerminalSource(cmd)); err != nil {
		return err
	}

	logSuccess("Configuration saved to %s", a.ConfigPath())
	return nil
}
