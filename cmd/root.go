package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/logging"
)

var (
	verbose    bool
	quiet      bool
	jsonOutput bool
	configDir  string
	configFile string
	schemaPath string
)

var rootCmd = &cobra.Command{
	Use:   "forage-config",
	Short: "Schema-driven configuration manager",
	Long: `forage-config resolves configuration values from a declared schema.

Properties are declared in a TOML or YAML file, values are stored as JSON:
  - Defaults apply to anything never set
  - Required properties are asked for interactively
  - Dependent properties are only asked when their condition holds
  - Object collections live in data/<property>.json`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(logging.Options{
			Verbose: verbose,
			Quiet:   quiet,
			JSON:    jsonOutput,
			Writer:  cmd.ErrOrStderr(),
		})
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json-logs", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configDir, "dir", "d", "", "Configuration directory (env FORAGE_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "file", "f", "", "Main configuration file (env FORAGE_CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "TOML or YAML declaration file (env FORAGE_CONFIG_SCHEMA)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
