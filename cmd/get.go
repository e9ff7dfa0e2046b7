package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

var getCmd = &cobra.Command{
	Use:   "get <key> [filter]",
	Short: "Print a property or the records of a collection",
	Long: `Print the resolved value of a property.

For a collection every record is printed as JSON; with a filter only the
records whose filter field equals it are printed. The filter is read as JSON
when it parses, so "1" matches the number 1 and "\"1\"" the string.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return getValue(cmd, a.Config, args)
}

func getValue(cmd *cobra.Command, cfg *config.Config, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	if cfg.IsCollection(key) {
		records := cfg.Items(key)
		if len(args) > 1 {
			records = cfg.Filter(key, parseValue(args[1]))
		}
		if records == nil {
			records = []config.Record{}
		}
		return printValue(out, records)
	}

	if len(args) > 1 {
		return errors.ValidationError(key + " is not a collection and cannot be filtered")
	}

	if _, declared := cfg.Entry(key); !declared && !cfg.IsSet(key) {
		return errors.UnknownProperty(key)
	}
	return printValue(out, cfg.Get(key))
}
