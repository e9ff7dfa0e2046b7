package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/errors"
)

var setReset bool

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a property value",
	Long: `Store a value and save the configuration.

The value is read as JSON when it parses and as a plain string otherwise:
  forage-config set port 9090          stores the number 9090
  forage-config set name prod          stores the string "prod"
  forage-config set items '[{"a":1}]'  replaces a collection's records

With --reset the stored value is replaced by the property's default.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if setReset {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&setReset, "reset", false, "Reset the property to its default")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var value any
	if !setReset {
		value = parseValue(args[1])
	}
	if err := setValue(a.Config, args[0], value); err != nil {
		return err
	}

	logSuccess("%s set to %v", args[0], valueOrDefault(a.Config, args[0]))
	return nil
}

// setValue validates value against the property's choices and stores it.
// A nil value resets the property.
func setValue(cfg *config.Config, key string, value any) error {
	e, declared := cfg.Entry(key)
	if !declared {
		logWarning("%s is not declared in the schema", key)
	}
	if value != nil && len(e.Choices) > 0 && !e.Choices.Contains(value) {
		return errors.ValidationError(fmt.Sprintf("%v is not a valid value for %s, must be one of: %s",
			value, key, e.Choices))
	}

	if err := cfg.Set(key, value); err != nil {
		var ce *errors.ConfigError
		if errors.As(err, &ce) {
			return err
		}
		return errors.ValidationError(err.Error())
	}
	return nil
}

func valueOrDefault(cfg *config.Config, key string) any {
	if cfg.IsCollection(key) {
		return fmt.Sprintf("%d records", len(cfg.Items(key)))
	}
	return cfg.Get(key)
}
