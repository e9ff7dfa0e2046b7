package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	historyJSON  bool
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the change history of the configuration",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output events as JSON lines")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the change history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if historyClear {
		if err := a.Journal.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logSuccess("Change history cleared")
		return nil
	}

	events, err := a.Journal.Events()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No changes recorded in %s", a.Settings.Dir)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		switch {
		case e.Property != "":
			value, _ := json.Marshal(e.Value)
			fmt.Fprintf(out, "[%s] %-10s %s = %s\n", ts, e.Type, e.Property, value)
		case e.Details != "":
			fmt.Fprintf(out, "[%s] %-10s (%s)\n", ts, e.Type, e.Details)
		default:
			fmt.Fprintf(out, "[%s] %-10s\n", ts, e.Type)
		}
	}

	return nil
}
