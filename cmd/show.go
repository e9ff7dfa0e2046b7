package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-config/internal/config"
)

var showJSON bool

var (
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	unsetStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every resolved property",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output the resolved properties as a JSON object")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	return showConfig(cmd, a.Config)
}

func showConfig(cmd *cobra.Command, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	if showJSON {
		return printValue(out, cfg.All())
	}

	all := cfg.All()
	for _, key := range cfg.Keys() {
		marker := ""
		if !cfg.IsSet(key) {
			marker = unsetStyle.Render(" (default)")
		}
		fmt.Fprintf(out, "%s = %v%s\n", keyStyle.Render(key), all[key], marker)
	}
	for _, key := range cfg.Missing() {
		if _, ok := all[key]; !ok {
			fmt.Fprintf(out, "%s %s\n", keyStyle.Render(key), unsetStyle.Render("(not set)"))
		}
	}
	for _, key := range cfg.Collections() {
		fmt.Fprintf(out, "%s: %d records\n", keyStyle.Render(key), len(cfg.Items(key)))
	}
	return nil
}
