package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alignscope/core/internal/store"
)

func init() {
	rootCmd.AddCommand(healthCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Report the load status of every backing document",
	Long: `Probe the configured document locations and report what loads, file by
file. The exit code is non-zero when any document failed.

Example:
  alignscope health --data ./data`,
	RunE: runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	report := newStore().Report()

	if humanOutput {
		printHealthHuman(report)
	} else if err := outputJSON(report); err != nil {
		return err
	}

	if len(report.Errors) > 0 {
		os.Exit(ExitError)
	}

	return nil
}

func printHealthHuman(report store.LoadReport) {
	fmt.Printf("status: %s\n", report.Status)

	root := report.Root.Path
	if !report.Root.Loaded {
		root = "built-in default"
	}
	fmt.Printf("root:   %s\n", root)

	fmt.Printf("components:    %d/%d loaded (%s)\n",
		report.Components.Loaded, report.Components.Total, report.Components.Path)
	fmt.Printf("subcomponents: %d/%d loaded (%s)\n",
		report.Subcomponents.Loaded, report.Subcomponents.Total, report.Subcomponents.Path)

	for _, e := range report.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}
