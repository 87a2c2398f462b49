package main

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alignscope/core/internal/graph"
	"github.com/alignscope/core/internal/models"
)

func init() {
	rootCmd.AddCommand(nodeCmd)
}

var nodeCmd = &cobra.Command{
	Use:   "node <id>",
	Short: "Resolve a single node and print its document fragment",
	Long: `Resolve a node ID anywhere in the taxonomy and print the raw document
fragment it was built from.

Example:
  alignscope node behavior-testing`,
	Args: cobra.ExactArgs(1),
	RunE: runNode,
}

func runNode(cmd *cobra.Command, args []string) error {
	st := newStore()

	fragment, err := graph.Resolve(args[0], st.LoadRoot(), st.LoadComponents(), st.LoadSubcomponents())
	if err != nil {
		if errors.Is(err, graph.ErrNotFound) {
			exitWithError(ExitNotFound, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		printNodeHuman(fragment)
		return nil
	}

	return outputJSON(fragment)
}

// printNodeHuman prints the well-known fields of an object fragment and
// names whatever else it carries. Non-object fragments fall back to JSON.
func printNodeHuman(fragment any) {
	doc, ok := models.AsDocument(fragment)
	if !ok {
		outputJSON(fragment)
		return
	}

	if doc.ID() != "" {
		fmt.Printf("id:          %s\n", doc.ID())
	}
	if doc.Name() != "" {
		fmt.Printf("name:        %s\n", doc.Name())
	}
	if doc.Description() != "" {
		fmt.Printf("description: %s\n", doc.Description())
	}

	keys := make([]string, 0, len(doc))
	for key := range doc {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var rest []string
	for _, key := range keys {
		switch key {
		case "id", "name", "description":
		default:
			rest = append(rest, key)
		}
	}
	if len(rest) > 0 {
		fmt.Printf("fields:      %s\n", strings.Join(rest, ", "))
	}
}
