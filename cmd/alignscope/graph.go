package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/alignscope/core/internal/graph"
	"github.com/alignscope/core/internal/models"
)

var fullGraph bool

func init() {
	graphCmd.Flags().BoolVar(&fullGraph, "full", false, "Dump the full graph JSON instead of summary statistics")
	rootCmd.AddCommand(graphCmd)
}

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Build the taxonomy graph and summarize it",
	Long: `Build the graph from the configured data directory and print node and
link totals broken down by node type.

Examples:
  alignscope graph
  alignscope graph --data ./data --full`,
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	st := newStore()
	g := graph.BuildGraph(st.LoadRoot(), st.LoadComponents(), st.LoadSubcomponents())

	if fullGraph {
		return outputJSON(g)
	}

	stats := g.Summary()
	if !humanOutput {
		return outputJSON(stats)
	}

	fmt.Printf("nodes: %d\n", stats.TotalNodes)
	fmt.Printf("links: %d\n", stats.TotalLinks)
	nodeTypes := make([]models.NodeType, 0, len(stats.NodesByType))
	for nodeType := range stats.NodesByType {
		nodeTypes = append(nodeTypes, nodeType)
	}
	slices.Sort(nodeTypes)
	for _, nodeType := range nodeTypes {
		fmt.Printf("  %-16s %d\n", nodeType, stats.NodesByType[nodeType])
	}

	return nil
}
