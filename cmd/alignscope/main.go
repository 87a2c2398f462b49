// Package main provides the alignscope CLI entry point.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alignscope/core/internal/config"
	"github.com/alignscope/core/internal/store"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// dataDir overrides the configured data directory when set
var dataDir string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "alignscope",
	Short: "Diagnostics for the alignment taxonomy service",
	Long: `alignscope inspects the taxonomy documents behind the graph API.

It builds the same graph the server serves, resolves single nodes, and
reports per-file load health. All commands output JSON by default so
results pipe cleanly into other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory holding the taxonomy documents")
	rootCmd.Version = Version
}

// newStore builds a document store from the environment, honoring --data.
// Warnings go to stderr so stdout stays machine-readable.
func newStore() *store.Store {
	cfg := config.Load()
	if dataDir != "" {
		cfg.UseDataDir(dataDir)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return store.New(cfg.StoreConfig(), log)
}
