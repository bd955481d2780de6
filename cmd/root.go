package cmd

import (
	"fmt"
	"os"

	"github.com/marklab/annotator/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "annotator",
	Short: "Video annotation API server",
	Long: `Video Annotator API - a segment annotation server for video review

The server manages per-video editing sessions: time segments with
descriptions, undo/redo history, timeline gestures, and debounced
autosave of annotation documents.

Features:
  • Video catalog backed by SQLite
  • Per-video editing sessions with undo/redo
  • Timeline interaction (seek, resize, move, marks)
  • Debounced autosave with atomic document writes`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Set up configuration loading with lazy initialization
	cobra.OnInitialize(initConfig)
}

// initConfig loads the configuration when a command needs it
func initConfig() {
	// Skip config loading for commands that don't need it
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	// Initialize the configuration
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig returns the unmarshaled configuration for commands that need
// the full struct
func loadConfig() (*config.Config, error) {
	if err := config.Init(); err != nil {
		return nil, err
	}
	return config.GetConfig()
}
