package handlers

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studypal/internal/config"
)

var cfgFile string

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "studypal",
		Short: "Backend service for a mobile study assistant",
		Long: `StudyPal - Study Assistant Backend

A backend service that finds, ranks and recommends study material for
a mobile study assistant.

Core workflows:
  • Serve: run the HTTP API the mobile client talks to
  • Search: one-shot search and rerank from the terminal

Features:
  • PDF document search (Google Custom Search)
  • Educational video search (YouTube Data API)
  • Relevance and quality based reranking
  • AI tutoring via Gemini
  • Study schedule management

Examples:
  # Start the HTTP API
  studypal serve

  # Search and rerank from the terminal
  studypal search "linear algebra" --subject math --level beginner`,
		Version: "1.2.0",
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .studypal.yaml)")

	// Add subcommands
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewSearchCmd())

	// Initialize config before running any command
	cobra.OnInitialize(initConfig)

	return rootCmd
}

// initConfig reads in config file and ENV variables
func initConfig() {
	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load config: %v\n", err)
		// Don't exit - allow running with just environment variables
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}
