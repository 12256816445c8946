// Package main provides the entry point for the cv_ranker command line tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cv_ranker",
	Short: "Résumé keyword extraction and ranking",
	Long: "cv_ranker extracts skills, experience statements and education statements from résumés, " +
		"scores each résumé with configurable category weights and ranks them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
