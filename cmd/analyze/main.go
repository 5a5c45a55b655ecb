// Package main provides the profile-screener command line analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank stored candidate profiles against a job description",
	Long:  "Reads candidate PDFs from the configured profile store, scores each one against a job description with the configured language model, and prints the ranking.",
	RunE:  runAnalyze,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
