// Command jobnotify is the match-scoring engine behind the job tracker shell.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:           "jobnotify",
	Short:         "Job match-scoring engine",
	Long:          "jobnotify ranks a fixed set of job postings against saved preferences and serves the results to the tracker UI over a localhost API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Engine data directory (default $JOBNOTIFY_DATA_DIR or .)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
