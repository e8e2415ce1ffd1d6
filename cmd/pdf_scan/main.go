// Package main provides the entry point for the pdf_scan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "pdf_scan",
	Short:         "Find PDFs that contain a keyword",
	Long:          "pdf_scan walks a directory tree, extracts the text of every PDF it finds, and lists the files whose text contains a keyword (case-insensitive).",
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
