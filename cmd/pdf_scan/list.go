package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/jonathan/pdf-scanner/internal/discovery"
)

var listCommand = &cobra.Command{
	Use:   "list",
	Short: "List the PDFs a scan would process",
	Long:  "Walks --root the same way scan does and prints every .pdf path found, one per line, without opening the files.",
	RunE:  runListCmd,
}

var (
	listRoot  string
	listCount bool
)

func init() {
	listCommand.Flags().StringVarP(&listRoot, "root", "r", "", "Directory to walk (defaults to PDF_SCAN_ROOT)")
	listCommand.Flags().BoolVar(&listCount, "count", false, "Print only the number of files found")

	rootCmd.AddCommand(listCommand)
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	root := listRoot
	if root == "" {
		root = os.Getenv(envRoot)
	}
	if root == "" {
		return fmt.Errorf("--root is required (via flag or %s)", envRoot)
	}

	if climbsAbove(root) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", root, err)
		}
		root = abs
	}

	files, err := discovery.Enumerate(osfs.New(""), root)
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if listCount {
		_, _ = fmt.Fprintf(out, "%d\n", len(files))
		return nil
	}
	for _, f := range files {
		_, _ = fmt.Fprintln(out, f)
	}
	return nil
}
