package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"covgate/internal/checks"
)

// Listing caps keep the output readable on large violation sets.
const (
	maxImportFiles         = 10
	maxImportIssuesPerFile = 3
)

// NewImportsCommand creates the "imports" subcommand.
func NewImportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "imports <component-path>",
		Short: "Verify that imports are at the top of source files.",
		Long: `Verify that all use statements in a component's Rust files appear
before any non-import code.

Exit codes:
  0 - All imports are at top
  1 - One or more files have misplaced imports`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			violations, err := checks.CheckImports(args[0])
			if err != nil {
				return &ExitError{Code: 1, Msg: err.Error()}
			}

			if len(violations) == 0 {
				fmt.Println("✓ All imports are at top of files")
				return nil
			}

			fmt.Printf("❌ Found %d file(s) with imports after code:\n\n", len(violations))
			for i, v := range violations {
				if i == maxImportFiles {
					fmt.Printf("\n  ... and %d more files\n", len(violations)-maxImportFiles)
					break
				}
				fmt.Printf("  %s:\n", v.Path)
				for j, issue := range v.Issues {
					if j == maxImportIssuesPerFile {
						fmt.Printf("    ... and %d more imports\n", len(v.Issues)-maxImportIssuesPerFile)
						break
					}
					fmt.Printf("    Line %d: %s\n", issue.Line, truncate(issue.Statement, 60))
				}
			}

			return &ExitError{Code: 1}
		},
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
