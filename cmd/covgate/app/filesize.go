package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"covgate/internal/checks"
	"covgate/internal/config"
)

// NewFileSizeCommand creates the "filesize" subcommand.
func NewFileSizeCommand() *cobra.Command {
	var goal, hardLimit int

	cmd := &cobra.Command{
		Use:   "filesize <component-path>",
		Short: "Verify that source files meet size limits.",
		Long: `Verify that all Rust files in a component meet file size limits.

Checks both the goal and the hard limit.

Exit codes:
  0 - All files meet goal
  1 - Files exceed goal but meet hard limit
  2 - Files exceed hard limit (requires approval)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault("covgate")
			if err != nil {
				return &ExitError{Code: 2, Msg: err.Error()}
			}
			if !cmd.Flags().Changed("goal") {
				goal = cfg.Checks.FileSizeGoal
			}
			if !cmd.Flags().Changed("hard-limit") {
				hardLimit = cfg.Checks.FileSizeHardLimit
			}

			result, err := checks.CheckFileSizes(args[0], goal, hardLimit)
			if err != nil {
				return &ExitError{Code: 2, Msg: err.Error()}
			}

			printFileSizeResult(result, goal, hardLimit)

			if code := result.ExitCode(); code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&goal, "goal", 500, "Goal file size in lines")
	cmd.Flags().IntVar(&hardLimit, "hard-limit", 1000, "Hard limit file size in lines")

	return cmd
}

func printFileSizeResult(result *checks.FileSizeResult, goal, hardLimit int) {
	if len(result.OverHardLimit) == 0 && len(result.OverGoal) == 0 {
		fmt.Printf("✓ All files < %d lines (goal)\n", goal)
		return
	}

	if len(result.OverHardLimit) > 0 {
		fmt.Printf("❌ HARD LIMIT VIOLATION: %d file(s) >= %d lines:\n", len(result.OverHardLimit), hardLimit)
		fmt.Println("   These require explicit approval to ignore.")
		fmt.Println()
		for _, f := range result.OverHardLimit {
			fmt.Printf("  %s: %d lines\n", f.Path, f.Lines)
		}
		fmt.Println()
	}

	if len(result.OverGoal) > 0 {
		prefix := "⚠️  "
		if len(result.OverHardLimit) > 0 {
			prefix = ""
		}
		fmt.Printf("%sGOAL MISSED: %d file(s) >= %d lines but < %d lines:\n", prefix, len(result.OverGoal), goal, hardLimit)
		fmt.Println("   These should be refactored but don't block progress.")
		fmt.Println()
		for _, f := range result.OverGoal {
			fmt.Printf("  %s: %d lines (goal: %d, hard limit: %d)\n", f.Path, f.Lines, goal, hardLimit)
		}
	}
}
