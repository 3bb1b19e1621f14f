package app

import (
	"github.com/spf13/cobra"

	"covgate/internal/logger"
)

// ExitError carries the process exit code chosen by a subcommand. Msg may be
// empty when the code itself is the whole story (threshold outcomes).
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string { return e.Msg }

// NewCovgateCommand creates the root command for the covgate tool.
func NewCovgateCommand() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "covgate",
		Short: "Code-quality gate for Rust workspaces.",
		Long: `Covgate enforces code-quality thresholds in CI: it measures test
coverage through cargo-llvm-cov and checks source conventions, reporting
results through its exit code.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logLevel)
			logger.SetLevel(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(NewCoverageCommand())
	cmd.AddCommand(NewFileSizeCommand())
	cmd.AddCommand(NewImportsCommand())

	return cmd
}
