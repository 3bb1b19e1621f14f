package coverage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"covgate/internal/exec"
	"covgate/internal/logger"
)

// preflightTimeout bounds the cargo-llvm-cov version probe.
const preflightTimeout = 10 * time.Second

// fatalStderrMarkers are the substrings that turn tool stderr output into a
// fatal invocation failure. Anything else on stderr is a warning:
// cargo-llvm-cov writes warnings there even on success.
var fatalStderrMarkers = []string{
	"error: could not compile",
	"error: failed to",
	"error: no such",
	"could not compile",
}

// ErrToolNotInstalled is returned by the preflight check when cargo-llvm-cov
// cannot be invoked.
var ErrToolNotInstalled = errors.New("cargo-llvm-cov is not installed")

// RunOptions describes one coverage-tool invocation.
type RunOptions struct {
	// ComponentPath is the path to the component (crate) to measure.
	ComponentPath string
	// TestFilter restricts which tests run (e.g. "domain::").
	TestFilter string
	// HTML asks the tool for an HTML artifact instead of a text report.
	HTML bool
	// ShowFiles requests the per-file table in addition to the totals.
	ShowFiles bool
	// ShowUncovered requests the trailing uncovered-lines section.
	ShowUncovered bool
	// IncludeIntegration also runs the tests/ directory.
	IncludeIntegration bool
	// Env entries are applied to the tool's environment.
	Env []string
	// Timeout bounds the whole invocation.
	Timeout time.Duration
}

// Runner invokes cargo-llvm-cov and screens its error stream.
type Runner struct {
	exec exec.Executor
}

// NewRunner creates a Runner on top of the given executor.
func NewRunner(e exec.Executor) *Runner {
	return &Runner{exec: e}
}

// ToolInstalled checks that cargo-llvm-cov is available on the host.
func (r *Runner) ToolInstalled() bool {
	ctx, cancel := context.WithTimeout(context.Background(), preflightTimeout)
	defer cancel()

	result, err := r.exec.Run(ctx, exec.Command{
		Name: "cargo",
		Args: []string{"llvm-cov", "--version"},
	})
	return err == nil && result.ExitCode == 0
}

// Run invokes cargo llvm-cov for the component and returns the report text.
// A non-zero tool exit only fails the run when stderr carries one of the
// fatal markers; otherwise stderr is logged as a warning and stdout is still
// returned for parsing.
func (r *Runner) Run(opts RunOptions) (string, error) {
	if _, err := os.Stat(opts.ComponentPath); err != nil {
		return "", fmt.Errorf("component path %s does not exist", opts.ComponentPath)
	}

	component := filepath.Base(opts.ComponentPath)
	args := []string{"llvm-cov", "--package", component, "--lib"}

	if opts.IncludeIntegration {
		args = append(args, "--tests")
	}

	switch {
	case opts.HTML:
		args = append(args, "--html")
	case opts.ShowUncovered:
		args = append(args, "--show-missing-lines")
	case !opts.ShowFiles:
		// The per-file table is only needed for detail views.
		args = append(args, "--summary-only")
	}

	if opts.TestFilter != "" {
		args = append(args, "--", opts.TestFilter)
	} else if opts.IncludeIntegration {
		// Integration tests run serially to avoid upstream rate limits.
		args = append(args, "--", "--test-threads=1")
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	result, err := r.exec.Run(ctx, exec.Command{
		Name: "cargo",
		Args: args,
		Dir:  filepath.Dir(opts.ComponentPath),
		Env:  opts.Env,
	})
	if errors.Is(err, context.DeadlineExceeded) {
		return "", fmt.Errorf("coverage analysis timed out after %s", opts.Timeout)
	}
	if err != nil {
		return "", fmt.Errorf("failed to invoke coverage tool: %w", err)
	}

	if result.ExitCode != 0 {
		if stderrIsFatal(result.Stderr) {
			return "", fmt.Errorf("coverage tool reported a fatal error:\n%s", result.Stderr)
		}
		if result.Stderr != "" {
			logger.Warn("warning from cargo-llvm-cov:\n%s", result.Stderr)
		}
	}

	return result.Stdout, nil
}

// HTMLReportPath returns the location of the tool's HTML artifact for the
// component, or "" when none was generated.
func HTMLReportPath(componentPath string) string {
	path := filepath.Join(filepath.Dir(componentPath), "target", "llvm-cov", "html", "index.html")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func stderrIsFatal(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, marker := range fatalStderrMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
