package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"covgate/internal/config"
	"covgate/internal/coverage"
	"covgate/internal/exec"
	"covgate/internal/logger"
)

// gateParams collects everything one gate run needs after flag and config
// resolution.
type gateParams struct {
	componentPath      string
	testFilter         string
	goal               float64
	minimum            float64
	html               bool
	showFiles          bool
	showAllFiles       bool
	showUncovered      bool
	includeIntegration bool
	timeout            time.Duration
	env                []string
	moduleBuckets      []string
}

// NewCoverageCommand creates the "coverage" subcommand.
func NewCoverageCommand() *cobra.Command {
	var (
		testFilter         string
		goal               float64
		minimum            float64
		html               bool
		showFiles          bool
		showAllFiles       bool
		showUncovered      bool
		includeIntegration bool
		timeout            int
	)

	cmd := &cobra.Command{
		Use:   "coverage <component-path>",
		Short: "Run the test-coverage gate for a component.",
		Long: `Run the test-coverage gate for a component.

This command:
  1. Invokes cargo-llvm-cov for the component
  2. Parses the coverage report it produces
  3. Applies any scope filter (test filter or component boundary)
  4. Checks the result against the goal and minimum thresholds

Configuration:
  Default thresholds are loaded from configs/covgate.yaml when present.
  Command line flags override the config file values.

Examples:
  # Check coverage for a component with defaults
  covgate coverage multi-llm

  # Check coverage including integration tests
  covgate coverage multi-llm --include-integration

  # Only run tests matching a filter, scope the figure to its module
  covgate coverage multi-llm --test-filter domain::

  # Custom thresholds with per-file detail
  covgate coverage multi-llm --goal 90 --minimum 80 --show-files

  # Per-file detail with uncovered line ranges
  covgate coverage multi-llm --show-uncovered

Exit codes:
  0 - Coverage meets goal threshold
  1 - Coverage meets minimum but not goal (warning)
  2 - Coverage below minimum threshold (violation)
  3 - Error running coverage tool`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault("covgate")
			if err != nil {
				return &ExitError{Code: 3, Msg: err.Error()}
			}

			// Use config values as defaults, command line flags override.
			if !cmd.Flags().Changed("goal") {
				goal = cfg.Gate.Goal
			}
			if !cmd.Flags().Changed("minimum") {
				minimum = cfg.Gate.Minimum
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Gate.Timeout
			}

			if goal < minimum {
				return &ExitError{Code: 3, Msg: "goal threshold must be >= minimum threshold"}
			}

			componentPath, err := filepath.Abs(args[0])
			if err != nil {
				return &ExitError{Code: 3, Msg: err.Error()}
			}

			var env []string
			if includeIntegration {
				env = cfg.Gate.EnvList()
			}

			return runGate(gateParams{
				componentPath:      componentPath,
				testFilter:         testFilter,
				goal:               goal,
				minimum:            minimum,
				html:               html,
				showFiles:          showFiles,
				showAllFiles:       showAllFiles,
				showUncovered:      showUncovered,
				includeIntegration: includeIntegration,
				timeout:            time.Duration(timeout) * time.Second,
				env:                env,
				moduleBuckets:      cfg.Gate.ModuleBuckets,
			})
		},
	}

	cmd.Flags().StringVar(&testFilter, "test-filter", "", "Test filter (e.g., domain::, session::)")
	cmd.Flags().Float64Var(&goal, "goal", 90, "Goal coverage percentage")
	cmd.Flags().Float64Var(&minimum, "minimum", 80, "Minimum acceptable coverage percentage")
	cmd.Flags().BoolVar(&html, "html", false, "Generate an HTML coverage report")
	cmd.Flags().BoolVar(&showFiles, "show-files", false, "Show per-file coverage details (filtered to the component)")
	cmd.Flags().BoolVar(&showAllFiles, "show-all-files", false, "Show files from all components, not just the analyzed one")
	cmd.Flags().BoolVar(&showUncovered, "show-uncovered", false, "Show uncovered lines for each file (implies --show-files)")
	cmd.Flags().BoolVar(&includeIntegration, "include-integration", false, "Include integration tests (tests/) in the analysis")
	cmd.Flags().IntVar(&timeout, "timeout", 300, "Timeout in seconds")

	return cmd
}

func runGate(p gateParams) error {
	runner := coverage.NewRunner(exec.NewCommandExecutor())

	if !runner.ToolInstalled() {
		return &ExitError{
			Code: 3,
			Msg:  "cargo-llvm-cov is not installed\nInstall it with: cargo install cargo-llvm-cov",
		}
	}

	component := filepath.Base(p.componentPath)
	// The uncovered-line view rides on the per-file table.
	showFiles := p.showFiles || p.showAllFiles || p.showUncovered

	fmt.Printf("Running coverage analysis for %s...\n", component)
	if p.includeIntegration {
		fmt.Println("  Test types: unit + integration")
	} else {
		fmt.Println("  Test types: unit only")
	}
	if p.testFilter != "" {
		fmt.Printf("  Test filter: %s\n", p.testFilter)
	}
	fmt.Println()

	output, err := runner.Run(coverage.RunOptions{
		ComponentPath:      p.componentPath,
		TestFilter:         p.testFilter,
		HTML:               p.html,
		ShowFiles:          showFiles,
		ShowUncovered:      p.showUncovered,
		IncludeIntegration: p.includeIntegration,
		Env:                p.env,
		Timeout:            p.timeout,
	})
	if err != nil {
		return &ExitError{Code: 3, Msg: err.Error()}
	}

	lines := strings.Split(output, "\n")

	sum, skips, err := coverage.ParseSummary(lines)
	logSkips("summary", skips)
	if err != nil {
		fmt.Println("\nOutput from coverage tool:")
		fmt.Println(output)
		return &ExitError{Code: 3, Msg: "failed to parse coverage data"}
	}

	files, skips := coverage.ParseFileTable(lines)
	logSkips("file table", skips)

	var uncovered coverage.UncoveredSet
	if p.showUncovered {
		uncovered, skips = coverage.ParseUncovered(lines)
		logSkips("uncovered lines", skips)
	}

	// Compute the scoped figure: a test filter scopes to its module; a
	// component-restricted file view scopes to the component.
	var scoped *float64
	var scopeComponent, moduleFilter string
	if p.testFilter != "" && len(files) > 0 {
		moduleFilter = coverage.ScopeFromTestFilter(p.testFilter)
		if avg, ok := files.AverageBySubstring(moduleFilter); ok {
			scoped = &avg
		}
	} else if showFiles && !p.showAllFiles && len(files) > 0 {
		if avg, ok := files.AverageByComponent(component); ok {
			scoped = &avg
			scopeComponent = component
		}
	}

	opts := coverage.ReportOptions{
		Goal:       p.goal,
		Minimum:    p.minimum,
		TestFilter: p.testFilter,
		Scoped:     scoped,
		Component:  scopeComponent,
	}
	fmt.Print(coverage.RenderReport(sum, opts))

	if (showFiles || p.testFilter != "") && len(files) > 0 {
		fmt.Print(coverage.RenderFileDetail(files, coverage.FileDetailOptions{
			ShowAll:      p.showAllFiles,
			ModuleFilter: moduleFilter,
			Component:    component,
			Buckets:      p.moduleBuckets,
			Uncovered:    uncovered,
		}))
	}

	if p.html {
		if path := coverage.HTMLReportPath(p.componentPath); path != "" {
			fmt.Printf("\nHTML report: %s\n\n", path)
		}
	}

	if code := coverage.ExitCode(opts.Headline(sum), p.goal, p.minimum); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

func logSkips(stage string, skips []coverage.Skip) {
	for _, s := range skips {
		logger.Debug("%s parser skipped output line %d: %s", stage, s.Line, s.Reason)
	}
}
