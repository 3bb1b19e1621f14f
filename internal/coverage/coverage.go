// Package coverage turns the textual report produced by cargo-llvm-cov into a
// structured model, applies scope filtering, classifies the result against the
// configured thresholds and renders the gate's report.
package coverage

// Summary holds the project-wide totals row of a coverage report.
type Summary struct {
	Region   float64
	Function float64
	Line     float64
}

// FileSet maps a reported source path to its line-coverage percentage.
type FileSet map[SourcePath]float64

// UncoveredSet maps a reported source path to its uncovered line numbers,
// in the order they appeared in the report.
type UncoveredSet map[SourcePath][]int

// Skip records a line of tool output that a parser could not use. Parsing is
// best-effort: skips are diagnostics, never failures.
type Skip struct {
	Line   int // 1-based line number in the tool output
	Reason string
}
