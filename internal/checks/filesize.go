// Package checks holds the single-pass source-convention checkers that ship
// alongside the coverage gate: file size and import placement.
package checks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FileSize pairs a component-relative path with its line count.
type FileSize struct {
	Path  string
	Lines int
}

// FileSizeResult separates oversized files by severity.
type FileSizeResult struct {
	// OverHardLimit lists files at or above the hard limit.
	OverHardLimit []FileSize
	// OverGoal lists files at or above the goal but under the hard limit.
	OverGoal []FileSize
}

// ExitCode maps the result onto the checker's process exit code:
// 0 all files under goal, 1 goal missed, 2 hard limit violated.
func (r *FileSizeResult) ExitCode() int {
	switch {
	case len(r.OverHardLimit) > 0:
		return 2
	case len(r.OverGoal) > 0:
		return 1
	default:
		return 0
	}
}

// CheckFileSizes counts the lines of every Rust source file under the
// component's src directory and reports files at or above the goal.
func CheckFileSizes(componentPath string, goal, hardLimit int) (*FileSizeResult, error) {
	srcPath := filepath.Join(componentPath, "src")
	if _, err := os.Stat(srcPath); err != nil {
		return nil, fmt.Errorf("%s does not exist", srcPath)
	}

	matches, err := doublestar.FilepathGlob(filepath.Join(srcPath, "**", "*.rs"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", srcPath, err)
	}

	result := &FileSizeResult{}
	for _, path := range matches {
		lines, err := countLines(path)
		if err != nil {
			return nil, err
		}
		if lines < goal {
			continue
		}

		rel, err := filepath.Rel(componentPath, path)
		if err != nil {
			rel = path
		}

		entry := FileSize{Path: rel, Lines: lines}
		if lines >= hardLimit {
			result.OverHardLimit = append(result.OverHardLimit, entry)
		} else {
			result.OverGoal = append(result.OverGoal, entry)
		}
	}

	// Largest offenders first.
	byLines := func(s []FileSize) func(i, j int) bool {
		return func(i, j int) bool { return s[i].Lines > s[j].Lines }
	}
	sort.Slice(result.OverHardLimit, byLines(result.OverHardLimit))
	sort.Slice(result.OverGoal, byLines(result.OverGoal))

	return result, nil
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return 0, nil
	}
	lines := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		lines++
	}
	return lines, nil
}
