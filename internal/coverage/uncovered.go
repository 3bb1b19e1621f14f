package coverage

import (
	"strings"
)

// uncoveredMarker opens the optional trailing section listing uncovered lines
// per file, emitted by cargo llvm-cov --show-missing-lines.
const uncoveredMarker = "Uncovered Lines:"

// ParseUncovered extracts the uncovered-line section of the report.
//
// Everything before the section marker is ignored. Each subsequent line of
// the form "path: 56, 57, 78-82" is split on its first colon; the right-hand
// side is a comma-separated list of line numbers and inclusive ranges.
// Malformed tokens are dropped individually; a line that yields no numbers
// contributes no entry. Keys keep whatever path form the tool printed, which
// is usually longer than the per-file table's keys (see FindUncovered).
func ParseUncovered(lines []string) (UncoveredSet, []Skip) {
	uncovered := make(UncoveredSet)
	var skips []Skip

	inSection := false
	for i, line := range lines {
		if strings.Contains(line, uncoveredMarker) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		path, list, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		nums := ExpandList(list)
		if len(nums) == 0 {
			skips = append(skips, Skip{Line: i + 1, Reason: "no parsable line numbers"})
			continue
		}

		uncovered[SourcePath(strings.TrimSpace(path))] = nums
	}

	return uncovered, skips
}
