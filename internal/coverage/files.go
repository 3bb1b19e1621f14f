package coverage

import (
	"strings"
)

// ParseFileTable extracts per-file line-coverage percentages from the report.
//
// The per-file table shares the totals row's column layout: token 0 is the
// file path and token 9 the line-coverage percentage. The header row, the
// totals row and separator rows are ignored. A duplicated path keeps its last
// value.
func ParseFileTable(lines []string) (FileSet, []Skip) {
	files := make(FileSet)
	var skips []Skip

	for i, line := range lines {
		if strings.HasPrefix(line, "Filename") ||
			strings.HasPrefix(line, totalsMarker) ||
			strings.HasPrefix(line, "-") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < summaryTokenCount {
			continue
		}

		lineCov, err := parsePercent(parts[9])
		if err != nil {
			skips = append(skips, Skip{Line: i + 1, Reason: "line column: " + err.Error()})
			continue
		}

		files[SourcePath(parts[0])] = lineCov
	}

	return files, skips
}
