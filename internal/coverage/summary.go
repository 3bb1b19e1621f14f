package coverage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// totalsMarker identifies the row carrying project-wide totals.
const totalsMarker = "TOTAL"

// summaryTokenCount is the minimum token count of a well-formed totals row.
const summaryTokenCount = 13

// ErrNoSummary is returned when no totals row could be parsed from the
// report. The caller treats this as a fatal parse failure.
var ErrNoSummary = errors.New("no coverage summary found in report")

// ParseSummary scans report lines for the totals row and extracts the
// region, function and line coverage percentages from it.
//
// The row has the columnar llvm-cov layout:
//
//	TOTAL  7309  6818  6.72%  831  740  10.95%  6540  6025  7.87%  0  0  -
//
// A candidate row that is too short or fails numeric parsing is skipped and
// scanning continues; the first row that parses wins.
func ParseSummary(lines []string) (*Summary, []Skip, error) {
	var skips []Skip

	for i, line := range lines {
		if !strings.Contains(line, totalsMarker) {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < summaryTokenCount {
			skips = append(skips, Skip{
				Line:   i + 1,
				Reason: fmt.Sprintf("totals row has %d tokens, need %d", len(parts), summaryTokenCount),
			})
			continue
		}

		region, err := parsePercent(parts[3])
		if err != nil {
			skips = append(skips, Skip{Line: i + 1, Reason: "region column: " + err.Error()})
			continue
		}
		function, err := parsePercent(parts[6])
		if err != nil {
			skips = append(skips, Skip{Line: i + 1, Reason: "function column: " + err.Error()})
			continue
		}
		lineCov, err := parsePercent(parts[9])
		if err != nil {
			skips = append(skips, Skip{Line: i + 1, Reason: "line column: " + err.Error()})
			continue
		}

		return &Summary{Region: region, Function: function, Line: lineCov}, skips, nil
	}

	return nil, skips, ErrNoSummary
}

// parsePercent parses a token of the form "NN.NN%".
func parsePercent(token string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(token, "%"), 64)
}
