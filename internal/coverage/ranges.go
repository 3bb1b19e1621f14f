package coverage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Compact formats a set of line numbers as a compact range string, merging
// runs of consecutive numbers: {56,57,58,78,79,80,81,82} -> "56-58, 78-82".
// Input order is irrelevant; duplicates are collapsed.
func Compact(nums []int) string {
	return CompactMax(nums, 0)
}

// CompactMax is Compact with an optional length cap. When maxLen > 0 and the
// rendered string is longer, it is cut at maxLen and suffixed with an
// ellipsis and the total count of line numbers represented.
func CompactMax(nums []int, maxLen int) string {
	if len(nums) == 0 {
		return ""
	}

	sorted := append([]int(nil), nums...)
	sort.Ints(sorted)

	var ranges []string
	start, end := sorted[0], sorted[0]
	total := 1

	flush := func() {
		if start == end {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d-%d", start, end))
		}
	}

	for _, n := range sorted[1:] {
		switch {
		case n == end:
			continue
		case n == end+1:
			end = n
		default:
			flush()
			start, end = n, n
		}
		total++
	}
	flush()

	result := strings.Join(ranges, ", ")
	if maxLen > 0 && len(result) > maxLen {
		return result[:maxLen] + fmt.Sprintf("... (%d total lines)", total)
	}
	return result
}

// ExpandList parses a comma-separated list of line numbers and inclusive
// "start-end" ranges back into individual numbers. It is the inverse of
// Compact. Malformed tokens are dropped.
func ExpandList(list string) []int {
	var nums []int

	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if first, rest, ok := strings.Cut(token, "-"); ok {
			start, err1 := strconv.Atoi(first)
			end, err2 := strconv.Atoi(rest)
			if err1 != nil || err2 != nil {
				continue
			}
			for n := start; n <= end; n++ {
				nums = append(nums, n)
			}
			continue
		}

		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}

	return nums
}
