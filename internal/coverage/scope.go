package coverage

import "strings"

// ScopeFromTestFilter derives the path substring used for scoped averaging
// from a test-name filter: "domain::" becomes "domain/".
func ScopeFromTestFilter(filter string) string {
	if filter == "" {
		return ""
	}
	return strings.TrimRight(filter, ":") + "/"
}

// FilterSubstring returns the records whose path contains sub.
func (s FileSet) FilterSubstring(sub string) FileSet {
	out := make(FileSet)
	for p, cov := range s {
		if p.Contains(sub) {
			out[p] = cov
		}
	}
	return out
}

// HasComponentPrefix reports whether any record is workspace-prefixed with
// the named component. When none is, the whole report belongs to the one
// component being analyzed.
func (s FileSet) HasComponentPrefix(component string) bool {
	for p := range s {
		if p.InComponent(component) {
			return true
		}
	}
	return false
}

// FilterComponent narrows the set to the named component. In workspace mode
// (some paths carry the "<component>/" prefix) only those records are kept;
// in single-component mode every record already belongs to the component.
func (s FileSet) FilterComponent(component string) FileSet {
	if !s.HasComponentPrefix(component) {
		return s
	}
	out := make(FileSet)
	for p, cov := range s {
		if p.InComponent(component) {
			out[p] = cov
		}
	}
	return out
}

// AverageBySubstring returns the mean line coverage over records whose path
// contains sub. ok is false when no record matches, which callers must not
// conflate with a zero score.
func (s FileSet) AverageBySubstring(sub string) (avg float64, ok bool) {
	return s.FilterSubstring(sub).average()
}

// AverageByComponent returns the mean line coverage over the component's
// records, transparently handling both workspace and single-component path
// forms. ok is false when the set is empty.
func (s FileSet) AverageByComponent(component string) (avg float64, ok bool) {
	return s.FilterComponent(component).average()
}

func (s FileSet) average() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	var total float64
	for _, cov := range s {
		total += cov
	}
	return total / float64(len(s)), true
}

// FindUncovered resolves the uncovered-line entry for a path from the
// per-file table. The uncovered section usually prints longer path forms
// (often absolute), so an exact match is tried first and then keys ending
// with or containing the queried path are considered. Among those the key
// sharing the longest common suffix with the query wins; remaining ties go
// to the lexicographically smaller key, so the answer does not depend on map
// iteration order. Returns nil when nothing matches.
func FindUncovered(path SourcePath, uncovered UncoveredSet) []int {
	if lines, ok := uncovered[path]; ok {
		return lines
	}

	var best SourcePath
	bestLen := -1
	for key := range uncovered {
		if !strings.HasSuffix(string(key), string(path)) && !key.Contains(string(path)) {
			continue
		}
		n := commonSuffixLen(string(key), string(path))
		if n > bestLen || (n == bestLen && key < best) {
			best, bestLen = key, n
		}
	}

	if bestLen < 0 {
		return nil
	}
	return uncovered[best]
}

func commonSuffixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}
