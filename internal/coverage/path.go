package coverage

import "strings"

// SourcePath identifies a source file as reported by the coverage tool.
//
// The same physical file can surface in two forms depending on how the tool
// was invoked: rooted at a multi-component workspace ("multi-llm/src/x.rs")
// or relative to a single component's own source tree ("domain/x.rs").
// All prefix detection and display trimming goes through this type so the
// aggregator and the reporter agree on it.
type SourcePath string

func (p SourcePath) String() string { return string(p) }

// InComponent reports whether the path is rooted at the named component's
// directory, i.e. carries the "<component>/" workspace prefix.
func (p SourcePath) InComponent(component string) bool {
	return strings.HasPrefix(string(p), component+"/")
}

// Contains reports whether the path contains the given substring.
func (p SourcePath) Contains(sub string) bool {
	return strings.Contains(string(p), sub)
}

// Display returns the path with prefix removed when it applies, leaving the
// path untouched otherwise. Used to print component-relative paths once the
// report has been narrowed to a single component.
func (p SourcePath) Display(prefix string) string {
	if prefix != "" && strings.HasPrefix(string(p), prefix) {
		return string(p)[len(prefix):]
	}
	return string(p)
}
