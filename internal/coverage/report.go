package coverage

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultModuleBuckets is the ordered list of module prefixes the per-file
// view groups by. A file that matches none of them lands under "Other".
var DefaultModuleBuckets = []string{
	"billing/", "domain/", "executor/", "llm/", "storage/", "tools/", "agents/",
}

const reportRule = "============================================================"
const fileRule = "------------------------------------------------------------"

// Per-file glyph thresholds. These are fixed display thresholds, independent
// of the configured goal/minimum pair.
const (
	fileGlyphPass = 90
	fileGlyphWarn = 80
)

// ReportOptions carries everything the renderer needs beyond the parsed data.
type ReportOptions struct {
	Goal       float64
	Minimum    float64
	TestFilter string

	// Scoped is the scope-filtered coverage figure, nil when no scope
	// filter produced one. Component names the component when Scoped is the
	// component-restricted average rather than a test-filter average.
	Scoped    *float64
	Component string
}

// Headline returns the figure the status line and the exit code are based
// on: the scoped figure when one was computed, the overall line figure
// otherwise.
func (o ReportOptions) Headline(sum *Summary) float64 {
	if o.Scoped != nil {
		return *o.Scoped
	}
	return sum.Line
}

// RenderReport renders the fixed-layout coverage report block.
func RenderReport(sum *Summary, opts ReportOptions) string {
	lineCov := opts.Headline(sum)
	class := Classify(lineCov, opts.Goal, opts.Minimum)

	var b strings.Builder
	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("CODE COVERAGE REPORT\n")
	b.WriteString(reportRule + "\n")

	if opts.TestFilter != "" {
		fmt.Fprintf(&b, "Test Filter: %s\n", opts.TestFilter)
	}

	switch {
	case opts.Scoped != nil && opts.Component != "":
		fmt.Fprintf(&b, "\n%s Line Coverage: %.2f%%\n", opts.Component, lineCov)
		fmt.Fprintf(&b, "Overall Line Coverage:     %.2f%%\n", sum.Line)
	case opts.Scoped != nil:
		fmt.Fprintf(&b, "\nFiltered Line Coverage: %.2f%%\n", lineCov)
		fmt.Fprintf(&b, "Overall Line Coverage:  %.2f%%\n", sum.Line)
	default:
		fmt.Fprintf(&b, "\nLine Coverage:     %.2f%%\n", lineCov)
	}

	// Function and region figures are whole-project metrics; they are not
	// meaningful alongside a scoped figure.
	if opts.Scoped == nil {
		fmt.Fprintf(&b, "Function Coverage: %.2f%%\n", sum.Function)
		fmt.Fprintf(&b, "Region Coverage:   %.2f%%\n", sum.Region)
	}

	fmt.Fprintf(&b, "\nStatus: %s\n\n", class.Status)

	b.WriteString("Thresholds:\n")
	fmt.Fprintf(&b, "  Goal:    %.0f%% (target for excellent coverage)\n", opts.Goal)
	fmt.Fprintf(&b, "  Minimum: %.0f%% (hard limit)\n", opts.Minimum)

	switch class.Status {
	case Excellent:
		b.WriteString("\n✓ Coverage meets goal threshold!\n")
	case Warning:
		b.WriteString("\n⚠ Coverage meets minimum but below goal\n")
		fmt.Fprintf(&b, "  Need %.2f%% more to reach goal\n", class.GapToGoal)
	default:
		b.WriteString("\n✗ Coverage below minimum threshold\n")
		fmt.Fprintf(&b, "  Need %.2f%% more to meet minimum\n", class.GapToMinimum)
		fmt.Fprintf(&b, "  Need %.2f%% more to reach goal\n", class.GapToGoal)
	}

	b.WriteString(reportRule + "\n\n")
	return b.String()
}

// FileDetailOptions controls the per-file section of the report.
type FileDetailOptions struct {
	// ShowAll lists files from every component instead of restricting to
	// the analyzed one.
	ShowAll bool
	// ModuleFilter is the path substring derived from a test filter; when
	// set, matching files get their own leading section.
	ModuleFilter string
	// Component is the component under analysis; used to restrict the
	// listing and to shorten displayed paths.
	Component string
	// Buckets is the ordered module grouping; DefaultModuleBuckets when nil.
	Buckets []string
	// Uncovered, when non-nil, annotates each file with its compacted
	// uncovered-line ranges.
	Uncovered UncoveredSet
}

// RenderFileDetail renders the per-file coverage listing: an optional
// module-filter section, then files grouped into module buckets with a final
// "Other" bucket, each file annotated with a pass/warn/fail glyph and, when
// available, its uncovered lines.
func RenderFileDetail(files FileSet, opts FileDetailOptions) string {
	buckets := opts.Buckets
	if buckets == nil {
		buckets = DefaultModuleBuckets
	}

	var b strings.Builder
	b.WriteString("\nPer-File Coverage:\n")
	b.WriteString(fileRule + "\n")

	stripPrefix := ""
	if !opts.ShowAll && opts.Component != "" && files.HasComponentPrefix(opts.Component) {
		files = files.FilterComponent(opts.Component)
		stripPrefix = opts.Component + "/src/"
	}

	if opts.ModuleFilter != "" {
		matched := files.FilterSubstring(opts.ModuleFilter)
		if len(matched) > 0 {
			fmt.Fprintf(&b, "\n%s Files:\n", bucketTitle(opts.ModuleFilter))
			writeFileLines(&b, matched, stripPrefix, opts.Uncovered)
			if avg, ok := files.AverageBySubstring(opts.ModuleFilter); ok {
				fmt.Fprintf(&b, "\n  Average coverage: %.2f%%\n", avg)
			}
		} else {
			fmt.Fprintf(&b, "\n  No files found matching '%s'\n", opts.ModuleFilter)
		}
	}

	if opts.ShowAll || opts.ModuleFilter == "" {
		shown := make(map[SourcePath]bool)

		for _, prefix := range buckets {
			bucket := make(FileSet)
			for p, cov := range files {
				if p.Contains(prefix) && !shown[p] {
					bucket[p] = cov
				}
			}
			if len(bucket) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s Files:\n", bucketTitle(prefix))
			writeFileLines(&b, bucket, stripPrefix, opts.Uncovered)
			for p := range bucket {
				shown[p] = true
			}
		}

		other := make(FileSet)
		for p, cov := range files {
			if !shown[p] {
				other[p] = cov
			}
		}
		if len(other) > 0 {
			b.WriteString("\nOther Files:\n")
			writeFileLines(&b, other, stripPrefix, opts.Uncovered)
		}
	}

	b.WriteString(fileRule + "\n")
	return b.String()
}

// writeFileLines lists a group of files in lexical path order.
func writeFileLines(b *strings.Builder, files FileSet, stripPrefix string, uncovered UncoveredSet) {
	paths := make([]SourcePath, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	for _, p := range paths {
		cov := files[p]
		fmt.Fprintf(b, "  %s %-50s %6.2f%%\n", fileGlyph(cov), p.Display(stripPrefix), cov)

		if uncovered != nil {
			if lines := FindUncovered(p, uncovered); len(lines) > 0 {
				fmt.Fprintf(b, "       Uncovered: %s\n", Compact(lines))
			}
		}
	}
}

func fileGlyph(cov float64) string {
	switch {
	case cov >= fileGlyphPass:
		return "✅"
	case cov >= fileGlyphWarn:
		return "⚠️ "
	default:
		return "❌"
	}
}

// bucketTitle turns a bucket prefix like "domain/" into "Domain".
func bucketTitle(prefix string) string {
	name := strings.TrimRight(prefix, "/")
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
