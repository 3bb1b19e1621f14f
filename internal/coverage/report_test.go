package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReport(t *testing.T) {
	sum := &Summary{Region: 6.72, Function: 10.95, Line: 87.50}

	t.Run("unscoped report shows all three metrics", func(t *testing.T) {
		out := RenderReport(sum, ReportOptions{Goal: 90, Minimum: 80})
		assert.Contains(t, out, "CODE COVERAGE REPORT")
		assert.Contains(t, out, "Line Coverage:     87.50%")
		assert.Contains(t, out, "Function Coverage: 10.95%")
		assert.Contains(t, out, "Region Coverage:   6.72%")
		assert.Contains(t, out, "Goal:    90% (target for excellent coverage)")
		assert.Contains(t, out, "Minimum: 80% (hard limit)")
		assert.NotContains(t, out, "Test Filter:")
	})

	t.Run("scoped report shows both figures and hides project metrics", func(t *testing.T) {
		scoped := 65.0
		out := RenderReport(sum, ReportOptions{
			Goal: 90, Minimum: 80,
			TestFilter: "domain::",
			Scoped:     &scoped,
		})
		assert.Contains(t, out, "Test Filter: domain::")
		assert.Contains(t, out, "Filtered Line Coverage: 65.00%")
		assert.Contains(t, out, "Overall Line Coverage:  87.50%")
		assert.NotContains(t, out, "Function Coverage:")
		assert.NotContains(t, out, "Region Coverage:")
	})

	t.Run("component scope labels the headline with the component", func(t *testing.T) {
		scoped := 92.0
		out := RenderReport(sum, ReportOptions{
			Goal: 90, Minimum: 80,
			Scoped:    &scoped,
			Component: "multi-llm",
		})
		assert.Contains(t, out, "multi-llm Line Coverage: 92.00%")
		assert.Contains(t, out, "Coverage meets goal threshold!")
	})

	t.Run("warning status explains the gap to goal", func(t *testing.T) {
		warn := &Summary{Line: 85}
		out := RenderReport(warn, ReportOptions{Goal: 90, Minimum: 80})
		assert.Contains(t, out, "WARNING")
		assert.Contains(t, out, "Need 5.00% more to reach goal")
	})

	t.Run("violation status explains both gaps", func(t *testing.T) {
		bad := &Summary{Line: 75}
		out := RenderReport(bad, ReportOptions{Goal: 90, Minimum: 80})
		assert.Contains(t, out, "VIOLATION")
		assert.Contains(t, out, "Need 5.00% more to meet minimum")
		assert.Contains(t, out, "Need 15.00% more to reach goal")
	})
}

func TestReportOptions_Headline(t *testing.T) {
	sum := &Summary{Line: 50}

	t.Run("uses the overall figure without a scope", func(t *testing.T) {
		assert.Equal(t, 50.0, ReportOptions{}.Headline(sum))
	})

	t.Run("prefers the scoped figure", func(t *testing.T) {
		scoped := 75.0
		assert.Equal(t, 75.0, ReportOptions{Scoped: &scoped}.Headline(sum))
	})
}

func TestRenderFileDetail(t *testing.T) {
	files := FileSet{
		"multi-llm/src/domain/user.rs":  95,
		"multi-llm/src/domain/story.rs": 85,
		"multi-llm/src/billing/inv.rs":  60,
		"multi-llm/src/util/misc.rs":    70,
		"other-crate/src/lib.rs":        20,
	}

	t.Run("groups files into ordered buckets plus Other", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ShowAll: true})
		billing := strings.Index(out, "Billing Files:")
		domain := strings.Index(out, "Domain Files:")
		other := strings.Index(out, "Other Files:")
		assert.Greater(t, billing, -1)
		assert.Greater(t, domain, billing)
		assert.Greater(t, other, domain)
		assert.Contains(t, out, "util/misc.rs")
		assert.Contains(t, out, "other-crate/src/lib.rs")
	})

	t.Run("annotates files with glyphs by fixed thresholds", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ShowAll: true})
		assert.Contains(t, out, "✅ multi-llm/src/domain/user.rs")
		assert.Contains(t, out, "⚠️  multi-llm/src/domain/story.rs")
		assert.Contains(t, out, "❌ multi-llm/src/billing/inv.rs")
	})

	t.Run("component view strips the workspace prefix", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{Component: "multi-llm"})
		assert.Contains(t, out, " domain/user.rs")
		assert.NotContains(t, out, "other-crate")
	})

	t.Run("lists files in lexical order inside a bucket", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ShowAll: true})
		story := strings.Index(out, "domain/story.rs")
		user := strings.Index(out, "domain/user.rs")
		assert.Greater(t, user, story)
	})

	t.Run("module filter section shows matches and their average", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ModuleFilter: "domain/"})
		assert.Contains(t, out, "Domain Files:")
		assert.Contains(t, out, "Average coverage: 90.00%")
	})

	t.Run("module filter with no matches says so", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ModuleFilter: "storage/"})
		assert.Contains(t, out, "No files found matching 'storage/'")
	})

	t.Run("uncovered annotations use the compact range form", func(t *testing.T) {
		uncovered := UncoveredSet{
			"/abs/multi-llm/src/domain/user.rs": {56, 57, 58, 78, 79, 80, 81, 82},
		}
		out := RenderFileDetail(files, FileDetailOptions{ShowAll: true, Uncovered: uncovered})
		assert.Contains(t, out, "Uncovered: 56-58, 78-82")
	})

	t.Run("custom buckets replace the defaults", func(t *testing.T) {
		out := RenderFileDetail(files, FileDetailOptions{ShowAll: true, Buckets: []string{"util/"}})
		assert.Contains(t, out, "Util Files:")
		assert.NotContains(t, out, "Domain Files:")
	})
}
