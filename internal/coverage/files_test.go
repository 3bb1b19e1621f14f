package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileRow(path, linePct string) string {
	return path + " 100 20 80.00% 10 2 80.00% 200 40 " + linePct + " 0 0 -"
}

func TestParseFileTable(t *testing.T) {
	t.Run("should collect per-file line coverage", func(t *testing.T) {
		files, skips := ParseFileTable([]string{
			"Filename  Regions  ...",
			"------------------------------------------",
			fileRow("multi-llm/src/domain/user.rs", "92.50%"),
			fileRow("multi-llm/src/billing/invoice.rs", "71.00%"),
			totalsLine,
		})
		assert.Empty(t, skips)
		require.Len(t, files, 2)
		assert.Equal(t, 92.50, files["multi-llm/src/domain/user.rs"])
		assert.Equal(t, 71.00, files["multi-llm/src/billing/invoice.rs"])
	})

	t.Run("should let the last occurrence of a path win", func(t *testing.T) {
		files, _ := ParseFileTable([]string{
			fileRow("domain/story.rs", "10.00%"),
			fileRow("domain/story.rs", "90.00%"),
		})
		assert.Equal(t, 90.00, files["domain/story.rs"])
	})

	t.Run("should skip rows with unparsable percentages", func(t *testing.T) {
		files, skips := ParseFileTable([]string{
			fileRow("domain/story.rs", "n/a"),
			fileRow("domain/user.rs", "50.00%"),
		})
		require.Len(t, skips, 1)
		assert.Equal(t, 1, skips[0].Line)
		require.Len(t, files, 1)
		assert.Equal(t, 50.00, files["domain/user.rs"])
	})

	t.Run("should ignore short rows without recording skips", func(t *testing.T) {
		files, skips := ParseFileTable([]string{
			"warning: something unrelated",
			"",
		})
		assert.Empty(t, files)
		assert.Empty(t, skips)
	})
}
