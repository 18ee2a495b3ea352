package csfix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUnifiedDiff tests rendering of line edits in unified format.
func TestUnifiedDiff(t *testing.T) {
	t.Run("equal documents produce no diff", func(t *testing.T) {
		assert.Equal(t, "", UnifiedDiff("f.cs", "a\nb\n", "a\nb\n"))
	})

	t.Run("single line replacement", func(t *testing.T) {
		got := UnifiedDiff("f.cs", "a\nb\nc\n", "a\nx\nc\n")
		want := strings.Join([]string{
			"--- a/f.cs",
			"+++ b/f.cs",
			"@@ -1,4 +1,4 @@",
			" a",
			"-b",
			"+x",
			" c",
			" ",
			"",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("appended line", func(t *testing.T) {
		got := UnifiedDiff("f.cs", "a\nb\n", "a\nb\nc\n")
		want := strings.Join([]string{
			"--- a/f.cs",
			"+++ b/f.cs",
			"@@ -1,3 +1,4 @@",
			" a",
			" b",
			"+c",
			" ",
			"",
		}, "\n")
		assert.Equal(t, want, got)
	})

	t.Run("distant edits split into hunks", func(t *testing.T) {
		var aLines, bLines []string
		for i := 1; i <= 20; i++ {
			line := fmt.Sprintf("line%d", i)
			aLines = append(aLines, line)
			bLines = append(bLines, line)
		}
		bLines[2] = "changed3"
		bLines[14] = "changed15"

		got := UnifiedDiff("f.cs", strings.Join(aLines, "\n"), strings.Join(bLines, "\n"))
		assert.Equal(t, 2, strings.Count(got, "@@ -"))
		assert.Contains(t, got, "-line3\n+changed3\n")
		assert.Contains(t, got, "-line15\n+changed15\n")
		assert.NotContains(t, got, " line8\n", "lines between hunks are omitted")
	})

	t.Run("hugely different documents degrade to a replacement", func(t *testing.T) {
		var aLines, bLines []string
		for i := 0; i < 501; i++ {
			aLines = append(aLines, fmt.Sprintf("old%d", i))
			bLines = append(bLines, fmt.Sprintf("new%d", i))
		}

		got := UnifiedDiff("f.cs", strings.Join(aLines, "\n"), strings.Join(bLines, "\n"))
		assert.Contains(t, got, "@@ -1,501 +1,501 @@")
		assert.Equal(t, 501, strings.Count(got, "\n-old"))
		assert.Equal(t, 501, strings.Count(got, "\n+new"))
	})
}

// TestDiffLines tests the edit script directly.
func TestDiffLines(t *testing.T) {
	t.Run("pure insert into empty", func(t *testing.T) {
		ops := diffLines(nil, []string{"a", "b"})
		assert.Equal(t, []diffOp{
			{kind: diffInsert, text: "a"},
			{kind: diffInsert, text: "b"},
		}, ops)
	})

	t.Run("pure delete to empty", func(t *testing.T) {
		ops := diffLines([]string{"a", "b"}, nil)
		assert.Equal(t, []diffOp{
			{kind: diffDelete, text: "a"},
			{kind: diffDelete, text: "b"},
		}, ops)
	})

	t.Run("edit script replays a into b", func(t *testing.T) {
		a := []string{"one", "two", "three", "four"}
		b := []string{"one", "2", "three", "insert", "four"}

		var rebuilt []string
		for _, op := range diffLines(a, b) {
			if op.kind != diffDelete {
				rebuilt = append(rebuilt, op.text)
			}
		}
		assert.Equal(t, b, rebuilt)

		var kept []string
		for _, op := range diffLines(a, b) {
			if op.kind != diffInsert {
				kept = append(kept, op.text)
			}
		}
		assert.Equal(t, a, kept)
	})
}
