package csfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFixMarkdownSnippets tests that only fenced C# blocks are rewritten and
// every other byte of the document survives untouched.
func TestFixMarkdownSnippets(t *testing.T) {
	pipeline, err := NewPipeline(defaultCompiled(t), nil)
	require.NoError(t, err)

	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name: "rewrites cs fence and leaves go fence and prose alone",
			input: "# Title\n\nProse mentions u.Email here.\n\n" +
				"```cs\nif (ready) Fire();\n```\n\n" +
				"```go\nif ready { fire() }\n```\n",
			expected: "# Title\n\nProse mentions u.Email here.\n\n" +
				"```cs\nif (ready)\n{\n    Fire();\n}\n```\n\n" +
				"```go\nif ready { fire() }\n```\n",
		},
		{
			name: "matches csharp and c# info strings case-insensitively",
			input: "```C#\nu.Email = a;\n```\n\n" +
				"```csharp title=Sample.cs\nawait job.RunAsync();\n```\n",
			expected: "```C#\nu.email = a;\n```\n\n" +
				"```csharp title=Sample.cs\nawait job.RunAsync().ConfigureAwait(false);\n```\n",
		},
		{
			name: "splices multiple blocks even when earlier ones grow",
			input: "```cs\nforeach (var x in xs) Add(x);\n```\nmid\n" +
				"```cs\nvar total = Sum(\n    a\n);\n```\n",
			expected: "```cs\nforeach (var x in xs)\n{\n    Add(x);\n}\n```\nmid\n" +
				"```cs\nvar total = Sum(\n    a,\n);\n```\n",
		},
		{
			name:     "document without matching fences is returned verbatim",
			input:    "# Notes\n\n```go\nx := 1\n```\n\nPlain text with if (x) Call(); inline.\n",
			expected: "# Notes\n\n```go\nx := 1\n```\n\nPlain text with if (x) Call(); inline.\n",
		},
		{
			name:     "empty fenced block is skipped",
			input:    "```cs\n```\nafter\n",
			expected: "```cs\n```\nafter\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FixMarkdownSnippets(tc.input, pipeline))
		})
	}
}

// TestExtractSnippetSpans tests the byte offsets reported for fenced blocks.
func TestExtractSnippetSpans(t *testing.T) {
	source := "intro\n```cs\nvar a = 1;\n```\ntail\n"

	spans, err := extractSnippetSpans([]byte(source))
	require.NoError(t, err)
	require.Len(t, spans, 1)

	assert.Equal(t, "var a = 1;\n", spans[0].content)
	assert.Equal(t, spans[0].content, source[spans[0].start:spans[0].stop])
}
