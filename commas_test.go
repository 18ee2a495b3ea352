package csfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInsertTrailingCommas tests the two-line comma window.
func TestInsertTrailingCommas(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "element before closing paren",
			input:    []string{"  foo(", "    bar", "  )"},
			expected: []string{"  foo(", "    bar,", "  )"},
		},
		{
			name:     "element before closing brace",
			input:    []string{"new[] {", "    1", "}"},
			expected: []string{"new[] {", "    1,", "}"},
		},
		{
			name:     "call result before closing paren",
			input:    []string{"Configure(", "    Build()", ")"},
			expected: []string{"Configure(", "    Build(),", ")"},
		},
		{
			name:     "existing comma is kept",
			input:    []string{"  foo(", "    bar,", "  )"},
			expected: []string{"  foo(", "    bar,", "  )"},
		},
		{
			name:     "statement terminator blocks the comma",
			input:    []string{"    Do();", "}"},
			expected: []string{"    Do();", "}"},
		},
		{
			name:     "opening line gets no comma",
			input:    []string{"  foo(", "  )"},
			expected: []string{"  foo(", "  )"},
		},
		{
			name:     "opening bracket gets no comma",
			input:    []string{"var xs = new[] [", "]"},
			expected: []string{"var xs = new[] [", "]"},
		},
		{
			name:     "blank line gets no comma",
			input:    []string{"", "}"},
			expected: []string{"", "}"},
		},
		{
			name:     "next line must close",
			input:    []string{"    bar", "    baz"},
			expected: []string{"    bar", "    baz"},
		},
		{
			name:     "last line is never touched",
			input:    []string{"    bar"},
			expected: []string{"    bar"},
		},
		{
			name:     "trailing spaces are dropped when comma lands",
			input:    []string{"    bar  ", "  )"},
			expected: []string{"    bar,", "  )"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, insertTrailingCommas(tt.input))
		})
	}
}

// TestInsertTrailingCommasIdempotent tests that a placed comma blocks the rule.
func TestInsertTrailingCommasIdempotent(t *testing.T) {
	input := []string{"  foo(", "    bar", "  )"}

	once := insertTrailingCommas(input)
	twice := insertTrailingCommas(once)
	assert.Equal(t, once, twice)
}
