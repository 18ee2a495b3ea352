package csfix

import (
	"fmt"
	"strings"
)

// Pass names accepted by the --pass flag, in pipeline order.
const (
	PassRename = "rename"
	PassBrace  = "brace"
	PassComma  = "comma"
	PassBlank  = "blank"
)

// Renames run first so later passes match final identifiers; braces go in
// before commas so synthesized closers take their comma in the same run.
var passOrder = []string{PassRename, PassBrace, PassComma, PassBlank}

// Pass is one pure transformation over the ordered lines of a document.
// Passes own no state beyond a single invocation; each pass sees the output
// of the previous one.
type Pass struct {
	Name  string
	Apply func(lines []string) []string
}

type Pipeline []Pass

// NewPipeline builds the pass sequence. names selects a subset of passes;
// nil or empty selects all of them. Passes always run in their canonical
// order regardless of how names is ordered.
func NewPipeline(rules *CompiledRules, names []string) (Pipeline, error) {
	selected := make(map[string]bool, len(names))
	for _, n := range names {
		switch n {
		case PassRename, PassBrace, PassComma, PassBlank:
			selected[n] = true
		default:
			return nil, fmt.Errorf("unknown pass %q (valid: %s)", n, strings.Join(passOrder, ", "))
		}
	}

	var p Pipeline
	for _, name := range passOrder {
		if len(selected) > 0 && !selected[name] {
			continue
		}
		switch name {
		case PassRename:
			p = append(p, renamePass(rules))
		case PassBrace:
			p = append(p, bracePass())
		case PassComma:
			p = append(p, commaPass())
		case PassBlank:
			p = append(p, blankPass())
		}
	}
	return p, nil
}

// Run applies every pass in order, then strips trailing whitespace from each
// line. The whitespace normalization is not selectable; it always runs last
// so the change gate compares normalized output.
func (p Pipeline) Run(lines []string) []string {
	for _, pass := range p {
		lines = pass.Apply(lines)
	}
	return stripTrailingWhitespace(lines)
}

// Transform runs the pipeline over a whole document. The document is split on
// \n, so text ending in a newline carries a final empty line through every
// pass and joins back without gaining or losing one.
func (p Pipeline) Transform(text string) string {
	return strings.Join(p.Run(strings.Split(text, "\n")), "\n")
}

func stripTrailingWhitespace(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRight(line, " \t\r")
	}
	return out
}

func indentOf(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}
