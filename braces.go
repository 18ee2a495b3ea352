package csfix

import "strings"

// Longest first so "else if" wins over "else" and "foreach" over "for".
var blockKeywords = []string{"else if", "foreach", "using", "while", "else", "for", "if"}

// bracePass wraps single-statement control bodies in braces:
//
//	if (x > 0) DoThing();
//
// becomes the four lines if (x > 0) / { / DoThing(); / } at matching
// indentation. Detection is a line heuristic, not a parse: keyword-looking
// text inside string literals can false-positive, and that is accepted.
func bracePass() Pass {
	return Pass{Name: PassBrace, Apply: insertBraces}
}

func insertBraces(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		header, statement, ok := splitInlineStatement(line)
		if !ok {
			out = append(out, line)
			continue
		}
		indent := indentOf(line)
		out = append(out,
			header,
			indent+"{",
			indent+"    "+statement,
			indent+"}",
		)
	}
	return out
}

// splitInlineStatement reports whether line is a control keyword carrying its
// body on the same line, and if so returns the header (indent + keyword +
// condition, spacing preserved) and the trailing statement.
func splitInlineStatement(line string) (header, statement string, ok bool) {
	trimmed := strings.TrimRight(line, " \t")
	if strings.HasSuffix(trimmed, "{") {
		return "", "", false
	}

	indent := indentOf(trimmed)
	rest := trimmed[len(indent):]
	kw := matchBlockKeyword(rest)
	if kw == "" {
		return "", "", false
	}

	after := rest[len(kw):]
	condEnd := 0
	i := 0
	for i < len(after) && (after[i] == ' ' || after[i] == '\t') {
		i++
	}
	if i < len(after) && after[i] == '(' {
		condEnd = matchParen(after, i)
		if condEnd < 0 {
			return "", "", false
		}
	} else if kw != "else" {
		// Without a condition the other keywords are directives or
		// declarations (`using System.Text;`, `using var f = ...;`).
		return "", "", false
	}

	statement = strings.TrimSpace(after[condEnd:])
	if statement == "" || statement == ";" {
		return "", "", false
	}
	return indent + kw + after[:condEnd], statement, true
}

func matchBlockKeyword(s string) string {
	for _, kw := range blockKeywords {
		if !strings.HasPrefix(s, kw) {
			continue
		}
		if len(s) == len(kw) {
			return kw
		}
		switch s[len(kw)] {
		case ' ', '\t', '(':
			return kw
		}
	}
	return ""
}

// matchParen returns the index just past the parenthesis that balances the
// one at open, or -1. Depth counting only; parens inside string literals are
// not recognized.
func matchParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
