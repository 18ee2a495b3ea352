package csfix

import "strings"

var accessModifiers = []string{"public ", "private ", "protected ", "internal "}

// blankPass separates declarations with single blank lines: one after a lone
// closing brace (unless the next line closes another block, opens a
// namespace, or is a comment) and one before an access-modifier declaration.
// Both rules require a non-blank neighbor, so the pass never stacks blanks.
func blankPass() Pass {
	return Pass{Name: PassBlank, Apply: insertBlankSeparators}
}

func insertBlankSeparators(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		out = append(out, line)
		if i+1 >= len(lines) {
			continue
		}

		cur := strings.TrimSpace(line)
		next := strings.TrimSpace(lines[i+1])

		switch {
		case cur == "}" && next != "" && !strings.HasPrefix(next, "}") &&
			!strings.HasPrefix(next, "namespace") && !strings.HasPrefix(next, "//"):
			out = append(out, "")
		case startsWithAccessModifier(next) && cur != "" && cur != "{" && !strings.HasPrefix(cur, "//"):
			out = append(out, "")
		}
	}
	return out
}

func startsWithAccessModifier(s string) bool {
	for _, m := range accessModifiers {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}
