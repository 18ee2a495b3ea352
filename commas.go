package csfix

import "strings"

// commaPass appends the trailing comma to the last element of a multi-line
// initializer or argument list. The window is exactly two lines: a line that
// ends an element, followed by a line opening with } or ). A line already
// terminated by , { ( [ or ; never takes one; a ;-terminated statement before
// a closing brace is a block end, not a list element.
func commaPass() Pass {
	return Pass{Name: PassComma, Apply: insertTrailingCommas}
}

func insertTrailingCommas(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line
		if i+1 >= len(lines) {
			continue
		}

		cur := strings.TrimRight(line, " \t")
		if cur == "" {
			continue
		}
		switch cur[len(cur)-1] {
		case ',', '{', '(', '[', ';':
			continue
		}

		next := strings.TrimLeft(lines[i+1], " \t")
		if strings.HasPrefix(next, "}") || strings.HasPrefix(next, ")") {
			out[i] = cur + ","
		}
	}
	return out
}
