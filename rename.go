package csfix

import "strings"

// renamePass applies the rule table across the whole document at once, so a
// pattern may legitimately span lines (the await annotation does). Rules
// rewrite within their matched span and never add or remove newlines.
func renamePass(rules *CompiledRules) Pass {
	return Pass{Name: PassRename, Apply: func(lines []string) []string {
		if rules == nil {
			return lines
		}
		text := rules.Apply(strings.Join(lines, "\n"))
		return strings.Split(text, "\n")
	}}
}

// Apply runs every rename, then every append, in table order.
func (c *CompiledRules) Apply(text string) string {
	for _, r := range c.renames {
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	for _, a := range c.appends {
		text = a.apply(text)
	}
	return text
}

func (a compiledAppend) apply(text string) string {
	return a.re.ReplaceAllStringFunc(text, func(m string) string {
		if strings.Contains(m, a.marker) {
			return m
		}
		sub := a.re.FindStringSubmatch(m)
		if sub == nil {
			return m
		}
		if a.requires != "" && !strings.Contains(sub[1], a.requires) {
			return m
		}
		return sub[1] + a.suffix + sub[2]
	})
}
