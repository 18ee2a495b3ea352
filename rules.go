package csfix

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// RenameRule is a literal regex substitution applied to the whole document.
// Replacement may reference capture groups as $1, $2, ...
type RenameRule struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// AppendRule inserts Suffix between the two capture groups of Pattern. A
// match already containing Marker is left alone, which is what makes the rule
// safe to run twice. Requires, when set, must appear in the first group for
// the rule to fire at all.
type AppendRule struct {
	Pattern  string `yaml:"pattern"`
	Suffix   string `yaml:"suffix"`
	Marker   string `yaml:"marker"`
	Requires string `yaml:"requires,omitempty"`
}

// RuleFile is the on-disk shape of a rule table.
type RuleFile struct {
	Renames []RenameRule `yaml:"renames"`
	Appends []AppendRule `yaml:"appends"`
}

// DefaultRules returns the built-in table: the property renames and the
// ConfigureAwait / StringComparison call-site annotations.
func DefaultRules() RuleFile {
	return RuleFile{
		Renames: []RenameRule{
			{Pattern: `\.Email\b`, Replacement: `.email`},
			{Pattern: `\.TenantId\b`, Replacement: `.OrganizationId`},
			{Pattern: `\.PayloadJson\b`, Replacement: `.NewValues`},
		},
		Appends: []AppendRule{
			{
				Pattern: `(await\s+[^;]+?\))(\s*;)`,
				Suffix:  `.ConfigureAwait(false)`,
				Marker:  `.ConfigureAwait`,
			},
			{
				Pattern:  `(Assert\.Equal\([^,]+,\s*[^,)]+)(\))`,
				Suffix:   `, StringComparison.Ordinal`,
				Marker:   `StringComparison`,
				Requires: `"`,
			},
		},
	}
}

// LoadRules reads a YAML rule file, replacing the built-in table entirely.
func LoadRules(path string) (RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleFile{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return RuleFile{}, fmt.Errorf("failed to unmarshal rules file %s: %w", path, err)
	}
	return f, nil
}

type compiledRename struct {
	re          *regexp.Regexp
	replacement string
}

type compiledAppend struct {
	re       *regexp.Regexp
	suffix   string
	marker   string
	requires string
}

// CompiledRules is a RuleFile with its patterns compiled, ready for the
// rename pass.
type CompiledRules struct {
	renames []compiledRename
	appends []compiledAppend
}

// Compile validates and compiles every rule; the first bad rule fails the
// whole table.
func (f RuleFile) Compile() (*CompiledRules, error) {
	c := &CompiledRules{}
	for i, r := range f.Renames {
		if r.Pattern == "" {
			return nil, fmt.Errorf("rename rule %d: empty pattern", i+1)
		}
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rename rule %d: %w", i+1, err)
		}
		c.renames = append(c.renames, compiledRename{re: re, replacement: r.Replacement})
	}
	for i, a := range f.Appends {
		if a.Pattern == "" {
			return nil, fmt.Errorf("append rule %d: empty pattern", i+1)
		}
		if a.Marker == "" {
			return nil, fmt.Errorf("append rule %d: marker is required", i+1)
		}
		re, err := regexp.Compile(a.Pattern)
		if err != nil {
			return nil, fmt.Errorf("append rule %d: %w", i+1, err)
		}
		if re.NumSubexp() != 2 {
			return nil, fmt.Errorf("append rule %d: pattern must capture exactly a head and a tail group", i+1)
		}
		c.appends = append(c.appends, compiledAppend{
			re:       re,
			suffix:   a.Suffix,
			marker:   a.Marker,
			requires: a.Requires,
		})
	}
	return c, nil
}
