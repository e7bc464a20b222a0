// Package match implements the pattern matcher shared by the search and
// replace pipelines.
//
// Two dialects are supported: literal substring (the default) and regular
// expressions. Case-insensitivity is an orthogonal modifier applying to
// either dialect. Matchers are pure: the same (text, pattern, flags) tuple
// always yields the same result, which is what makes dry-run output
// reproducible.
package match

import (
	"regexp"
	"strings"

	"github.com/X-Seti/Deepsearch/pkg/errors"
)

// Matcher tests text against a pattern and substitutes replacements
type Matcher struct {
	pattern    string
	isRegex    bool
	ignoreCase bool

	// folded is the case-folded pattern for literal case-insensitive matching
	folded string

	// re is the compiled expression; in literal case-insensitive mode it is a
	// quoted form used only for substitution
	re *regexp.Regexp
}

// New compiles a matcher. Regex patterns that fail to compile are reported
// as pattern errors.
func New(pattern string, isRegex, ignoreCase bool) (*Matcher, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrPatternInvalid, "empty pattern")
	}

	m := &Matcher{
		pattern:    pattern,
		isRegex:    isRegex,
		ignoreCase: ignoreCase,
	}

	switch {
	case isRegex:
		expr := pattern
		if ignoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid regular expression %q", pattern)
		}
		m.re = re
	case ignoreCase:
		m.folded = strings.ToLower(pattern)
		// Substitution needs a matcher that can find fold-equal occurrences;
		// the quoted form keeps literal semantics.
		m.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))
	}

	return m, nil
}

// Pattern returns the pattern the matcher was built from
func (m *Matcher) Pattern() string {
	return m.pattern
}

// IsRegex reports whether the matcher uses the regex dialect
func (m *Matcher) IsRegex() bool {
	return m.isRegex
}

// MatchString reports whether s matches the pattern
func (m *Matcher) MatchString(s string) bool {
	switch {
	case m.isRegex:
		return m.re.MatchString(s)
	case m.ignoreCase:
		return strings.Contains(strings.ToLower(s), m.folded)
	default:
		return strings.Contains(s, m.pattern)
	}
}

// Replace substitutes every non-overlapping occurrence of the pattern in s.
// Literal mode inserts the replacement verbatim. Regex mode expands group
// references in the replacement ($1, ${name}).
func (m *Matcher) Replace(s, replacement string) string {
	switch {
	case m.isRegex:
		return m.re.ReplaceAllString(s, replacement)
	case m.ignoreCase:
		return m.re.ReplaceAllLiteralString(s, replacement)
	default:
		return strings.ReplaceAll(s, m.pattern, replacement)
	}
}
