package filter

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled visibility pattern. Compilation happens once per
// filter compile; matching reuses the compiled form for every candidate id.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// CompileGlob compiles a glob string into an anchored full-string matcher.
// `*` matches zero or more characters, `?` matches exactly one; everything
// else is literal.
func CompileGlob(glob string) (Pattern, error) {
	var b strings.Builder
	b.WriteString(`^`)
	for _, r := range glob {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return Pattern{}, fmt.Errorf("compile glob %q: %w", glob, err)
	}
	return Pattern{source: glob, re: re}, nil
}

// FromRegexp wraps an already-typed regular expression. The expression is
// re-anchored so matching is always full-string, never substring.
func FromRegexp(re *regexp.Regexp) Pattern {
	expr := re.String()
	if !strings.HasPrefix(expr, "^") {
		expr = "^" + expr
	}
	if !strings.HasSuffix(expr, "$") {
		expr = expr + "$"
	}
	return Pattern{source: re.String(), re: regexp.MustCompile(expr)}
}

// Match reports whether id exactly matches the pattern.
func (p Pattern) Match(id string) bool {
	return p.re.MatchString(id)
}

func (p Pattern) String() string {
	return p.source
}

// matchAny reports whether id matches at least one pattern in the set. An
// empty set never matches.
func matchAny(id string, patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Match(id) {
			return true
		}
	}
	return false
}
