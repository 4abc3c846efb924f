package format

import (
	"regexp"
	"strings"
)

// Pattern is a named regular expression applied to manifest string values.
// Its String form is the slash-delimited pattern used in error messages.
type Pattern struct {
	Name   string
	source string
	re     *regexp.Regexp
}

func newPattern(name, expr string) *Pattern {
	return &Pattern{Name: name, source: expr, re: regexp.MustCompile(expr)}
}

// MatchString reports whether s matches the pattern.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the pattern as /expr/.
func (p *Pattern) String() string {
	return "/" + p.source + "/"
}

var (
	// Package matches package names: a letter, digit, "@" or "/" followed
	// by any of those plus ".", "-" and "_".
	Package = newPattern("package", `^[a-zA-Z0-9@\/][a-zA-Z0-9@\/\.\-_]*$`)

	// Version matches loose semantic versions such as 1.2.3 or 0.5.0-rc.1.
	Version = newPattern("version", `^[0-9]+\.[0-9]+[0-9+a-zA-Z\.\-]+$`)

	// URL matches http and https URLs with a lowercase host prefix.
	URL = newPattern("url", `^https*:\/\/[a-z.\-0-9]+`)

	// Email is deliberately loose: something, an @, something.
	Email = &Pattern{
		Name:   "email",
		source: `\S+@\S+`,
		re:     regexp.MustCompile(`[^` + Space + `]+@[^` + Space + `]+`),
	}
)

// Space is the body of a character class matching the same whitespace as
// \s in JavaScript. RE2's \s only covers ASCII.
const Space = `\t\n\v\f\r\p{Z}\x{FEFF}`

var (
	rangeComparator = regexp.MustCompile(`^[\^<>=~]{0,2}[0-9.x]+`)

	// https://pnpm.io/workspaces#workspace-protocol-workspace
	workspaceRange = regexp.MustCompile(`^workspace:((\^|~)?[0-9.x]*|(<=?|>=?)?[0-9.x][\-.+\w]+|\*)?$`)
)

// IsValidVersionRange reports whether v is an acceptable dependency version
// specifier: a comparator range, a URL, "*", "", "latest", a git reference,
// a pnpm workspace or catalog reference, or an npm alias.
func IsValidVersionRange(v string) bool {
	switch {
	case MatchesRangePattern(v),
		v == "*",
		v == "",
		v == "latest",
		strings.HasPrefix(v, "git"),
		strings.HasPrefix(v, "catalog:"),
		strings.HasPrefix(v, "npm:"):
		return true
	}
	return false
}

// MatchesRangePattern reports whether v matches one of the pattern-based
// range forms: a comparator range, a URL or a workspace reference.
func MatchesRangePattern(v string) bool {
	return rangeComparator.MatchString(v) || URL.MatchString(v) || workspaceRange.MatchString(v)
}
