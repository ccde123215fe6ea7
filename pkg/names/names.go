// Package names checks and cleans free-text labels (scenario and test case
// names) so they can be used as script names and file names.
//
// A name is flagged when, after trimming, it contains a run of two or more
// underscores or any character outside [A-Za-z0-9_]. Whitespace is therefore
// always flagged.
package names

import (
	"regexp"
	"strings"
)

var (
	risky       = regexp.MustCompile(`_{2,}|[^A-Za-z0-9_]`)
	disallowed  = regexp.MustCompile(`[^A-Za-z0-9_]+`)
	underscores = regexp.MustCompile(`_+`)
)

// Result pairs a raw value with its cleaned form.
type Result struct {
	Value      string `json:"value"`
	Normalized string `json:"normalized"`
	Warning    bool   `json:"warning"`
}

// HasWarning reports whether the trimmed value is risky to use as a script
// name. Blank input is not flagged.
func HasWarning(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	return risky.MatchString(trimmed)
}

// Normalize trims value, replaces each run of disallowed characters with a
// single underscore, collapses repeated underscores and strips leading and
// trailing underscores. Normalize(Normalize(x)) == Normalize(x).
func Normalize(value string) string {
	out := strings.TrimSpace(value)
	out = disallowed.ReplaceAllString(out, "_")
	out = underscores.ReplaceAllString(out, "_")
	return strings.Trim(out, "_")
}

// Check evaluates value against both rules.
func Check(value string) Result {
	return Result{
		Value:      value,
		Normalized: Normalize(value),
		Warning:    HasWarning(value),
	}
}
