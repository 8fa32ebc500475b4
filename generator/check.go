package generator

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// StripTimestamp drops the banner timestamp so two generations of the same
// input compare equal.
func StripTimestamp(content string) string {
	lines := strings.SplitAfter(content, "\n")
	out := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, timestampPrefix) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "")
}

// Diff returns a unified diff between the existing content of a generated
// file and a fresh generation, ignoring timestamps. It is empty when they
// match.
func Diff(name, existing, generated string) (string, error) {
	a := StripTimestamp(existing)
	b := StripTimestamp(generated)
	if a == b {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: name,
		ToFile:   name + " (generated)",
		Context:  3,
	})
}
