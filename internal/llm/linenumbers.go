package llm

import (
	"fmt"
	"regexp"
	"strings"
)

var numberedLine = regexp.MustCompile(`^\s*\d+\s*[|:]`)

// NumberLines prefixes each line of code with its 1-based number as
// "<n> | ". A trailing newline does not produce an extra numbered line.
func NumberLines(code string) string {
	lines := strings.Split(strings.TrimSuffix(code, "\n"), "\n")

	var b strings.Builder
	b.Grow(len(code) + len(lines)*6)
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d | %s", i+1, line)
	}
	return b.String()
}

// HasLineNumbers reports whether every non-blank line of code already starts
// with a line number.
func HasLineNumbers(code string) bool {
	seen := false
	for _, line := range strings.Split(code, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !numberedLine.MatchString(line) {
			return false
		}
		seen = true
	}
	return seen
}
