package suggest

import (
	"strings"
	"unicode/utf8"
)

// hasPrefixFold reports whether s begins with prefix under Unicode case
// folding.
func hasPrefixFold(s, prefix string) bool {
	for prefix != "" {
		if s == "" {
			return false
		}
		r1, n1 := utf8.DecodeRuneInString(s)
		r2, n2 := utf8.DecodeRuneInString(prefix)
		if r1 != r2 && !strings.EqualFold(s[:n1], prefix[:n2]) {
			return false
		}
		s, prefix = s[n1:], prefix[n2:]
	}
	return true
}

// matching returns the candidates starting with prefix, in first-seen order,
// without duplicates. The result is never nil.
func matching(candidates []string, prefix string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, c := range candidates {
		if !hasPrefixFold(c, prefix) {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// splitLines splits newline-delimited content into trimmed, non-blank lines.
func splitLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
