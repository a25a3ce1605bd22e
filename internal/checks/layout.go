package checks

import (
	"strings"
	"time"
)

// defaultLayouts are tried in order when a check has no specific formats.
// They cover the invariant-culture date and time notations.
var defaultLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// ConvertLayout converts a custom date/time pattern such as "dd.MM.yyyy" or
// "HH:mm:ss" to a Go reference layout. Quoted text and backslash-escaped
// characters are copied literally.
func ConvertLayout(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch c {
		case '\'', '"':
			j := i + 1
			for j < len(runes) && runes[j] != c {
				b.WriteRune(runes[j])
				j++
			}
			i = j + 1
			continue
		case '\\':
			if i+1 < len(runes) {
				b.WriteRune(runes[i+1])
			}
			i += 2
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}
		if token, ok := layoutToken(c, n); ok {
			b.WriteString(token)
		} else {
			for k := 0; k < n; k++ {
				b.WriteRune(c)
			}
		}
		i += n
	}
	return b.String()
}

// layoutToken maps a run of n pattern letters c to its Go layout element.
func layoutToken(c rune, n int) (string, bool) {
	switch c {
	case 'y':
		if n <= 2 {
			return "06", true
		}
		return "2006", true
	case 'M':
		switch n {
		case 1:
			return "1", true
		case 2:
			return "01", true
		case 3:
			return "Jan", true
		default:
			return "January", true
		}
	case 'd':
		switch n {
		case 1:
			return "2", true
		case 2:
			return "02", true
		case 3:
			return "Mon", true
		default:
			return "Monday", true
		}
	case 'H':
		return "15", true
	case 'h':
		if n == 1 {
			return "3", true
		}
		return "03", true
	case 'm':
		if n == 1 {
			return "4", true
		}
		return "04", true
	case 's':
		if n == 1 {
			return "5", true
		}
		return "05", true
	case 'f':
		return strings.Repeat("0", n), true
	case 'F':
		return strings.Repeat("9", n), true
	case 't':
		return "PM", true
	case 'z':
		if n <= 2 {
			return "-07", true
		}
		return "-07:00", true
	case 'K':
		return "Z07:00", true
	}
	return "", false
}

// ConvertLayouts converts every pattern with ConvertLayout, dropping blanks.
func ConvertLayouts(patterns []string) []string {
	layouts := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			layouts = append(layouts, ConvertLayout(p))
		}
	}
	return layouts
}

// parseTime parses value with the first matching layout.
func parseTime(value string, layouts []string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
