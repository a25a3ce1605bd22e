package checks

import (
	"testing"
	"time"
)

func TestConvertLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"HHmm", "1504"},
		{"HHmmss", "150405"},
		{"HH:mm", "15:04"},
		{"HH:mm:ss", "15:04:05"},
		{"H:mm", "15:04"},
		{"hh:mm tt", "03:04 PM"},
		{"yyyy-MM-dd", "2006-01-02"},
		{"dd.MM.yyyy", "02.01.2006"},
		{"d/M/yy", "2/1/06"},
		{"dddd, MMMM d", "Monday, January 2"},
		{"ddd MMM", "Mon Jan"},
		{"HH:mm:ss.fff", "15:04:05.000"},
		{"yyyy-MM-ddTHH:mm:ssK", "2006-01-02T15:04:05Z07:00"},
		{"HH'h'mm", "15h04"},
		{`HH\hmm`, "15h04"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := ConvertLayout(tt.pattern); got != tt.want {
				t.Errorf("ConvertLayout(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestConvertLayoutsDropsBlanks(t *testing.T) {
	got := ConvertLayouts([]string{"HH:mm", " ", ""})
	if len(got) != 1 || got[0] != "15:04" {
		t.Errorf("ConvertLayouts = %v, want [15:04]", got)
	}
}

func TestParseTimeDefaults(t *testing.T) {
	tests := []struct {
		value string
		want  time.Time
	}{
		{"11/7/2018", time.Date(2018, 11, 7, 0, 0, 0, 0, time.UTC)},
		{"2018-07-09", time.Date(2018, 7, 9, 0, 0, 0, 0, time.UTC)},
		{"2018-07-09T10:30:00", time.Date(2018, 7, 9, 10, 30, 0, 0, time.UTC)},
		{"2018-07-09T10:30:00Z", time.Date(2018, 7, 9, 10, 30, 0, 0, time.UTC)},
		{"11/7/2018 3:15 PM", time.Date(2018, 11, 7, 15, 15, 0, 0, time.UTC)},
		{" 9/7/2018 ", time.Date(2018, 9, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, ok := parseTime(tt.value, defaultLayouts)
			if !ok {
				t.Fatalf("parseTime(%q) failed", tt.value)
			}
			if !got.Equal(tt.want) {
				t.Errorf("parseTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "   ", "tomorrow", "13/45/2018"} {
		if _, ok := parseTime(bad, defaultLayouts); ok {
			t.Errorf("parseTime(%q) succeeded, want failure", bad)
		}
	}
}

func TestParseTimeFirstMatchingFormatWins(t *testing.T) {
	layouts := ConvertLayouts([]string{"HHmm", "HH:mm"})
	a, ok := parseTime("1300", layouts)
	if !ok {
		t.Fatal("1300 did not parse")
	}
	b, ok := parseTime("13:00", layouts)
	if !ok {
		t.Fatal("13:00 did not parse")
	}
	if !a.Equal(b) {
		t.Errorf("1300 and 13:00 parsed to %v and %v, want equal", a, b)
	}
}
