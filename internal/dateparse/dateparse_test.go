package dateparse

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseLayouts(t *testing.T) {
	now := date(2024, time.June, 1)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"07/28/1990", date(1990, time.July, 28)},
		{"7/4/2024", date(2024, time.July, 4)},
		{"12-25-2023", date(2023, time.December, 25)},
		{"2024-03-31", date(2024, time.March, 31)},
		{"Jan 2, 2006", date(2006, time.January, 2)},
		{"January 2, 2006", date(2006, time.January, 2)},
		{"15 March 1985", date(1985, time.March, 15)},
		{"  2024-03-31  ", date(2024, time.March, 31)}, // surrounding whitespace
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, time.UTC, now)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestParseRelativeKeywords(t *testing.T) {
	now := time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"today", date(2024, time.June, 15)},
		{"Today", date(2024, time.June, 15)},
		{"TOMORROW", date(2024, time.June, 16)},
		{"yesterday", date(2024, time.June, 14)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in, time.UTC, now)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
		}
	}
}

func TestParseErrors(t *testing.T) {
	now := date(2024, time.June, 1)

	for _, in := range []string{"", "   ", "not a date", "13/45/2024", "soon"} {
		if _, err := Parse(in, time.UTC, now); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", in)
		}
	}
}

func TestParseNormalizesToMidnight(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got, err := Parse("07/28/1990", loc, time.Now())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Hour() != 0 || got.Minute() != 0 || got.Location() != loc {
		t.Errorf("got %s, want midnight in %s", got, loc)
	}
}
