// Package dateparse parses the date formats users type into the chat
// front-end: common numeric layouts, month-name layouts, and the
// relative keywords today/tomorrow/yesterday.
package dateparse

import (
	"fmt"
	"strings"
	"time"
)

// layouts are tried in order. Month-day-year layouts come first because
// that is the convention the original data was entered in.
var layouts = []string{
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"2006-01-02",
	"01/02/06",
	"01-02-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// Parse parses a date string, trying each supported layout, then the
// relative keywords. Returned dates are normalized to midnight in loc.
// now supplies the reference point for relative keywords.
func Parse(s string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return midnight(t, loc), nil
		}
	}

	switch strings.ToLower(trimmed) {
	case "today":
		return midnight(now.In(loc), loc), nil
	case "tomorrow":
		return midnight(now.In(loc).AddDate(0, 0, 1), loc), nil
	case "yesterday":
		return midnight(now.In(loc).AddDate(0, 0, -1), loc), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
