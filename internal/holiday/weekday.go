package holiday

import (
	"time"
)

// NthWeekday returns the nth occurrence of a weekday in the given month.
// n is 1-based: NthWeekday(2024, time.January, time.Monday, 3) is the
// third Monday of January 2024.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// LastWeekday returns the last occurrence of a weekday in the given month.
func LastWeekday(year int, month time.Month, weekday time.Weekday) time.Time {
	// Day 0 of the next month is the last day of this month.
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(weekday) + 7) % 7
	return last.AddDate(0, 0, -offset)
}

// CalculateThanksgiving returns the fourth Thursday of November.
func CalculateThanksgiving(year int) time.Time {
	return NthWeekday(year, time.November, time.Thursday, 4)
}

// CalculateDayAfterThanksgiving returns the day after Thanksgiving.
func CalculateDayAfterThanksgiving(year int) time.Time {
	return CalculateThanksgiving(year).AddDate(0, 0, 1)
}
