// Package holiday provides the holiday catalog and date calculations.
package holiday

import (
	"time"
)

// CalculateEaster calculates the date of Easter Sunday for a given year
// using the Meeus/Jones/Butcher algorithm for the Gregorian calendar.
//
// The algorithm is pure integer arithmetic and is valid for all years
// in the Gregorian calendar.
func CalculateEaster(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// CalculateAshWednesday calculates Ash Wednesday for a given year.
// Ash Wednesday is 46 days before Easter (40 days of Lent + 6 Sundays).
func CalculateAshWednesday(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, -46)
}

// CalculatePalmSunday calculates Palm Sunday, one week before Easter.
func CalculatePalmSunday(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, -7)
}

// CalculateGoodFriday calculates Good Friday, two days before Easter.
func CalculateGoodFriday(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, -2)
}

// CalculatePentecost calculates Pentecost Sunday for a given year.
// Pentecost is 49 days after Easter (7 weeks).
func CalculatePentecost(year int) time.Time {
	return CalculateEaster(year).AddDate(0, 0, 49)
}
