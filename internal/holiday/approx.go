package holiday

import (
	"time"
)

// Jewish, Muslim, Hindu, and Buddhist observances follow lunar or
// lunisolar calendars. This file deliberately does NOT implement those
// calendars: each holiday is approximated by a fixed month/day anchor,
// or by a fixed offset from another approximated holiday. The dates are
// approximate and not astronomically accurate.
//
// The anchors are isolated here so that a real lunar-calendar
// implementation can replace them without touching the catalog or
// resolver contracts.

// approxAnchor is a year-independent month/day approximation.
type approxAnchor struct {
	Month time.Month
	Day   int
}

var approxAnchors = map[Calculation]approxAnchor{
	CalcRoshHashanah:       {time.September, 15},
	CalcPassover:           {time.March, 15},
	CalcHanukkah:           {time.December, 15},
	CalcPurim:              {time.March, 10},
	CalcTuBiShvat:          {time.January, 15},
	CalcEidAlFitr:          {time.May, 15},
	CalcEidAlAdha:          {time.July, 15},
	CalcMawlid:             {time.October, 15},
	CalcLaylatAlQadr:       {time.April, 15},
	CalcAshura:             {time.August, 15},
	CalcDiwali:             {time.October, 15},
	CalcHoli:               {time.March, 15},
	CalcNavratri:           {time.September, 15},
	CalcDussehra:           {time.October, 15},
	CalcKrishnaJanmashtami: {time.August, 15},
	CalcBuddhaBirthday:     {time.May, 15},
	CalcVesak:              {time.May, 15},
}

func approxDate(calc Calculation, year int) time.Time {
	a := approxAnchors[calc]
	return time.Date(year, a.Month, a.Day, 0, 0, 0, 0, time.UTC)
}

// CalculateRoshHashanah approximates Rosh Hashanah (mid September).
func CalculateRoshHashanah(year int) time.Time {
	return approxDate(CalcRoshHashanah, year)
}

// CalculateYomKippur approximates Yom Kippur, 10 days after Rosh
// Hashanah. The offset chains off an approximated anchor, so the error
// compounds.
func CalculateYomKippur(year int) time.Time {
	return CalculateRoshHashanah(year).AddDate(0, 0, 10)
}

// CalculateSukkot approximates Sukkot, 15 days after Yom Kippur.
func CalculateSukkot(year int) time.Time {
	return CalculateYomKippur(year).AddDate(0, 0, 15)
}

// CalculatePassover approximates Passover (mid March).
func CalculatePassover(year int) time.Time {
	return approxDate(CalcPassover, year)
}

// CalculateShavuot approximates Shavuot, 50 days after Passover.
func CalculateShavuot(year int) time.Time {
	return CalculatePassover(year).AddDate(0, 0, 50)
}

// CalculateLagBaOmer approximates Lag BaOmer, 33 days after Passover.
func CalculateLagBaOmer(year int) time.Time {
	return CalculatePassover(year).AddDate(0, 0, 33)
}
