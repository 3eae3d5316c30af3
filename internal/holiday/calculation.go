package holiday

import (
	"time"
)

// Calculation identifies a movable-date algorithm. The set is closed:
// every value maps to a pure function in calculations below. Catalog
// entries referencing an unknown calculation are skipped at resolution
// time, never rejected.
type Calculation string

// Christian movable feasts (offsets from Easter).
const (
	CalcEaster       Calculation = "easter"
	CalcGoodFriday   Calculation = "good_friday"
	CalcPalmSunday   Calculation = "palm_sunday"
	CalcAshWednesday Calculation = "ash_wednesday"
	CalcPentecost    Calculation = "pentecost"
)

// Jewish holidays (approximate).
const (
	CalcRoshHashanah Calculation = "rosh_hashanah"
	CalcYomKippur    Calculation = "yom_kippur"
	CalcPassover     Calculation = "passover"
	CalcSukkot       Calculation = "sukkot"
	CalcShavuot      Calculation = "shavuot"
	CalcHanukkah     Calculation = "hanukkah"
	CalcPurim        Calculation = "purim"
	CalcTuBiShvat    Calculation = "tu_bishvat"
	CalcLagBaOmer    Calculation = "lag_baomer"
)

// Muslim holidays (approximate).
const (
	CalcEidAlFitr    Calculation = "eid_al_fitr"
	CalcEidAlAdha    Calculation = "eid_al_adha"
	CalcMawlid       Calculation = "mawlid"
	CalcLaylatAlQadr Calculation = "laylat_al_qadr"
	CalcAshura       Calculation = "ashura"
)

// Hindu and Buddhist holidays (approximate).
const (
	CalcDiwali             Calculation = "diwali"
	CalcHoli               Calculation = "holi"
	CalcNavratri           Calculation = "navratri"
	CalcDussehra           Calculation = "dussehra"
	CalcKrishnaJanmashtami Calculation = "krishna_janmashtami"
	CalcBuddhaBirthday     Calculation = "buddha_birthday"
	CalcVesak              Calculation = "vesak"
)

// United States federal holiday weekday rules.
const (
	CalcThirdMondayJanuary     Calculation = "third_monday_january"
	CalcThirdMondayFebruary    Calculation = "third_monday_february"
	CalcLastMondayMay          Calculation = "last_monday_may"
	CalcFirstMondaySeptember   Calculation = "first_monday_september"
	CalcSecondMondayOctober    Calculation = "second_monday_october"
	CalcFourthThursdayNovember Calculation = "fourth_thursday_november"
	CalcDayAfterThanksgiving   Calculation = "day_after_thanksgiving"
)

// calculations maps every known Calculation to its date function.
// All functions are pure: same year in, same date out, no I/O.
var calculations = map[Calculation]func(year int) time.Time{
	CalcEaster:       CalculateEaster,
	CalcGoodFriday:   CalculateGoodFriday,
	CalcPalmSunday:   CalculatePalmSunday,
	CalcAshWednesday: CalculateAshWednesday,
	CalcPentecost:    CalculatePentecost,

	CalcRoshHashanah: CalculateRoshHashanah,
	CalcYomKippur:    CalculateYomKippur,
	CalcPassover:     CalculatePassover,
	CalcSukkot:       CalculateSukkot,
	CalcShavuot:      CalculateShavuot,
	CalcHanukkah:     func(year int) time.Time { return approxDate(CalcHanukkah, year) },
	CalcPurim:        func(year int) time.Time { return approxDate(CalcPurim, year) },
	CalcTuBiShvat:    func(year int) time.Time { return approxDate(CalcTuBiShvat, year) },
	CalcLagBaOmer:    CalculateLagBaOmer,

	CalcEidAlFitr:    func(year int) time.Time { return approxDate(CalcEidAlFitr, year) },
	CalcEidAlAdha:    func(year int) time.Time { return approxDate(CalcEidAlAdha, year) },
	CalcMawlid:       func(year int) time.Time { return approxDate(CalcMawlid, year) },
	CalcLaylatAlQadr: func(year int) time.Time { return approxDate(CalcLaylatAlQadr, year) },
	CalcAshura:       func(year int) time.Time { return approxDate(CalcAshura, year) },

	CalcDiwali:             func(year int) time.Time { return approxDate(CalcDiwali, year) },
	CalcHoli:               func(year int) time.Time { return approxDate(CalcHoli, year) },
	CalcNavratri:           func(year int) time.Time { return approxDate(CalcNavratri, year) },
	CalcDussehra:           func(year int) time.Time { return approxDate(CalcDussehra, year) },
	CalcKrishnaJanmashtami: func(year int) time.Time { return approxDate(CalcKrishnaJanmashtami, year) },
	CalcBuddhaBirthday:     func(year int) time.Time { return approxDate(CalcBuddhaBirthday, year) },
	CalcVesak:              func(year int) time.Time { return approxDate(CalcVesak, year) },

	CalcThirdMondayJanuary: func(year int) time.Time {
		return NthWeekday(year, time.January, time.Monday, 3)
	},
	CalcThirdMondayFebruary: func(year int) time.Time {
		return NthWeekday(year, time.February, time.Monday, 3)
	},
	CalcLastMondayMay: func(year int) time.Time {
		return LastWeekday(year, time.May, time.Monday)
	},
	CalcFirstMondaySeptember: func(year int) time.Time {
		return NthWeekday(year, time.September, time.Monday, 1)
	},
	CalcSecondMondayOctober: func(year int) time.Time {
		return NthWeekday(year, time.October, time.Monday, 2)
	},
	CalcFourthThursdayNovember: CalculateThanksgiving,
	CalcDayAfterThanksgiving:   CalculateDayAfterThanksgiving,
}

// ResolveCalculation returns the date of a calculated holiday for the
// given year. The second return value is false when the calculation key
// is unknown; the caller is expected to skip the holiday, not fail.
func ResolveCalculation(calc Calculation, year int) (time.Time, bool) {
	fn, ok := calculations[calc]
	if !ok {
		return time.Time{}, false
	}
	return fn(year), true
}

// KnownCalculation reports whether calc maps to a date function.
func KnownCalculation(calc Calculation) bool {
	_, ok := calculations[calc]
	return ok
}
