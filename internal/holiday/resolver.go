package holiday

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// Gregorian calendar bounds for resolution. The computus algorithm is
// defined for Gregorian years only; anything outside is rejected.
const (
	MinYear = 1583
	MaxYear = 9999
)

// ErrYearOutOfRange is returned for years outside [MinYear, MaxYear].
var ErrYearOutOfRange = errors.New("year outside supported Gregorian range")

// Resolved is a holiday bound to a concrete calendar date for one year.
// Resolved values are ephemeral: created on demand, never persisted or
// cached (recomputation is cheap and idempotent).
type Resolved struct {
	Definition Definition `json:"definition"`
	Year       int        `json:"year"`
	Date       time.Time  `json:"date"`
}

// Resolver turns catalog definitions into dated holidays. All methods
// are pure and safe for concurrent use: the catalog is immutable and no
// state is shared between calls.
type Resolver struct {
	catalog *Catalog
	loc     *time.Location
	logger  *slog.Logger
}

// NewResolver creates a resolver. Dates are normalized to midnight in
// loc; a nil loc defaults to UTC.
func NewResolver(catalog *Catalog, loc *time.Location, logger *slog.Logger) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{catalog: catalog, loc: loc, logger: logger}
}

// Location returns the timezone holidays are resolved in.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// ResolveYear resolves every catalog entry for the given year, sorted
// ascending by date. Entries with unknown calculations are skipped;
// one bad catalog entry never blocks the rest.
func (r *Resolver) ResolveYear(year int) ([]Resolved, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	return r.resolveDefs(r.catalog.All(), year), nil
}

// ResolveCategory resolves one category's entries for the given year,
// sorted ascending by date.
func (r *Resolver) ResolveCategory(category Category, year int) ([]Resolved, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	return r.resolveDefs(r.catalog.ByCategory(category), year), nil
}

// ForReligion resolves the holidays relevant to a contact's religion.
// Religions map directly onto catalog categories; "none", "other", or
// any unknown value yields an empty list, never an error.
func (r *Resolver) ForReligion(religion string, year int) ([]Resolved, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	category := Category(religion)
	switch category {
	case CategoryChristian, CategoryJewish, CategoryMuslim, CategoryHindu, CategoryBuddhist:
		return r.resolveDefs(r.catalog.ByCategory(category), year), nil
	default:
		return nil, nil
	}
}

// ForNationality resolves the holidays relevant to a contact's
// nationality. American maps to the whole "american" category;
// Peruvian and Dominican map to specific keys within "national",
// because that one category multiplexes several nationalities.
// Unknown values yield an empty list.
func (r *Resolver) ForNationality(nationality string, year int) ([]Resolved, error) {
	if err := checkYear(year); err != nil {
		return nil, err
	}
	switch nationality {
	case "american":
		return r.resolveDefs(r.catalog.ByCategory(CategoryAmerican), year), nil
	case "peruvian":
		return r.resolveNationalKey("peruvian_independence", year), nil
	case "dominican":
		return r.resolveNationalKey("dominican_independence", year), nil
	default:
		return nil, nil
	}
}

// Upcoming resolves all holidays falling within [from, from+windowDays],
// inclusive of both endpoints. Both from's year and the following year
// are resolved so windows spanning a year boundary are not cut short.
func (r *Resolver) Upcoming(windowDays int, from time.Time) []Resolved {
	start := r.midnight(from)
	end := start.AddDate(0, 0, windowDays)

	var all []Resolved
	for _, year := range []int{start.Year(), start.Year() + 1} {
		resolved, err := r.ResolveYear(year)
		if err != nil {
			// Only reachable with a clock far outside the Gregorian
			// range; nothing sensible to resolve.
			r.logger.Warn("skipping holiday year", slog.Int("year", year), slog.Any("error", err))
			continue
		}
		all = append(all, resolved...)
	}

	filtered := all[:0]
	for _, h := range all {
		if !h.Date.Before(start) && !h.Date.After(end) {
			filtered = append(filtered, h)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})
	return filtered
}

// IsHoliday reports whether date is a holiday for the given religion
// and/or nationality, comparing by calendar day. Returns the first
// matching holiday, or nil. A religion or nationality of "none" (or any
// unknown value) contributes no candidates.
func (r *Resolver) IsHoliday(date time.Time, religion, nationality string) *Resolved {
	date = r.midnight(date)
	year := date.Year()
	if checkYear(year) != nil {
		return nil
	}

	var candidates []Resolved
	if byReligion, err := r.ForReligion(religion, year); err == nil {
		candidates = append(candidates, byReligion...)
	}
	if byNationality, err := r.ForNationality(nationality, year); err == nil {
		candidates = append(candidates, byNationality...)
	}

	for i := range candidates {
		if sameDay(candidates[i].Date, date) {
			return &candidates[i]
		}
	}
	return nil
}

// resolveDefs resolves a definition list for one year, dropping entries
// that cannot be resolved, sorted ascending by date. Ties keep catalog
// order (stable sort).
func (r *Resolver) resolveDefs(defs []Definition, year int) []Resolved {
	resolved := make([]Resolved, 0, len(defs))
	for _, def := range defs {
		h, ok := r.resolve(def, year)
		if !ok {
			continue
		}
		resolved = append(resolved, h)
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Date.Before(resolved[j].Date)
	})
	return resolved
}

// resolve binds one definition to a date. The false return absorbs
// unknown calculation keys so they surface as a missing holiday, not an
// error, at the resolver boundary.
func (r *Resolver) resolve(def Definition, year int) (Resolved, bool) {
	var date time.Time
	switch def.Type {
	case TypeFixed:
		date = time.Date(year, def.Month, def.Day, 0, 0, 0, 0, r.loc)
	case TypeCalculated:
		raw, ok := ResolveCalculation(def.Calculation, year)
		if !ok {
			r.logger.Debug("unknown holiday calculation, skipping",
				slog.String("category", string(def.Category)),
				slog.String("key", def.Key),
				slog.String("calculation", string(def.Calculation)),
			)
			return Resolved{}, false
		}
		date = time.Date(raw.Year(), raw.Month(), raw.Day(), 0, 0, 0, 0, r.loc)
	default:
		return Resolved{}, false
	}

	return Resolved{Definition: def, Year: year, Date: date}, true
}

func (r *Resolver) resolveNationalKey(key string, year int) []Resolved {
	for _, def := range r.catalog.ByCategory(CategoryNational) {
		if def.Key != key {
			continue
		}
		if h, ok := r.resolve(def, year); ok {
			return []Resolved{h}
		}
	}
	return nil
}

// midnight truncates a time to local midnight in the resolver location.
func (r *Resolver) midnight(t time.Time) time.Time {
	t = t.In(r.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, r.loc)
}

func checkYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: %d", ErrYearOutOfRange, year)
	}
	return nil
}

// sameDay compares two times by calendar day, ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
