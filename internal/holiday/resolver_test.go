package holiday

import (
	"errors"
	"testing"
	"time"
)

// testCatalog builds a small two-entry catalog: one movable feast and
// one fixed date.
func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	yaml := `
christian:
  easter:
    name: Easter
    type: calculated
    calculation: easter
american:
  independence_day:
    name: Independence Day
    type: fixed
    date: "07-04"
`
	catalog, err := ParseCatalog([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	return catalog
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolveYear(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	resolved, err := r.ResolveYear(2024)
	if err != nil {
		t.Fatalf("ResolveYear: %v", err)
	}
	if len(resolved) != 2 {
		t.Fatalf("got %d holidays, want 2", len(resolved))
	}

	// Sorted ascending by date: Easter (Mar 31) before July 4th.
	if !resolved[0].Date.Equal(date(2024, time.March, 31)) {
		t.Errorf("first = %s, want 2024-03-31", resolved[0].Date.Format("2006-01-02"))
	}
	if !resolved[1].Date.Equal(date(2024, time.July, 4)) {
		t.Errorf("second = %s, want 2024-07-04", resolved[1].Date.Format("2006-01-02"))
	}
}

func TestResolveYearOutOfRange(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	for _, year := range []int{1582, 10000, 0, -5} {
		if _, err := r.ResolveYear(year); !errors.Is(err, ErrYearOutOfRange) {
			t.Errorf("ResolveYear(%d) err = %v, want ErrYearOutOfRange", year, err)
		}
	}

	for _, year := range []int{MinYear, MaxYear, 2024} {
		if _, err := r.ResolveYear(year); err != nil {
			t.Errorf("ResolveYear(%d) err = %v, want nil", year, err)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	resolved, err := r.ResolveCategory(CategoryChristian, 2024)
	if err != nil {
		t.Fatalf("ResolveCategory: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Definition.Key != "easter" {
		t.Fatalf("got %+v, want just easter", resolved)
	}

	empty, err := r.ResolveCategory(CategoryJewish, 2024)
	if err != nil {
		t.Fatalf("ResolveCategory: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty category resolved %d holidays", len(empty))
	}
}

func TestUnknownCalculationSkipped(t *testing.T) {
	yaml := `
christian:
  easter:
    name: Easter
    type: calculated
    calculation: easter
  mystery_feast:
    name: Mystery Feast
    type: calculated
    calculation: alignment_of_planets
`
	catalog, err := ParseCatalog([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	r := NewResolver(catalog, time.UTC, nil)
	resolved, err := r.ResolveYear(2024)
	if err != nil {
		t.Fatalf("ResolveYear: %v", err)
	}

	// The unknown calculation drops out; the rest still resolves.
	if len(resolved) != 1 || resolved[0].Definition.Key != "easter" {
		t.Fatalf("got %+v, want just easter", resolved)
	}
}

func TestUpcomingSpansYearBoundary(t *testing.T) {
	yaml := `
american:
  new_years_day:
    name: New Year's Day
    type: fixed
    date: "01-01"
  independence_day:
    name: Independence Day
    type: fixed
    date: "07-04"
`
	catalog, err := ParseCatalog([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	r := NewResolver(catalog, time.UTC, nil)
	upcoming := r.Upcoming(30, date(2024, time.December, 20))

	if len(upcoming) != 1 {
		t.Fatalf("got %d holidays, want 1: %+v", len(upcoming), upcoming)
	}
	if !upcoming[0].Date.Equal(date(2025, time.January, 1)) {
		t.Errorf("got %s, want 2025-01-01", upcoming[0].Date.Format("2006-01-02"))
	}
	if upcoming[0].Year != 2025 {
		t.Errorf("got year %d, want 2025", upcoming[0].Year)
	}
}

func TestUpcomingWindowInclusive(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	// Window endpoint lands exactly on July 4th.
	upcoming := r.Upcoming(3, date(2024, time.July, 1))
	if len(upcoming) != 1 {
		t.Fatalf("endpoint not inclusive: got %d holidays", len(upcoming))
	}

	// A holiday on the start date is also included.
	upcoming = r.Upcoming(3, date(2024, time.July, 4))
	if len(upcoming) != 1 {
		t.Fatalf("start not inclusive: got %d holidays", len(upcoming))
	}

	// One day short of the holiday.
	upcoming = r.Upcoming(2, date(2024, time.July, 1))
	if len(upcoming) != 0 {
		t.Fatalf("got %d holidays, want 0", len(upcoming))
	}
}

func TestUpcomingSorted(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	r := NewResolver(catalog, time.UTC, nil)
	upcoming := r.Upcoming(365, date(2024, time.January, 1))

	for i := 1; i < len(upcoming); i++ {
		if upcoming[i].Date.Before(upcoming[i-1].Date) {
			t.Fatalf("not sorted at %d: %s after %s",
				i, upcoming[i-1].Date.Format("2006-01-02"), upcoming[i].Date.Format("2006-01-02"))
		}
	}
}

func TestForReligion(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	resolved, err := r.ForReligion("christian", 2024)
	if err != nil {
		t.Fatalf("ForReligion: %v", err)
	}
	if len(resolved) != 1 || resolved[0].Definition.Key != "easter" {
		t.Fatalf("got %+v, want just easter", resolved)
	}

	for _, religion := range []string{"none", "other", "", "jedi"} {
		resolved, err := r.ForReligion(religion, 2024)
		if err != nil {
			t.Fatalf("ForReligion(%q): %v", religion, err)
		}
		if len(resolved) != 0 {
			t.Errorf("ForReligion(%q) = %d holidays, want 0", religion, len(resolved))
		}
	}
}

func TestForNationality(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	r := NewResolver(catalog, time.UTC, nil)

	american, err := r.ForNationality("american", 2024)
	if err != nil {
		t.Fatalf("ForNationality: %v", err)
	}
	if len(american) != len(catalog.ByCategory(CategoryAmerican)) {
		t.Errorf("american = %d holidays, want whole category (%d)",
			len(american), len(catalog.ByCategory(CategoryAmerican)))
	}

	peruvian, err := r.ForNationality("peruvian", 2024)
	if err != nil {
		t.Fatalf("ForNationality: %v", err)
	}
	if len(peruvian) != 1 || peruvian[0].Definition.Key != "peruvian_independence" {
		t.Fatalf("peruvian = %+v, want just peruvian_independence", peruvian)
	}
	if !peruvian[0].Date.Equal(date(2024, time.July, 28)) {
		t.Errorf("peruvian independence = %s, want 2024-07-28", peruvian[0].Date.Format("2006-01-02"))
	}

	dominican, err := r.ForNationality("dominican", 2024)
	if err != nil {
		t.Fatalf("ForNationality: %v", err)
	}
	if len(dominican) != 1 || dominican[0].Definition.Key != "dominican_independence" {
		t.Fatalf("dominican = %+v, want just dominican_independence", dominican)
	}

	for _, nationality := range []string{"none", "other", "", "martian"} {
		resolved, err := r.ForNationality(nationality, 2024)
		if err != nil {
			t.Fatalf("ForNationality(%q): %v", nationality, err)
		}
		if len(resolved) != 0 {
			t.Errorf("ForNationality(%q) = %d holidays, want 0", nationality, len(resolved))
		}
	}
}

func TestIsHoliday(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	tests := []struct {
		name        string
		date        time.Time
		religion    string
		nationality string
		wantKey     string
	}{
		{"easter for christian", date(2024, time.March, 31), "christian", "none", "easter"},
		{"easter ignored without religion", date(2024, time.March, 31), "none", "none", ""},
		{"july 4th for american", date(2024, time.July, 4), "none", "american", "independence_day"},
		{"july 4th ignored for peruvian", date(2024, time.July, 4), "none", "peruvian", ""},
		{"ordinary day", date(2024, time.June, 10), "christian", "american", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.IsHoliday(tt.date, tt.religion, tt.nationality)
			if tt.wantKey == "" {
				if got != nil {
					t.Fatalf("got %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("got nil, want a holiday")
			}
			if got.Definition.Key != tt.wantKey {
				t.Errorf("got %s, want %s", got.Definition.Key, tt.wantKey)
			}
		})
	}
}

func TestIsHolidayIgnoresTimeOfDay(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	evening := time.Date(2024, time.July, 4, 23, 45, 0, 0, time.UTC)
	if r.IsHoliday(evening, "none", "american") == nil {
		t.Error("late-evening timestamp on a holiday not recognized")
	}
}

func TestResolveIdempotent(t *testing.T) {
	r := NewResolver(testCatalog(t), time.UTC, nil)

	first, err := r.ResolveYear(2025)
	if err != nil {
		t.Fatalf("ResolveYear: %v", err)
	}
	second, err := r.ResolveYear(2025)
	if err != nil {
		t.Fatalf("ResolveYear: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Date.Equal(second[i].Date) || first[i].Definition.Key != second[i].Definition.Key {
			t.Errorf("entry %d differs between runs", i)
		}
	}
}
