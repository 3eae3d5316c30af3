// Package contact defines the contact model and reminder priority policy.
package contact

import (
	"regexp"
	"strings"
	"time"
)

// Tier is a contact's relationship closeness category. It drives
// reminder priority and early-reminder cadence.
type Tier string

const (
	TierGold         Tier = "gold"
	TierFamily       Tier = "family"
	TierFriend       Tier = "friend"
	TierAcquaintance Tier = "acquaintance"
)

// ValidTiers returns all valid tiers.
func ValidTiers() []Tier {
	return []Tier{TierGold, TierFamily, TierFriend, TierAcquaintance}
}

// IsValid checks if a tier is valid.
func (t Tier) IsValid() bool {
	for _, valid := range ValidTiers() {
		if t == valid {
			return true
		}
	}
	return false
}

// Religion is a contact's religion, used only as a holiday filter key.
type Religion string

const (
	ReligionChristian Religion = "christian"
	ReligionJewish    Religion = "jewish"
	ReligionMuslim    Religion = "muslim"
	ReligionHindu     Religion = "hindu"
	ReligionBuddhist  Religion = "buddhist"
	ReligionNone      Religion = "none"
	ReligionOther     Religion = "other"
)

// IsValid checks if a religion is valid.
func (r Religion) IsValid() bool {
	switch r {
	case ReligionChristian, ReligionJewish, ReligionMuslim, ReligionHindu,
		ReligionBuddhist, ReligionNone, ReligionOther:
		return true
	}
	return false
}

// Nationality is a contact's nationality, used only as a holiday filter key.
type Nationality string

const (
	NationalityAmerican  Nationality = "american"
	NationalityPeruvian  Nationality = "peruvian"
	NationalityDominican Nationality = "dominican"
	NationalityNone      Nationality = "none"
	NationalityOther     Nationality = "other"
)

// IsValid checks if a nationality is valid.
func (n Nationality) IsValid() bool {
	switch n {
	case NationalityAmerican, NationalityPeruvian, NationalityDominican,
		NationalityNone, NationalityOther:
		return true
	}
	return false
}

// CustomDate is a per-contact recurring or one-off date to be reminded of.
type CustomDate struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Recurring bool      `json:"recurring"`
}

// Contact is a person to be reminded about. The store owns persistence;
// this type owns the calendar math derived from its fields.
type Contact struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Birthday    time.Time    `json:"birthday"`
	Tier        Tier         `json:"tier"`
	Religion    Religion     `json:"religion"`
	Nationality Nationality  `json:"nationality"`
	Description string       `json:"description"`
	CustomDates []CustomDate `json:"custom_dates,omitempty"`
	ChatUserID  string       `json:"chat_user_id,omitempty"`
	DateAdded   time.Time    `json:"date_added"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Age returns the contact's age in whole years as of now.
func (c *Contact) Age(now time.Time) int {
	age := now.Year() - c.Birthday.Year()
	if now.Month() < c.Birthday.Month() ||
		(now.Month() == c.Birthday.Month() && now.Day() < c.Birthday.Day()) {
		age--
	}
	return age
}

// NextBirthday returns the contact's next birthday on or after now,
// at midnight in now's location.
func (c *Contact) NextBirthday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	next := time.Date(now.Year(), c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, now.Location())
	if next.Before(today) {
		next = time.Date(now.Year()+1, c.Birthday.Month(), c.Birthday.Day(), 0, 0, 0, 0, now.Location())
	}
	return next
}

// DaysUntilBirthday returns whole days from now until the next birthday.
// Zero means the birthday is today.
func (c *Contact) DaysUntilBirthday(now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(c.NextBirthday(now).Sub(today).Hours() / 24)
}

// UpcomingCustomDates returns the custom dates whose next occurrence
// falls within [now, now+days]. Recurring dates roll over to next year
// when this year's occurrence has passed.
func (c *Contact) UpcomingCustomDates(now time.Time, days int) []CustomDate {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, days)

	var upcoming []CustomDate
	for _, cd := range c.CustomDates {
		occurrence := time.Date(now.Year(), cd.Date.Month(), cd.Date.Day(), 0, 0, 0, 0, now.Location())
		if occurrence.Before(today) && cd.Recurring {
			occurrence = time.Date(now.Year()+1, cd.Date.Month(), cd.Date.Day(), 0, 0, 0, 0, now.Location())
		}
		if !occurrence.Before(today) && !occurrence.After(cutoff) {
			next := cd
			next.Date = occurrence
			upcoming = append(upcoming, next)
		}
	}
	return upcoming
}

// NextOccurrence returns the custom date's next occurrence on or after now.
func (cd CustomDate) NextOccurrence(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	occurrence := time.Date(now.Year(), cd.Date.Month(), cd.Date.Day(), 0, 0, 0, 0, now.Location())
	if occurrence.Before(today) && cd.Recurring {
		occurrence = time.Date(now.Year()+1, cd.Date.Month(), cd.Date.Day(), 0, 0, 0, 0, now.Location())
	}
	return occurrence
}

// -----------------------------------------------------------------
// Validation
// -----------------------------------------------------------------

const (
	minNameLen        = 2
	maxNameLen        = 100
	maxDescriptionLen = 500
	minBirthYear      = 1900
)

var nameRegexp = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)

// ValidName checks a contact name: 2-100 chars, letters, spaces,
// hyphens, apostrophes, and periods only.
func ValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minNameLen || len(trimmed) > maxNameLen {
		return false
	}
	return nameRegexp.MatchString(trimmed)
}

// ValidBirthday checks a birthday is between 1900 and the current year.
func ValidBirthday(birthday, now time.Time) bool {
	if birthday.IsZero() {
		return false
	}
	return birthday.Year() >= minBirthYear && birthday.Year() <= now.Year()
}

// ValidDescription checks an optional description is at most 500 chars.
func ValidDescription(description string) bool {
	return len(strings.TrimSpace(description)) <= maxDescriptionLen
}

// Validate checks all contact fields, returning the first problem found
// as a human-readable message, or "" when the contact is valid.
func (c *Contact) Validate(now time.Time) string {
	if !ValidName(c.Name) {
		return "name must be 2-100 letters, spaces, hyphens, apostrophes, or periods"
	}
	if !ValidBirthday(c.Birthday, now) {
		return "birthday must fall between 1900 and the current year"
	}
	if !c.Tier.IsValid() {
		return "tier must be one of: gold, family, friend, acquaintance"
	}
	if !c.Religion.IsValid() {
		return "religion must be one of: christian, muslim, jewish, hindu, buddhist, none, other"
	}
	if !c.Nationality.IsValid() {
		return "nationality must be one of: american, peruvian, dominican, none, other"
	}
	if !ValidDescription(c.Description) {
		return "description must be at most 500 characters"
	}
	for _, cd := range c.CustomDates {
		if strings.TrimSpace(cd.Name) == "" || cd.Date.IsZero() {
			return "custom dates need both a name and a date"
		}
	}
	return ""
}
