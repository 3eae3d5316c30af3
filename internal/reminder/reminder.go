// Package reminder assembles and dispatches birthday, holiday, and
// custom-date reminders.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"kindred/internal/contact"
	"kindred/internal/holiday"
)

// Kind classifies a reminder feed entry.
type Kind string

const (
	KindBirthday Kind = "birthday"
	KindHoliday  Kind = "holiday"
	KindCustom   Kind = "custom"
)

// Reminder is one entry in the combined reminder feed. Exactly one of
// Contact+(CustomDate) or Holiday is populated, per Kind.
type Reminder struct {
	Kind       Kind                `json:"kind"`
	Contact    *contact.Contact    `json:"contact,omitempty"`
	Holiday    *holiday.Resolved   `json:"holiday,omitempty"`
	CustomDate *contact.CustomDate `json:"custom_date,omitempty"`
	Date       time.Time           `json:"date"`
	DaysUntil  int                 `json:"days_until"`
	Priority   int                 `json:"priority"`
}

// ContactStore is the slice of the contact store the reminder service
// needs. The store is read-only from here: reminders never mutate
// contact data.
type ContactStore interface {
	ListContacts(ctx context.Context) ([]contact.Contact, error)
	GetContactsByReligion(ctx context.Context, religion contact.Religion) ([]contact.Contact, error)
	GetContactsByNationality(ctx context.Context, nationality contact.Nationality) ([]contact.Contact, error)
	GetContactsByTier(ctx context.Context, tier contact.Tier) ([]contact.Contact, error)
}

// Notifier delivers a reminder message to the user.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Service builds reminder feeds and runs the daily/hourly dispatch.
type Service struct {
	store    ContactStore
	holidays *holiday.Resolver
	notifier Notifier
	logger   *slog.Logger
	loc      *time.Location

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a reminder service operating in the given timezone.
func NewService(store ContactStore, holidays *holiday.Resolver, notifier Notifier, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    store,
		holidays: holidays,
		notifier: notifier,
		logger:   logger,
		loc:      loc,
		now:      time.Now,
	}
}

// today returns midnight of the current day in the service timezone.
func (s *Service) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// Upcoming assembles the combined reminder feed for the next `days`
// days: birthdays, holidays, and custom dates, sorted by ascending
// priority then ascending days-until.
func (s *Service) Upcoming(ctx context.Context, days int) ([]Reminder, error) {
	today := s.today()

	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	var feed []Reminder

	for i := range contacts {
		c := &contacts[i]

		daysUntil := c.DaysUntilBirthday(today)
		if daysUntil <= days {
			feed = append(feed, Reminder{
				Kind:      KindBirthday,
				Contact:   c,
				Date:      c.NextBirthday(today),
				DaysUntil: daysUntil,
				Priority:  c.Priority(),
			})
		}

		for _, cd := range c.UpcomingCustomDates(today, days) {
			feed = append(feed, Reminder{
				Kind:       KindCustom,
				Contact:    c,
				CustomDate: &cd,
				Date:       cd.Date,
				DaysUntil:  daysBetween(today, cd.Date),
				Priority:   c.Priority(),
			})
		}
	}

	for _, h := range s.holidays.Upcoming(days, today) {
		feed = append(feed, Reminder{
			Kind:      KindHoliday,
			Holiday:   &h,
			Date:      h.Date,
			DaysUntil: daysBetween(today, h.Date),
			Priority:  contact.DefaultPriority,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		if feed[i].Priority != feed[j].Priority {
			return feed[i].Priority < feed[j].Priority
		}
		return feed[i].DaysUntil < feed[j].DaysUntil
	})

	return feed, nil
}

// SendDailyReminders runs the morning dispatch: today's birthdays,
// tomorrow's holidays cross-referenced against affected contacts, and
// tomorrow's custom dates. Individual failures are logged and skipped
// so one bad entry cannot abort the whole run.
func (s *Service) SendDailyReminders(ctx context.Context) error {
	today := s.today()
	s.logger.Info("sending daily reminders", slog.String("date", today.Format("2006-01-02")))

	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	for i := range contacts {
		c := &contacts[i]
		if c.DaysUntilBirthday(today) == 0 {
			s.sendBirthdayReminder(ctx, c, today)
		}
		for _, cd := range c.UpcomingCustomDates(today, 1) {
			if daysBetween(today, cd.Date) == 1 {
				s.sendCustomDateReminder(ctx, c, cd)
			}
		}
	}

	for _, h := range s.holidays.Upcoming(1, today) {
		if daysBetween(today, h.Date) == 1 {
			s.sendHolidayReminder(ctx, h)
		}
	}

	return nil
}

// SendEarlyReminders runs the early-reminder sweep: contacts whose tier
// grants advance notice get an extra birthday reminder at their
// configured offsets (gold: 3 and 1 days out; family: 1 day out).
func (s *Service) SendEarlyReminders(ctx context.Context) error {
	today := s.today()

	contacts, err := s.store.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("list contacts: %w", err)
	}

	for i := range contacts {
		c := &contacts[i]
		daysUntil := c.DaysUntilBirthday(today)
		if c.ShouldGetEarlyBirthdayReminder(daysUntil) {
			s.sendEarlyBirthdayReminder(ctx, c, daysUntil)
		}
	}

	return nil
}

// -----------------------------------------------------------------
// Individual sends
// -----------------------------------------------------------------

func (s *Service) sendBirthdayReminder(ctx context.Context, c *contact.Contact, today time.Time) {
	description := c.Description
	if description == "" {
		description = "No description available"
	}

	// Age already reflects the new age on the birthday itself.
	msg := fmt.Sprintf("Today is %s's birthday! (turning %d)\n\n%s\nRelationship: %s",
		c.Name, c.Age(today), description, c.DisplayTier())

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("birthday reminder failed",
			slog.String("contact", c.Name), slog.Any("error", err))
		return
	}
	s.logger.Info("birthday reminder sent", slog.String("contact", c.Name))
}

func (s *Service) sendEarlyBirthdayReminder(ctx context.Context, c *contact.Contact, daysUntil int) {
	dayText := fmt.Sprintf("in %d days", daysUntil)
	if daysUntil == 1 {
		dayText = "tomorrow"
	}

	msg := fmt.Sprintf("Birthday reminder: %s's birthday is %s!\nRelationship: %s",
		c.Name, dayText, c.DisplayTier())

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("early birthday reminder failed",
			slog.String("contact", c.Name), slog.Any("error", err))
		return
	}
	s.logger.Info("early birthday reminder sent",
		slog.String("contact", c.Name), slog.Int("days_until", daysUntil))
}

func (s *Service) sendCustomDateReminder(ctx context.Context, c *contact.Contact, cd contact.CustomDate) {
	recurring := "No"
	if cd.Recurring {
		recurring = "Yes"
	}

	msg := fmt.Sprintf("%s for %s is tomorrow!\nDate: %s\nRecurring: %s",
		cd.Name, c.Name, cd.Date.Format("Jan 02, 2006"), recurring)

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("custom date reminder failed",
			slog.String("contact", c.Name), slog.String("event", cd.Name), slog.Any("error", err))
		return
	}
	s.logger.Info("custom date reminder sent",
		slog.String("contact", c.Name), slog.String("event", cd.Name))
}

// sendHolidayReminder cross-references a holiday against the contacts
// it affects, by religion or nationality, and sends one message listing
// them. No affected contacts means no message.
func (s *Service) sendHolidayReminder(ctx context.Context, h holiday.Resolved) {
	affected, label, err := s.affectedContacts(ctx, h)
	if err != nil {
		s.logger.Error("holiday reminder lookup failed",
			slog.String("holiday", h.Definition.Name), slog.Any("error", err))
		return
	}
	if len(affected) == 0 {
		return
	}

	names := make([]string, 0, len(affected))
	for _, c := range affected {
		names = append(names, "- "+c.Name)
	}

	msg := fmt.Sprintf("%s Tomorrow is %s!\n\nDon't forget to wish your %s friends:\n%s",
		categoryEmoji(h.Definition.Category), h.Definition.Name, label, strings.Join(names, "\n"))

	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("holiday reminder failed",
			slog.String("holiday", h.Definition.Name), slog.Any("error", err))
		return
	}
	s.logger.Info("holiday reminder sent", slog.String("holiday", h.Definition.Name))
}

// affectedContacts maps a holiday's category (and, for national
// holidays, its key) to the contacts it concerns.
func (s *Service) affectedContacts(ctx context.Context, h holiday.Resolved) ([]contact.Contact, string, error) {
	switch h.Definition.Category {
	case holiday.CategoryChristian:
		contacts, err := s.store.GetContactsByReligion(ctx, contact.ReligionChristian)
		return contacts, "Christian", err
	case holiday.CategoryJewish:
		contacts, err := s.store.GetContactsByReligion(ctx, contact.ReligionJewish)
		return contacts, "Jewish", err
	case holiday.CategoryMuslim:
		contacts, err := s.store.GetContactsByReligion(ctx, contact.ReligionMuslim)
		return contacts, "Muslim", err
	case holiday.CategoryHindu:
		contacts, err := s.store.GetContactsByReligion(ctx, contact.ReligionHindu)
		return contacts, "Hindu", err
	case holiday.CategoryBuddhist:
		contacts, err := s.store.GetContactsByReligion(ctx, contact.ReligionBuddhist)
		return contacts, "Buddhist", err
	case holiday.CategoryAmerican:
		contacts, err := s.store.GetContactsByNationality(ctx, contact.NationalityAmerican)
		return contacts, "American", err
	case holiday.CategoryNational:
		switch h.Definition.Key {
		case "peruvian_independence":
			contacts, err := s.store.GetContactsByNationality(ctx, contact.NationalityPeruvian)
			return contacts, "Peruvian", err
		case "dominican_independence":
			contacts, err := s.store.GetContactsByNationality(ctx, contact.NationalityDominican)
			return contacts, "Dominican", err
		}
	}
	return nil, "", nil
}

func categoryEmoji(category holiday.Category) string {
	switch category {
	case holiday.CategoryChristian:
		return "⛪"
	case holiday.CategoryJewish:
		return "✡️"
	case holiday.CategoryMuslim:
		return "☪️"
	case holiday.CategoryHindu:
		return "🕉️"
	case holiday.CategoryBuddhist:
		return "☸️"
	case holiday.CategoryAmerican:
		return "🇺🇸"
	case holiday.CategoryNational:
		return "🏛️"
	}
	return "📅"
}

// daysBetween returns whole days from a to b, both at midnight.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
