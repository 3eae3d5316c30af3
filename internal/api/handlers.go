package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"kindred/internal/config"
	"kindred/internal/contact"
	"kindred/internal/dateparse"
	"kindred/internal/holiday"
	"kindred/internal/reminder"
	"kindred/internal/store"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db        *store.DB
	resolver  *holiday.Resolver
	reminders *reminder.Service
	cfg       *config.Config
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *store.DB, resolver *holiday.Resolver, reminders *reminder.Service, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:        db,
		resolver:  resolver,
		reminders: reminders,
		cfg:       cfg,
		logger:    logger,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Health(r.Context()); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// =============================================================================
// Holidays
// =============================================================================

// GetHolidaysForYear handles GET /api/v1/holidays/{year}?category=
func (h *Handlers) GetHolidaysForYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be a number")
		return
	}

	var resolved []holiday.Resolved
	if category := r.URL.Query().Get("category"); category != "" {
		cat := holiday.Category(category)
		if !cat.IsValid() {
			WriteBadRequest(w, fmt.Sprintf("Unknown category: %s", category))
			return
		}
		resolved, err = h.resolver.ResolveCategory(cat, year)
	} else {
		resolved, err = h.resolver.ResolveYear(year)
	}
	if err != nil {
		if errors.Is(err, holiday.ErrYearOutOfRange) {
			WriteBadRequest(w, fmt.Sprintf("Year must be between %d and %d", holiday.MinYear, holiday.MaxYear))
			return
		}
		h.logger.Error("resolve holidays failed", slog.Int("year", year), slog.Any("error", err))
		WriteInternalError(w, "Failed to resolve holidays")
		return
	}

	WriteSuccess(w, map[string]any{
		"year":     year,
		"holidays": resolved,
	})
}

// GetUpcomingHolidays handles GET /api/v1/holidays/upcoming?days=
func (h *Handlers) GetUpcomingHolidays(w http.ResponseWriter, r *http.Request) {
	days := h.cfg.WindowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			WriteBadRequest(w, "days must be a number between 1 and 365")
			return
		}
		days = parsed
	}

	now := time.Now().In(h.resolver.Location())
	upcoming := h.resolver.Upcoming(days, now)

	WriteSuccess(w, map[string]any{
		"days":     days,
		"holidays": upcoming,
	})
}

// CheckHoliday handles GET /api/v1/holidays/check?date=&religion=&nationality=
func (h *Handlers) CheckHoliday(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		WriteBadRequest(w, "date parameter is required")
		return
	}

	date, err := dateparse.Parse(dateStr, h.resolver.Location(), time.Now())
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date: %s", dateStr))
		return
	}

	religion := r.URL.Query().Get("religion")
	nationality := r.URL.Query().Get("nationality")

	match := h.resolver.IsHoliday(date, religion, nationality)
	result := map[string]any{
		"date":       date.Format("2006-01-02"),
		"is_holiday": match != nil,
	}
	if match != nil {
		result["holiday"] = match
	}

	WriteSuccess(w, result)
}

// =============================================================================
// Contacts
// =============================================================================

// contactRequest is the JSON body for contact create/update.
type contactRequest struct {
	Name        string `json:"name"`
	Birthday    string `json:"birthday"`
	Tier        string `json:"tier"`
	Religion    string `json:"religion"`
	Nationality string `json:"nationality"`
	Description string `json:"description"`
	CustomDates []struct {
		Name      string `json:"name"`
		Date      string `json:"date"`
		Recurring bool   `json:"recurring"`
	} `json:"custom_dates"`
	ChatUserID string `json:"chat_user_id"`
}

// toContact converts the request body into a Contact, parsing dates in
// the resolver's timezone. Missing enum fields get their defaults.
func (h *Handlers) toContact(req *contactRequest, now time.Time) (*contact.Contact, error) {
	birthday, err := dateparse.Parse(req.Birthday, h.resolver.Location(), now)
	if err != nil {
		return nil, fmt.Errorf("invalid birthday: %w", err)
	}

	c := &contact.Contact{
		Name:        req.Name,
		Birthday:    birthday,
		Tier:        contact.Tier(req.Tier),
		Religion:    contact.Religion(req.Religion),
		Nationality: contact.Nationality(req.Nationality),
		Description: req.Description,
		ChatUserID:  req.ChatUserID,
	}
	if req.Tier == "" {
		c.Tier = contact.TierAcquaintance
	}
	if req.Religion == "" {
		c.Religion = contact.ReligionNone
	}
	if req.Nationality == "" {
		c.Nationality = contact.NationalityNone
	}

	for _, cd := range req.CustomDates {
		date, err := dateparse.Parse(cd.Date, h.resolver.Location(), now)
		if err != nil {
			return nil, fmt.Errorf("invalid custom date %q: %w", cd.Name, err)
		}
		c.CustomDates = append(c.CustomDates, contact.CustomDate{
			Name:      cd.Name,
			Date:      date,
			Recurring: cd.Recurring,
		})
	}

	return c, nil
}

// ListContacts handles GET /api/v1/contacts?religion=&nationality=&tier=
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var contacts []contact.Contact
	var err error

	switch {
	case r.URL.Query().Get("religion") != "":
		religion := contact.Religion(r.URL.Query().Get("religion"))
		if !religion.IsValid() {
			WriteBadRequest(w, "Unknown religion filter")
			return
		}
		contacts, err = h.db.GetContactsByReligion(ctx, religion)
	case r.URL.Query().Get("nationality") != "":
		nationality := contact.Nationality(r.URL.Query().Get("nationality"))
		if !nationality.IsValid() {
			WriteBadRequest(w, "Unknown nationality filter")
			return
		}
		contacts, err = h.db.GetContactsByNationality(ctx, nationality)
	case r.URL.Query().Get("tier") != "":
		tier := contact.Tier(r.URL.Query().Get("tier"))
		if !tier.IsValid() {
			WriteBadRequest(w, "Unknown tier filter")
			return
		}
		contacts, err = h.db.GetContactsByTier(ctx, tier)
	default:
		contacts, err = h.db.ListContacts(ctx)
	}

	if err != nil {
		h.logger.Error("list contacts failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to list contacts")
		return
	}

	WriteSuccess(w, map[string]any{
		"count":    len(contacts),
		"contacts": contacts,
	})
}

// SearchContacts handles GET /api/v1/contacts/search?q=
func (h *Handlers) SearchContacts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	if term == "" {
		WriteBadRequest(w, "q parameter is required")
		return
	}

	contacts, err := h.db.SearchContacts(r.Context(), term)
	if err != nil {
		h.logger.Error("search contacts failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to search contacts")
		return
	}

	WriteSuccess(w, map[string]any{
		"count":    len(contacts),
		"contacts": contacts,
	})
}

// GetContact handles GET /api/v1/contacts/{id}
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Contact ID must be a number")
		return
	}

	c, err := h.db.GetContact(r.Context(), id)
	if err != nil {
		if store.IsNotFound(err) {
			WriteNotFound(w, "Contact not found")
			return
		}
		h.logger.Error("get contact failed", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve contact")
		return
	}

	WriteSuccess(w, c)
}

// CreateContact handles POST /api/v1/contacts
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	now := time.Now().In(h.resolver.Location())
	c, err := h.toContact(&req, now)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if msg := c.Validate(now); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	if err := h.db.CreateContact(r.Context(), c); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			WriteConflict(w, fmt.Sprintf("Contact %q already exists", c.Name))
			return
		}
		h.logger.Error("create contact failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to create contact")
		return
	}

	h.logger.Info("contact created", slog.Int64("id", c.ID), slog.String("name", c.Name))
	WriteCreated(w, c)
}

// UpdateContact handles PUT /api/v1/contacts/{id}
func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Contact ID must be a number")
		return
	}

	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	now := time.Now().In(h.resolver.Location())
	c, err := h.toContact(&req, now)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	c.ID = id

	if msg := c.Validate(now); msg != "" {
		WriteBadRequest(w, msg)
		return
	}

	if err := h.db.UpdateContact(r.Context(), c); err != nil {
		switch {
		case store.IsNotFound(err):
			WriteNotFound(w, "Contact not found")
		case errors.Is(err, store.ErrDuplicate):
			WriteConflict(w, fmt.Sprintf("Contact %q already exists", c.Name))
		default:
			h.logger.Error("update contact failed", slog.Int64("id", id), slog.Any("error", err))
			WriteInternalError(w, "Failed to update contact")
		}
		return
	}

	WriteSuccess(w, c)
}

// DeleteContact handles DELETE /api/v1/contacts/{id}
func (h *Handlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Contact ID must be a number")
		return
	}

	if err := h.db.DeleteContact(r.Context(), id); err != nil {
		if store.IsNotFound(err) {
			WriteNotFound(w, "Contact not found")
			return
		}
		h.logger.Error("delete contact failed", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete contact")
		return
	}

	WriteSuccess(w, map[string]any{"deleted": id})
}

// ExportContacts handles GET /api/v1/contacts/export
func (h *Handlers) ExportContacts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)

	if err := h.db.ExportCSV(r.Context(), w); err != nil {
		// Headers are already sent; all we can do is log.
		h.logger.Error("contact export failed", slog.Any("error", err))
	}
}

// =============================================================================
// Reminders
// =============================================================================

// GetUpcomingReminders handles GET /api/v1/reminders/upcoming?days=
func (h *Handlers) GetUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	days := h.cfg.WindowDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			WriteBadRequest(w, "days must be a number between 1 and 365")
			return
		}
		days = parsed
	}

	feed, err := h.reminders.Upcoming(r.Context(), days)
	if err != nil {
		h.logger.Error("reminder feed failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to build reminder feed")
		return
	}

	WriteSuccess(w, map[string]any{
		"days":      days,
		"count":     len(feed),
		"reminders": feed,
	})
}
