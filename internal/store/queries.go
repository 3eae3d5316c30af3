package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"kindred/internal/contact"
)

const dateLayout = "2006-01-02"

// contactColumns is the SELECT list shared by every contact query.
const contactColumns = `
	id, name, birthday, tier, religion, nationality,
	description, custom_dates, chat_user_id, date_added,
	created_at, updated_at
`

// =============================================================================
// Contact CRUD
// =============================================================================

// CreateContact inserts a new contact and sets its ID.
// Returns ErrDuplicate when a contact with the same name exists.
func (db *DB) CreateContact(ctx context.Context, c *contact.Contact) error {
	customDatesJSON, err := marshalCustomDates(c.CustomDates)
	if err != nil {
		return fmt.Errorf("marshal custom dates: %w", err)
	}

	dateAdded := c.DateAdded
	if dateAdded.IsZero() {
		dateAdded = time.Now()
	}

	query := `
		INSERT INTO contacts (
			name, birthday, tier, religion, nationality,
			description, custom_dates, chat_user_id, date_added
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		c.Name,
		c.Birthday.Format(dateLayout),
		string(c.Tier),
		string(c.Religion),
		string(c.Nationality),
		c.Description,
		customDatesJSON,
		nullString(c.ChatUserID),
		dateAdded.Format(dateLayout),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert contact: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("contact insert id: %w", err)
	}
	c.ID = id

	return nil
}

// GetContact retrieves a contact by ID.
// Returns ErrNotFound when it doesn't exist.
func (db *DB) GetContact(ctx context.Context, id int64) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = ?`
	return db.scanContact(db.QueryRowContext(ctx, query, id))
}

// GetContactByName retrieves a contact by exact name.
// Returns ErrNotFound when it doesn't exist.
func (db *DB) GetContactByName(ctx context.Context, name string) (*contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE name = ?`
	return db.scanContact(db.QueryRowContext(ctx, query, name))
}

// ListContacts returns all contacts ordered by name.
func (db *DB) ListContacts(ctx context.Context) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name ASC`
	return db.queryContacts(ctx, query)
}

// SearchContacts returns contacts whose name contains the term,
// case-insensitively, ordered by name.
func (db *DB) SearchContacts(ctx context.Context, term string) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts
		WHERE name LIKE ? ESCAPE '\' COLLATE NOCASE ORDER BY name ASC`
	return db.queryContacts(ctx, query, "%"+escapeLike(term)+"%")
}

// GetContactsByReligion returns contacts with the given religion.
func (db *DB) GetContactsByReligion(ctx context.Context, religion contact.Religion) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE religion = ? ORDER BY name ASC`
	return db.queryContacts(ctx, query, string(religion))
}

// GetContactsByNationality returns contacts with the given nationality.
func (db *DB) GetContactsByNationality(ctx context.Context, nationality contact.Nationality) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE nationality = ? ORDER BY name ASC`
	return db.queryContacts(ctx, query, string(nationality))
}

// GetContactsByTier returns contacts with the given tier.
func (db *DB) GetContactsByTier(ctx context.Context, tier contact.Tier) ([]contact.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE tier = ? ORDER BY name ASC`
	return db.queryContacts(ctx, query, string(tier))
}

// UpdateContact updates an existing contact by ID.
// Returns ErrNotFound when the contact doesn't exist.
func (db *DB) UpdateContact(ctx context.Context, c *contact.Contact) error {
	customDatesJSON, err := marshalCustomDates(c.CustomDates)
	if err != nil {
		return fmt.Errorf("marshal custom dates: %w", err)
	}

	query := `
		UPDATE contacts SET
			name = ?,
			birthday = ?,
			tier = ?,
			religion = ?,
			nationality = ?,
			description = ?,
			custom_dates = ?,
			chat_user_id = ?,
			updated_at = datetime('now')
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query,
		c.Name,
		c.Birthday.Format(dateLayout),
		string(c.Tier),
		string(c.Religion),
		string(c.Nationality),
		c.Description,
		customDatesJSON,
		nullString(c.ChatUserID),
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("update contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteContact removes a contact by ID.
// Returns ErrNotFound when it doesn't exist.
func (db *DB) DeleteContact(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// CountContacts returns the number of stored contacts.
func (db *DB) CountContacts(ctx context.Context) (int, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count contacts: %w", err)
	}
	return count, nil
}

// =============================================================================
// Row Scanning
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func (db *DB) scanContact(row rowScanner) (*contact.Contact, error) {
	var c contact.Contact
	var birthdayStr, dateAddedStr, customDatesJSON string
	var chatUserID, createdAtStr, updatedAtStr sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Name,
		&birthdayStr,
		&c.Tier,
		&c.Religion,
		&c.Nationality,
		&c.Description,
		&customDatesJSON,
		&chatUserID,
		&dateAddedStr,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}

	c.Birthday, err = time.Parse(dateLayout, birthdayStr)
	if err != nil {
		return nil, fmt.Errorf("parse birthday %q: %w", birthdayStr, err)
	}
	if t, err := time.Parse(dateLayout, dateAddedStr); err == nil {
		c.DateAdded = t
	}

	c.CustomDates, err = unmarshalCustomDates(customDatesJSON)
	if err != nil {
		return nil, fmt.Errorf("unmarshal custom dates: %w", err)
	}

	if chatUserID.Valid {
		c.ChatUserID = chatUserID.String
	}
	if t := parseTimestamp(createdAtStr); t != nil {
		c.CreatedAt = *t
	}
	if t := parseTimestamp(updatedAtStr); t != nil {
		c.UpdatedAt = *t
	}

	return &c, nil
}

func (db *DB) queryContacts(ctx context.Context, query string, args ...any) ([]contact.Contact, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []contact.Contact
	for rows.Next() {
		c, err := db.scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact rows: %w", err)
	}

	return contacts, nil
}

// =============================================================================
// Helpers
// =============================================================================

// customDateRow is the JSON shape of one custom date in the
// custom_dates column.
type customDateRow struct {
	Name      string `json:"name"`
	Date      string `json:"date"` // YYYY-MM-DD
	Recurring bool   `json:"recurring"`
}

func marshalCustomDates(dates []contact.CustomDate) (string, error) {
	rows := make([]customDateRow, 0, len(dates))
	for _, cd := range dates {
		rows = append(rows, customDateRow{
			Name:      cd.Name,
			Date:      cd.Date.Format(dateLayout),
			Recurring: cd.Recurring,
		})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalCustomDates(data string) ([]contact.CustomDate, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var rows []customDateRow
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, err
	}

	dates := make([]contact.CustomDate, 0, len(rows))
	for _, row := range rows {
		d, err := time.Parse(dateLayout, row.Date)
		if err != nil {
			return nil, fmt.Errorf("parse custom date %q: %w", row.Date, err)
		}
		dates = append(dates, contact.CustomDate{
			Name:      row.Name,
			Date:      d,
			Recurring: row.Recurring,
		})
	}
	return dates, nil
}

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05.999999",
	} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// escapeLike escapes LIKE wildcards in a user-supplied search term.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, "%", `\%`)
	return strings.ReplaceAll(term, "_", `\_`)
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
