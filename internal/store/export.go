package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// ExportCSV writes all contacts to w in the spreadsheet column layout
// the data originally lived in: one header row, then one row per
// contact, custom dates serialized as JSON in their own column.
func (db *DB) ExportCSV(ctx context.Context, w io.Writer) error {
	contacts, err := db.ListContacts(ctx)
	if err != nil {
		return fmt.Errorf("list contacts for export: %w", err)
	}

	cw := csv.NewWriter(w)

	header := []string{
		"Name", "Birthday", "Tier", "Religion", "Nationality",
		"Description", "Custom Dates", "Chat User ID", "Date Added",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range contacts {
		customDatesJSON, err := marshalCustomDates(c.CustomDates)
		if err != nil {
			return fmt.Errorf("marshal custom dates for %q: %w", c.Name, err)
		}

		row := []string{
			c.Name,
			c.Birthday.Format(dateLayout),
			string(c.Tier),
			string(c.Religion),
			string(c.Nationality),
			c.Description,
			customDatesJSON,
			c.ChatUserID,
			c.DateAdded.Format(dateLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %q: %w", c.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
