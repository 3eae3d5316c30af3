package store

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
// Each migration should be idempotent (safe to run multiple times).
var migrationsSQL = map[int]string{
	1: migrationV1Contacts,
}

// migrationV1Contacts creates the contact table.
//
// Design notes:
//
//  1. DATES AS TEXT
//     birthday and date_added are ISO YYYY-MM-DD strings. Calendar math
//     (next birthday, days until) happens in Go, not SQL.
//
//  2. CUSTOM DATES AS JSON
//     custom_dates mirrors the spreadsheet column the data originally
//     lived in: a JSON array of {name, date, recurring}. Contacts have
//     few custom dates, so a join table buys nothing.
//
//  3. FILTER COLUMNS
//     religion, nationality, and tier are the reminder dispatcher's
//     cross-reference keys and get their own indexes.
const migrationV1Contacts = `
-- Migration 001: contacts

CREATE TABLE IF NOT EXISTS contacts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    name TEXT NOT NULL,
    birthday TEXT NOT NULL,

    tier TEXT NOT NULL DEFAULT 'acquaintance' CHECK (tier IN (
        'gold',
        'family',
        'friend',
        'acquaintance'
    )),
    religion TEXT NOT NULL DEFAULT 'none' CHECK (religion IN (
        'christian',
        'muslim',
        'jewish',
        'hindu',
        'buddhist',
        'none',
        'other'
    )),
    nationality TEXT NOT NULL DEFAULT 'none' CHECK (nationality IN (
        'american',
        'peruvian',
        'dominican',
        'none',
        'other'
    )),

    description TEXT NOT NULL DEFAULT '',

    -- JSON array of {name, date, recurring}
    custom_dates TEXT NOT NULL DEFAULT '[]',

    -- Chat user the contact was added by, if any
    chat_user_id TEXT,

    date_added TEXT NOT NULL DEFAULT (date('now')),
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now')),

    UNIQUE (name)
);

CREATE INDEX IF NOT EXISTS idx_contacts_religion ON contacts(religion);
CREATE INDEX IF NOT EXISTS idx_contacts_nationality ON contacts(nationality);
CREATE INDEX IF NOT EXISTS idx_contacts_tier ON contacts(tier);
`
