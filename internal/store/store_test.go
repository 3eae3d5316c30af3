package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"kindred/internal/contact"
)

// testDB opens an in-memory database with migrations applied.
func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(DefaultConfig(":memory:"), nil)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func testContact(name string) *contact.Contact {
	return &contact.Contact{
		Name:        name,
		Birthday:    time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
		Tier:        contact.TierFriend,
		Religion:    contact.ReligionChristian,
		Nationality: contact.NationalityAmerican,
		Description: "met at the climbing gym",
	}
}

func TestCreateAndGetContact(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := testContact("Maria Lopez")
	c.CustomDates = []contact.CustomDate{
		{Name: "Anniversary", Date: time.Date(2015, time.July, 10, 0, 0, 0, 0, time.UTC), Recurring: true},
	}

	if err := db.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if c.ID == 0 {
		t.Fatal("CreateContact did not set ID")
	}

	got, err := db.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}

	if got.Name != c.Name {
		t.Errorf("name = %q, want %q", got.Name, c.Name)
	}
	if !got.Birthday.Equal(c.Birthday) {
		t.Errorf("birthday = %s, want %s", got.Birthday, c.Birthday)
	}
	if got.Tier != contact.TierFriend || got.Religion != contact.ReligionChristian {
		t.Errorf("enums did not round-trip: %+v", got)
	}
	if len(got.CustomDates) != 1 || got.CustomDates[0].Name != "Anniversary" || !got.CustomDates[0].Recurring {
		t.Errorf("custom dates did not round-trip: %+v", got.CustomDates)
	}
	if got.DateAdded.IsZero() {
		t.Error("date added not set")
	}
}

func TestGetContactNotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetContact(context.Background(), 9999)
	if !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestGetContactByName(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := testContact("Maria Lopez")
	if err := db.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	got, err := db.GetContactByName(ctx, "Maria Lopez")
	if err != nil {
		t.Fatalf("GetContactByName: %v", err)
	}
	if got.ID != c.ID {
		t.Errorf("id = %d, want %d", got.ID, c.ID)
	}

	if _, err := db.GetContactByName(ctx, "Nobody"); !IsNotFound(err) {
		t.Errorf("err = %v, want not-found", err)
	}
}

func TestCreateContactDuplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.CreateContact(ctx, testContact("Maria Lopez")); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	err := db.CreateContact(ctx, testContact("Maria Lopez"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("err = %v, want ErrDuplicate", err)
	}
}

func TestListContactsOrdered(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, name := range []string{"Zoe Adams", "Ana Diaz", "Mike Chen"} {
		if err := db.CreateContact(ctx, testContact(name)); err != nil {
			t.Fatalf("CreateContact(%s): %v", name, err)
		}
	}

	contacts, err := db.ListContacts(ctx)
	if err != nil {
		t.Fatalf("ListContacts: %v", err)
	}

	want := []string{"Ana Diaz", "Mike Chen", "Zoe Adams"}
	if len(contacts) != len(want) {
		t.Fatalf("got %d contacts, want %d", len(contacts), len(want))
	}
	for i, name := range want {
		if contacts[i].Name != name {
			t.Errorf("position %d = %s, want %s", i, contacts[i].Name, name)
		}
	}
}

func TestSearchContacts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, name := range []string{"Maria Lopez", "Mario Rossi", "Ana Diaz"} {
		if err := db.CreateContact(ctx, testContact(name)); err != nil {
			t.Fatalf("CreateContact(%s): %v", name, err)
		}
	}

	got, err := db.SearchContacts(ctx, "mari")
	if err != nil {
		t.Fatalf("SearchContacts: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2: %+v", len(got), got)
	}

	// LIKE wildcards in the term must not match everything.
	got, err = db.SearchContacts(ctx, "%")
	if err != nil {
		t.Fatalf("SearchContacts: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("wildcard term matched %d contacts, want 0", len(got))
	}
}

func TestFilterQueries(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := testContact("Ana Diaz")
	a.Religion = contact.ReligionJewish
	a.Nationality = contact.NationalityPeruvian
	a.Tier = contact.TierGold

	b := testContact("Mike Chen")
	b.Religion = contact.ReligionNone
	b.Nationality = contact.NationalityNone
	b.Tier = contact.TierAcquaintance

	for _, c := range []*contact.Contact{a, b} {
		if err := db.CreateContact(ctx, c); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}

	byReligion, err := db.GetContactsByReligion(ctx, contact.ReligionJewish)
	if err != nil {
		t.Fatalf("GetContactsByReligion: %v", err)
	}
	if len(byReligion) != 1 || byReligion[0].Name != "Ana Diaz" {
		t.Errorf("byReligion = %+v, want just Ana Diaz", byReligion)
	}

	byNationality, err := db.GetContactsByNationality(ctx, contact.NationalityPeruvian)
	if err != nil {
		t.Fatalf("GetContactsByNationality: %v", err)
	}
	if len(byNationality) != 1 || byNationality[0].Name != "Ana Diaz" {
		t.Errorf("byNationality = %+v, want just Ana Diaz", byNationality)
	}

	byTier, err := db.GetContactsByTier(ctx, contact.TierGold)
	if err != nil {
		t.Fatalf("GetContactsByTier: %v", err)
	}
	if len(byTier) != 1 || byTier[0].Name != "Ana Diaz" {
		t.Errorf("byTier = %+v, want just Ana Diaz", byTier)
	}
}

func TestUpdateContact(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := testContact("Maria Lopez")
	if err := db.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	c.Tier = contact.TierGold
	c.Description = "promoted"
	if err := db.UpdateContact(ctx, c); err != nil {
		t.Fatalf("UpdateContact: %v", err)
	}

	got, err := db.GetContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetContact: %v", err)
	}
	if got.Tier != contact.TierGold || got.Description != "promoted" {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateContactNotFound(t *testing.T) {
	db := testDB(t)

	c := testContact("Ghost")
	c.ID = 9999
	if err := db.UpdateContact(context.Background(), c); !IsNotFound(err) {
		t.Fatalf("err = %v, want not-found", err)
	}
}

func TestDeleteContact(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := testContact("Maria Lopez")
	if err := db.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	if err := db.DeleteContact(ctx, c.ID); err != nil {
		t.Fatalf("DeleteContact: %v", err)
	}
	if _, err := db.GetContact(ctx, c.ID); !IsNotFound(err) {
		t.Errorf("contact still present after delete")
	}

	if err := db.DeleteContact(ctx, c.ID); !IsNotFound(err) {
		t.Errorf("second delete err = %v, want not-found", err)
	}
}

func TestCountContacts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	count, err := db.CountContacts(ctx)
	if err != nil {
		t.Fatalf("CountContacts: %v", err)
	}
	if count != 0 {
		t.Fatalf("empty store count = %d", count)
	}

	for _, name := range []string{"Ana Diaz", "Mike Chen"} {
		if err := db.CreateContact(ctx, testContact(name)); err != nil {
			t.Fatalf("CreateContact: %v", err)
		}
	}

	count, err = db.CountContacts(ctx)
	if err != nil {
		t.Fatalf("CountContacts: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := testDB(t)

	// testDB already migrated; a second run applies nothing.
	applied, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	if applied != 0 {
		t.Errorf("second migrate applied %d migrations, want 0", applied)
	}
}

func TestExportCSV(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	c := testContact("Maria Lopez")
	c.CustomDates = []contact.CustomDate{
		{Name: "Anniversary", Date: time.Date(2015, time.July, 10, 0, 0, 0, 0, time.UTC), Recurring: true},
	}
	if err := db.CreateContact(ctx, c); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}

	var buf bytes.Buffer
	if err := db.ExportCSV(ctx, &buf); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}
	if records[0][0] != "Name" {
		t.Errorf("header = %v", records[0])
	}

	row := records[1]
	if row[0] != "Maria Lopez" || row[1] != "1990-06-15" {
		t.Errorf("row = %v", row)
	}
	if !strings.Contains(row[6], "Anniversary") {
		t.Errorf("custom dates column = %q", row[6])
	}
}
