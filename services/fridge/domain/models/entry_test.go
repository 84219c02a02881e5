package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEntry_Lifecycle(t *testing.T) {
	householdID := uuid.New()
	e := NewEntry(householdID, "Garage Fridge")

	if e.ID == uuid.Nil {
		t.Fatal("expected generated ID")
	}
	if e.IsReal {
		t.Fatal("new entries start as placeholders")
	}
	if e.IsArchived() {
		t.Fatal("new entries are not archived")
	}

	e.MakeReal()
	if !e.IsReal {
		t.Fatal("MakeReal must mark the entry real")
	}

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	e.Archive(now)
	if !e.IsArchived() || !e.ArchivedAt.Equal(now) {
		t.Fatalf("expected archived at %v, got %v", now, e.ArchivedAt)
	}
	if e.ArchivedAt.Location() != time.UTC {
		t.Fatal("archive timestamps are stored in UTC")
	}

	e.Unarchive()
	if e.IsArchived() {
		t.Fatal("Unarchive must clear the archive mark")
	}

	e.Rename("Basement Fridge")
	if e.Name != "Basement Fridge" {
		t.Fatalf("unexpected name %q", e.Name)
	}
}

func TestNewHousehold(t *testing.T) {
	h, err := NewHousehold("Home", "Europe/Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Location().String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %v", h.Location())
	}

	h, err = NewHousehold("Home", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Timezone != DefaultTimezone {
		t.Fatalf("expected default timezone, got %q", h.Timezone)
	}

	if _, err := NewHousehold("Home", "Mars/Olympus"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}
