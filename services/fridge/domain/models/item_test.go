package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestItem(p Presence) *Item {
	return NewItem(uuid.New(), uuid.New(), "Milk", p)
}

func TestNewItem(t *testing.T) {
	t.Run("HAVE items are stamped as purchased", func(t *testing.T) {
		item := newTestItem(PresenceHave)
		if item.PurchasedAt == nil {
			t.Fatal("expected PurchasedAt for HAVE item")
		}
		if item.Count != 1 {
			t.Fatalf("expected count 1, got %d", item.Count)
		}
	})

	t.Run("NEED items are not purchased", func(t *testing.T) {
		if newTestItem(PresenceNeed).PurchasedAt != nil {
			t.Fatal("NEED item must not have PurchasedAt")
		}
	})

	t.Run("generates unique IDs on each call", func(t *testing.T) {
		if newTestItem(PresenceHave).ID == newTestItem(PresenceHave).ID {
			t.Fatal("expected unique IDs")
		}
	})
}

func TestItem_ConsumeSpoilRestore(t *testing.T) {
	item := newTestItem(PresenceHave)

	item.Consume(testNow)
	if !item.IsConsumed() || item.IsSpoiled() || !item.IsArchived() {
		t.Fatal("expected consumed and archived")
	}

	item.Spoil(testNow)
	if item.IsConsumed() || !item.IsSpoiled() {
		t.Fatal("spoiling replaces the consumed mark")
	}

	item.Restore()
	if item.IsArchived() {
		t.Fatal("Restore must clear consumed and spoiled")
	}
}

func TestItem_SetPresence(t *testing.T) {
	item := newTestItem(PresenceNeed)

	item.SetPresence(PresenceHave, testNow)
	if item.PurchasedAt == nil || !item.PurchasedAt.Equal(testNow) {
		t.Fatalf("expected PurchasedAt=%v, got %v", testNow, item.PurchasedAt)
	}

	item.SetPresence(PresenceNeed, testNow)
	if item.PurchasedAt != nil {
		t.Fatal("moving to NEED must clear PurchasedAt")
	}
}

func TestItem_SetCount(t *testing.T) {
	tests := []struct {
		name         string
		count        int
		zeroConsumes bool
		wantCount    int
		wantConsumed bool
	}{
		{"positive count", 3, true, 3, false},
		{"zero without preference", 0, false, 0, false},
		{"zero with preference consumes", 0, true, 0, true},
		{"negative clamps to zero", -2, true, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := newTestItem(PresenceHave)
			item.SetCount(tt.count, tt.zeroConsumes, testNow)
			if item.Count != tt.wantCount {
				t.Fatalf("count = %d, want %d", item.Count, tt.wantCount)
			}
			if item.IsConsumed() != tt.wantConsumed {
				t.Fatalf("consumed = %v, want %v", item.IsConsumed(), tt.wantConsumed)
			}
		})
	}
}

func TestItem_SetExpiration_NormalizesToDate(t *testing.T) {
	item := newTestItem(PresenceHave)
	berlin := time.FixedZone("CEST", 2*3600)
	d := time.Date(2024, 6, 4, 23, 45, 0, 0, berlin)

	item.SetExpiration(&d)
	want := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)
	if !item.ExpiresAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, item.ExpiresAt)
	}

	item.SetExpiration(nil)
	if item.HasExpiration() {
		t.Fatal("nil must clear the expiration")
	}
}

func TestNewDefaultCategory_StableID(t *testing.T) {
	a := NewDefaultCategory("Dairy", "dairy.png")
	b := NewDefaultCategory("dairy", "other.png")
	if a.ID != b.ID {
		t.Fatal("category IDs must be derived from the case-folded name")
	}
	if NewDefaultCategory("Produce", "").ID == a.ID {
		t.Fatal("different names must give different IDs")
	}
}
