package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpirationWindow(t *testing.T) {
	today := date(2024, time.June, 1)
	rules := ExpirationRules{SoonDays: 3}

	tests := []struct {
		name    string
		expires time.Time
		want    ExpirationState
	}{
		{"yesterday is expired", date(2024, time.May, 31), StateExpired},
		{"today is not yet expired", today, StateFresh},
		{"tomorrow is expiring soon", date(2024, time.June, 2), StateExpiringSoon},
		{"last day of window is expiring soon", date(2024, time.June, 4), StateExpiringSoon},
		{"day after window is fresh", date(2024, time.June, 5), StateFresh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := models.NewItem(uuid.New(), uuid.New(), "Yogurt", models.PresenceHave)
			item.SetExpiration(&tt.expires)
			if got := Classify(item, today, rules); got != tt.want {
				t.Fatalf("Classify(%s) = %s, want %s", tt.expires.Format(time.DateOnly), got, tt.want)
			}
		})
	}
}

func TestIsExpired_SameDay(t *testing.T) {
	today := date(2024, time.June, 1)

	if IsExpired(today, today, false) {
		t.Fatal("without same-day rule today must not be expired")
	}
	if !IsExpired(today, today, true) {
		t.Fatal("with same-day rule today must be expired")
	}
	if IsExpiringSoon(today, today, ExpirationRules{SoonDays: 3, SameDayExpired: true}) {
		t.Fatal("an expired date is never expiring soon")
	}
}

// Sweeps dates around the window, across a month boundary, and checks both
// predicates against day offsets from today.
func TestExpirationClassesNeverOverlap(t *testing.T) {
	today := date(2024, time.May, 30)
	for w := 0; w <= 5; w++ {
		for _, sameDay := range []bool{false, true} {
			rules := ExpirationRules{SoonDays: w, SameDayExpired: sameDay}
			for off := -3; off <= w+3; off++ {
				d := today.AddDate(0, 0, off)
				expired := IsExpired(d, today, sameDay)
				soon := IsExpiringSoon(d, today, rules)

				wantExpired := off < 0 || (sameDay && off == 0)
				wantSoon := off > 0 && off <= w
				if expired && soon {
					t.Fatalf("W=%d sameDay=%v D=today%+d is both expired and expiring soon", w, sameDay, off)
				}
				if expired != wantExpired {
					t.Fatalf("W=%d sameDay=%v D=today%+d: expired=%v, want %v", w, sameDay, off, expired, wantExpired)
				}
				if soon != wantSoon {
					t.Fatalf("W=%d sameDay=%v D=today%+d: expiring soon=%v, want %v", w, sameDay, off, soon, wantSoon)
				}
			}
		}
	}
}

func TestIsExpiringSoon_ZeroWindow(t *testing.T) {
	today := date(2024, time.June, 1)
	if IsExpiringSoon(date(2024, time.June, 2), today, ExpirationRules{SoonDays: 0}) {
		t.Fatal("zero-day window must never report expiring soon")
	}
}

func TestToday_UsesLocation(t *testing.T) {
	// 23:30 UTC on May 31 is already June 1 in Berlin.
	now := time.Date(2024, time.May, 31, 23, 30, 0, 0, time.UTC)
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	if got := Today(now, berlin); !got.Equal(date(2024, time.June, 1)) {
		t.Fatalf("Today(Berlin) = %v", got)
	}
	if got := Today(now, nil); !got.Equal(date(2024, time.May, 31)) {
		t.Fatalf("Today(nil) = %v", got)
	}
}

func TestBuildReport(t *testing.T) {
	today := date(2024, time.June, 1)
	rules := ExpirationRules{SoonDays: 2}
	hh, entry := uuid.New(), uuid.New()

	mk := func(name models.Name, p models.Presence, expires *time.Time) *models.Item {
		item := models.NewItem(hh, entry, name, p)
		item.SetExpiration(expires)
		return item
	}
	past, soon, later := date(2024, time.May, 20), date(2024, time.June, 2), date(2024, time.July, 1)

	expired := mk("Milk", models.PresenceHave, &past)
	expiring := mk("Cheese", models.PresenceHave, &soon)
	fresh := mk("Jam", models.PresenceHave, &later)
	undated := mk("Salt", models.PresenceHave, nil)
	needed := mk("Bread", models.PresenceNeed, &past)
	eaten := mk("Apple", models.PresenceHave, &past)
	eaten.Consume(today)

	r := BuildReport([]*models.Item{expired, expiring, fresh, undated, needed, eaten}, today, rules)

	check := func(label string, got []*models.Item, want ...*models.Item) {
		t.Helper()
		if len(got) != len(want) {
			t.Fatalf("%s: got %d items, want %d", label, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i].ID {
				t.Fatalf("%s[%d] = %s, want %s", label, i, got[i].Name, want[i].Name)
			}
		}
	}
	check("expired", r.Expired, expired)
	check("expiring soon", r.ExpiringSoon, expiring)
	check("fresh", r.Fresh, fresh)
	check("undated", r.Undated, undated)
	check("needed", r.Needed, needed)
}
