package services

import (
	"time"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// ExpirationRules are the household settings that drive classification.
type ExpirationRules struct {
	// SoonDays is the lookahead window W: dates in (today, today+W] are expiring soon.
	SoonDays int
	// SameDayExpired treats an item expiring today as already expired.
	SameDayExpired bool
}

// ExpirationState is the classification of one item.
type ExpirationState string

const (
	StateUndated      ExpirationState = "undated"
	StateFresh        ExpirationState = "fresh"
	StateExpiringSoon ExpirationState = "expiring_soon"
	StateExpired      ExpirationState = "expired"
)

// Today returns the calendar date of now as seen in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now.In(loc))
}

// IsExpired reports whether a date has passed. With sameDay the expiration
// day itself counts as expired; without it only strictly earlier days do.
func IsExpired(expires, today time.Time, sameDay bool) bool {
	d := models.DateOf(expires)
	if sameDay {
		return !d.After(today)
	}
	return d.Before(today)
}

// IsExpiringSoon reports whether today < date <= today+SoonDays.
// An expired date is never expiring soon.
func IsExpiringSoon(expires, today time.Time, rules ExpirationRules) bool {
	if IsExpired(expires, today, rules.SameDayExpired) {
		return false
	}
	d := models.DateOf(expires)
	limit := today.AddDate(0, 0, rules.SoonDays)
	return d.After(today) && !d.After(limit)
}

// Classify returns the expiration state of item on today.
func Classify(item *models.Item, today time.Time, rules ExpirationRules) ExpirationState {
	if !item.HasExpiration() {
		return StateUndated
	}
	switch {
	case IsExpired(*item.ExpiresAt, today, rules.SameDayExpired):
		return StateExpired
	case IsExpiringSoon(*item.ExpiresAt, today, rules):
		return StateExpiringSoon
	default:
		return StateFresh
	}
}

// ExpirationReport partitions live items. HAVE items land in exactly one of
// Expired, ExpiringSoon, Fresh or Undated; NEED items land in Needed.
type ExpirationReport struct {
	Expired      []*models.Item
	ExpiringSoon []*models.Item
	Fresh        []*models.Item
	Undated      []*models.Item
	Needed       []*models.Item
}

// BuildReport classifies items on today. Consumed or spoiled items are skipped.
func BuildReport(items []*models.Item, today time.Time, rules ExpirationRules) ExpirationReport {
	var r ExpirationReport
	for _, item := range items {
		if item.IsArchived() {
			continue
		}
		if item.Presence == models.PresenceNeed {
			r.Needed = append(r.Needed, item)
			continue
		}
		switch Classify(item, today, rules) {
		case StateExpired:
			r.Expired = append(r.Expired, item)
		case StateExpiringSoon:
			r.ExpiringSoon = append(r.ExpiringSoon, item)
		case StateFresh:
			r.Fresh = append(r.Fresh, item)
		default:
			r.Undated = append(r.Undated, item)
		}
	}
	return r
}
