// Package preferences stores per-household reminder settings and
// last-notified timestamps in Redis.
package preferences

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSettings indicates a settings value is out of range.
var ErrInvalidSettings = errors.New("invalid settings")

// Defaults used when a household has never saved a value.
const (
	DefaultExpiringSoonDays        = 1
	DefaultNotificationPeriodHours = 2
	DefaultQuietStartHour          = 22
	DefaultQuietEndHour            = 7
	DefaultNearbyRangeMeters       = 1600
)

// Settings are the household-tunable knobs for expiration classification and
// reminder delivery.
type Settings struct {
	ExpiringSoonDays        int     `json:"expiring_soon_days" redis:"expiring_soon_days"`
	SameDayExpired          bool    `json:"same_day_expired" redis:"same_day_expired"`
	ZeroCountConsumed       bool    `json:"zero_count_consumed" redis:"zero_count_consumed"`
	NotificationPeriodHours int     `json:"notification_period_hours" redis:"notification_period_hours"`
	DoNotDisturb            bool    `json:"do_not_disturb" redis:"do_not_disturb"`
	QuietStartHour          int     `json:"quiet_start_hour" redis:"quiet_start_hour"`
	QuietEndHour            int     `json:"quiet_end_hour" redis:"quiet_end_hour"`
	NearbyRangeMeters       float64 `json:"nearby_range_meters" redis:"nearby_range_meters"`
}

// Defaults returns the settings applied to a household with no saved values.
func Defaults() Settings {
	return Settings{
		ExpiringSoonDays:        DefaultExpiringSoonDays,
		SameDayExpired:          false,
		ZeroCountConsumed:       false,
		NotificationPeriodHours: DefaultNotificationPeriodHours,
		DoNotDisturb:            true,
		QuietStartHour:          DefaultQuietStartHour,
		QuietEndHour:            DefaultQuietEndHour,
		NearbyRangeMeters:       DefaultNearbyRangeMeters,
	}
}

// NotificationPeriod is the minimum gap between two notifications of one kind.
func (s Settings) NotificationPeriod() time.Duration {
	return time.Duration(s.NotificationPeriodHours) * time.Hour
}

// Validate checks every field against its allowed range.
func (s Settings) Validate() error {
	switch {
	case s.ExpiringSoonDays < 0 || s.ExpiringSoonDays > 30:
		return fmt.Errorf("%w: expiring_soon_days must be within 0..30", ErrInvalidSettings)
	case s.NotificationPeriodHours < 1 || s.NotificationPeriodHours > 168:
		return fmt.Errorf("%w: notification_period_hours must be within 1..168", ErrInvalidSettings)
	case s.QuietStartHour < 0 || s.QuietStartHour > 23:
		return fmt.Errorf("%w: quiet_start_hour must be within 0..23", ErrInvalidSettings)
	case s.QuietEndHour < 0 || s.QuietEndHour > 23:
		return fmt.Errorf("%w: quiet_end_hour must be within 0..23", ErrInvalidSettings)
	case s.NearbyRangeMeters < 50 || s.NearbyRangeMeters > 50000:
		return fmt.Errorf("%w: nearby_range_meters must be within 50..50000", ErrInvalidSettings)
	}
	return nil
}
