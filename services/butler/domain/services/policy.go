package services

import "time"

// Reason explains a throttle decision. It is recorded as a metric attribute.
type Reason string

const (
	ReasonAllowed    Reason = "allowed"
	ReasonForced     Reason = "forced"
	ReasonQuietHours Reason = "quiet_hours"
	ReasonThrottled  Reason = "throttled"
)

// Decision is the outcome of a throttle check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Policy decides whether a reminder of some kind may be posted.
type Policy struct {
	// Period is the minimum spacing between two posts of the same kind.
	Period time.Duration
	// DoNotDisturb enables the quiet window [QuietStart, QuietEnd).
	DoNotDisturb bool
	QuietStart   int
	QuietEnd     int
}

// Check reports whether a reminder last fired at lastFired may fire at now.
// A zero lastFired means never fired. now must already be in household time.
// A forced check is always allowed.
func (p Policy) Check(lastFired, now time.Time, force bool) Decision {
	if force {
		return Decision{Allowed: true, Reason: ReasonForced}
	}
	if p.InQuietHours(now) {
		return Decision{Reason: ReasonQuietHours}
	}
	if !lastFired.IsZero() && now.Sub(lastFired) < p.Period {
		return Decision{Reason: ReasonThrottled}
	}
	return Decision{Allowed: true, Reason: ReasonAllowed}
}

// InQuietHours reports whether now falls in the do-not-disturb window.
// A window whose start is after its end wraps past midnight.
func (p Policy) InQuietHours(now time.Time) bool {
	if !p.DoNotDisturb || p.QuietStart == p.QuietEnd {
		return false
	}
	h := now.Hour()
	if p.QuietStart > p.QuietEnd {
		return h >= p.QuietStart || h < p.QuietEnd
	}
	return h >= p.QuietStart && h < p.QuietEnd
}
