package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 1, hour, minute, 0, 0, time.UTC)
}

func TestPolicy_Check(t *testing.T) {
	p := Policy{Period: 2 * time.Hour, DoNotDisturb: true, QuietStart: 22, QuietEnd: 7}
	last := at(10, 0)

	tests := []struct {
		name   string
		last   time.Time
		now    time.Time
		force  bool
		want   bool
		reason Reason
	}{
		{"inside period", last, at(11, 30), false, false, ReasonThrottled},
		{"after period", last, at(12, 30), false, true, ReasonAllowed},
		{"exactly one period", last, at(12, 0), false, true, ReasonAllowed},
		{"never fired", time.Time{}, at(11, 0), false, true, ReasonAllowed},
		{"quiet late", time.Time{}, at(22, 0), false, false, ReasonQuietHours},
		{"quiet early", time.Time{}, at(6, 59), false, false, ReasonQuietHours},
		{"quiet ends at seven", time.Time{}, at(7, 0), false, true, ReasonAllowed},
		{"force inside period", last, at(10, 5), true, true, ReasonForced},
		{"force in quiet hours", last, at(23, 0), true, true, ReasonForced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := p.Check(tt.last, tt.now, tt.force)
			assert.Equal(t, tt.want, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestPolicy_InQuietHours(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		hour   int
		want   bool
	}{
		{"disabled", Policy{DoNotDisturb: false, QuietStart: 22, QuietEnd: 7}, 23, false},
		{"wrap before midnight", Policy{DoNotDisturb: true, QuietStart: 22, QuietEnd: 7}, 23, true},
		{"wrap after midnight", Policy{DoNotDisturb: true, QuietStart: 22, QuietEnd: 7}, 3, true},
		{"wrap daytime", Policy{DoNotDisturb: true, QuietStart: 22, QuietEnd: 7}, 12, false},
		{"same day window inside", Policy{DoNotDisturb: true, QuietStart: 13, QuietEnd: 15}, 14, true},
		{"same day window end", Policy{DoNotDisturb: true, QuietStart: 13, QuietEnd: 15}, 15, false},
		{"empty window", Policy{DoNotDisturb: true, QuietStart: 5, QuietEnd: 5}, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.InQuietHours(at(tt.hour, 0)))
		})
	}
}
