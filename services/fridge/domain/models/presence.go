package models

import (
	"fmt"
	"strings"
)

// Presence says whether an item still has to be bought or is already at home.
type Presence string

const (
	PresenceNeed Presence = "NEED"
	PresenceHave Presence = "HAVE"
)

// ParsePresence accepts NEED or HAVE in any case.
func ParsePresence(s string) (Presence, error) {
	switch p := Presence(strings.ToUpper(strings.TrimSpace(s))); p {
	case PresenceNeed, PresenceHave:
		return p, nil
	default:
		return "", fmt.Errorf("unknown presence %q", s)
	}
}

// Flip returns the opposite presence.
func (p Presence) Flip() Presence {
	if p == PresenceHave {
		return PresenceNeed
	}
	return PresenceHave
}

func (p Presence) String() string {
	return string(p)
}
