package models

import (
	"fmt"
	"strings"

	"github.com/pyamsoft/fridge/services/butler/domain"
)

// Kind is the category of a reminder. Throttling is tracked per kind.
type Kind string

const (
	KindNearby   Kind = "nearby"
	KindExpiring Kind = "expiring"
	KindExpired  Kind = "expired"
	KindNeeded   Kind = "needed"
	KindNightly  Kind = "nightly"
)

// Kinds lists every kind in a stable order.
var Kinds = []Kind{KindNearby, KindExpiring, KindExpired, KindNeeded, KindNightly}

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, s)
}

func (k Kind) String() string { return string(k) }
