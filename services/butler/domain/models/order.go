package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/butler/domain"
)

// OrderType selects which runner an order executes.
type OrderType string

const (
	OrderItem     OrderType = "item"
	OrderNightly  OrderType = "nightly"
	OrderLocation OrderType = "location"
)

// Order is a request for the butler to run reminders for one household.
type Order struct {
	Type        OrderType `json:"type"`
	HouseholdID uuid.UUID `json:"household_id"`
	// Force bypasses throttling and do-not-disturb.
	Force bool `json:"force"`
	// Stores names the nearby stores for location orders.
	Stores []string `json:"stores,omitempty"`
}

// Validate rejects orders with an unknown type or no household.
func (o Order) Validate() error {
	switch o.Type {
	case OrderItem, OrderNightly, OrderLocation:
	default:
		return fmt.Errorf("%w: unknown type %q", domain.ErrInvalidOrder, o.Type)
	}
	if o.HouseholdID == uuid.Nil {
		return fmt.Errorf("%w: household is required", domain.ErrInvalidOrder)
	}
	return nil
}

// Tag identifies the order slot. Placing an order replaces any pending order
// with the same tag, so there is at most one per household and type.
func (o Order) Tag() string {
	return "butler-" + string(o.Type) + "-" + o.HouseholdID.String()
}

// ParseOrderType accepts an order type in any case.
func ParseOrderType(s string) (OrderType, error) {
	t := OrderType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case OrderItem, OrderNightly, OrderLocation:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", domain.ErrInvalidOrder, s)
}
