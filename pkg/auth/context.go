package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const householdIDKey contextKey = "household_id"

// ErrHouseholdIDNotFound is returned when no household is bound to the request.
// Handlers should return 401 when this error occurs.
var ErrHouseholdIDNotFound = errors.New("household_id not found in context")

// HouseholdIDFromCtx extracts the authenticated household ID from the request context.
// Returns uuid.Nil and ErrHouseholdIDNotFound for unauthenticated requests.
func HouseholdIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(householdIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrHouseholdIDNotFound
	}
	return id, nil
}

// WithHouseholdID returns a new context with the given household attached.
func WithHouseholdID(ctx context.Context, householdID uuid.UUID) context.Context {
	return context.WithValue(ctx, householdIDKey, householdID)
}
