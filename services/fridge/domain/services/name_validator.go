// Package services contains stateless domain services for the fridge bounded context.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// ValidateName enforces business rules for Name beyond the structural
// constraints enforced by the Name constructor (trimmed, length 1–255).
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - Must not be only whitespace characters
func ValidateName(name models.Name) error {
	s := name.String()

	if s != strings.TrimSpace(s) {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}

	if !name.IsValid() {
		return fmt.Errorf("name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}

	return nil
}

// ValidateItemForCommit performs cross-field validation on an item before it
// is upserted.
func ValidateItemForCommit(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if item.HouseholdID == uuid.Nil {
		return fmt.Errorf("household_id must be set")
	}

	if item.EntryID == uuid.Nil {
		return fmt.Errorf("entry_id must be set")
	}

	if item.Count < 0 {
		return fmt.Errorf("count must not be negative")
	}

	if item.Presence != models.PresenceNeed && item.Presence != models.PresenceHave {
		return fmt.Errorf("presence must be NEED or HAVE")
	}

	return nil
}
