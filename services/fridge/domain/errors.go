package domain

import "errors"

// Sentinel errors for the fridge domain. Use errors.Is() to check these.
var (
	// ErrHouseholdNotFound indicates the household does not exist.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrEntryNotFound indicates the requested entry does not exist in the household.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrItemNotFound indicates the requested item does not exist in the household.
	ErrItemNotFound = errors.New("item not found")

	// ErrCategoryNotFound indicates the requested category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrEntryAlreadyExists indicates an entry with the same id already exists.
	ErrEntryAlreadyExists = errors.New("entry already exists")

	// ErrInvalidName indicates an entry or item name is blank or too long.
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidCount indicates a negative item count.
	ErrInvalidCount = errors.New("invalid count")

	// ErrInvalidPresence indicates a presence other than NEED or HAVE.
	ErrInvalidPresence = errors.New("invalid presence")

	// ErrInvalidTimezone indicates a household timezone that is not a known IANA zone.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrItemNotReal indicates a placeholder item was asked to do something only
	// committed items can do, such as being deleted.
	ErrItemNotReal = errors.New("item is not committed")

	// ErrEntryArchived indicates a write against an archived entry.
	ErrEntryArchived = errors.New("entry is archived")
)
