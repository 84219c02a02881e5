package models

import (
	"strings"

	"github.com/google/uuid"
)

// categoryNamespace derives stable category IDs so re-seeding never duplicates.
var categoryNamespace = uuid.MustParse("5b0e3c1e-4f0a-4b8e-9a57-3f6d2f7c1a10")

// Category labels items, e.g. Dairy or Produce. The default set is seeded
// once per deployment.
type Category struct {
	ID        uuid.UUID
	Name      Name
	Thumbnail string
	IsDefault bool
}

// NewDefaultCategory returns a seeded category whose ID is derived from its name.
func NewDefaultCategory(name Name, thumbnail string) *Category {
	return &Category{
		ID:        uuid.NewSHA1(categoryNamespace, []byte(strings.ToLower(name.String()))),
		Name:      name,
		Thumbnail: thumbnail,
		IsDefault: true,
	}
}

// CategoryWithCount pairs a category with how many live items it holds.
type CategoryWithCount struct {
	Category
	ItemCount int
}
