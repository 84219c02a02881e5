package services

import (
	"strings"
	"unicode"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

// SameNamedItems returns live items named like target whose presence differs,
// e.g. the HAVE "Milk" matching a NEED "Milk" on the shopping list.
func SameNamedItems(items []*models.Item, target *models.Item) []*models.Item {
	var out []*models.Item
	for _, item := range items {
		if item.ID == target.ID || item.IsArchived() {
			continue
		}
		if item.Presence != target.Presence && item.Name.EqualFold(target.Name) {
			out = append(out, item)
		}
	}
	return out
}

// SimilarNamedItems returns live items sharing at least one word with
// target's name without being named exactly the same.
func SimilarNamedItems(items []*models.Item, target *models.Item) []*models.Item {
	want := tokens(target.Name.String())
	if len(want) == 0 {
		return nil
	}
	var out []*models.Item
	for _, item := range items {
		if item.ID == target.ID || item.IsArchived() || item.Name.EqualFold(target.Name) {
			continue
		}
		for tok := range tokens(item.Name.String()) {
			if _, ok := want[tok]; ok {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func tokens(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			out[f] = struct{}{}
		}
	}
	return out
}
