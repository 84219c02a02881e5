package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

func TestSameNamedItems(t *testing.T) {
	hh, entry := uuid.New(), uuid.New()
	target := models.NewItem(hh, entry, "Milk", models.PresenceHave)
	onList := models.NewItem(hh, entry, "milk", models.PresenceNeed)
	alsoHave := models.NewItem(hh, entry, "Milk", models.PresenceHave)
	archived := models.NewItem(hh, entry, "Milk", models.PresenceNeed)
	archived.Spoil(target.CreatedAt)

	got := SameNamedItems([]*models.Item{target, onList, alsoHave, archived}, target)
	if len(got) != 1 || got[0].ID != onList.ID {
		t.Fatalf("expected only the NEED milk, got %d items", len(got))
	}
}

func TestSimilarNamedItems(t *testing.T) {
	hh, entry := uuid.New(), uuid.New()
	target := models.NewItem(hh, entry, "Oat Milk", models.PresenceHave)

	tests := []struct {
		name  string
		other models.Name
		want  bool
	}{
		{"shares a word", "Whole Milk", true},
		{"case-insensitive word", "OAT flakes", true},
		{"exact same name is excluded", "oat milk", false},
		{"no shared word", "Cheddar", false},
		{"substring is not a word match", "Milkshake", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := models.NewItem(hh, entry, tt.other, models.PresenceHave)
			got := SimilarNamedItems([]*models.Item{target, other}, target)
			if (len(got) == 1) != tt.want {
				t.Fatalf("SimilarNamedItems(%q) matched=%v, want %v", tt.other, len(got) == 1, tt.want)
			}
		})
	}
}

func TestSimilarNamedItems_SingleRuneTokensIgnored(t *testing.T) {
	hh, entry := uuid.New(), uuid.New()
	target := models.NewItem(hh, entry, "A", models.PresenceHave)
	other := models.NewItem(hh, entry, "A B", models.PresenceHave)
	if got := SimilarNamedItems([]*models.Item{other}, target); got != nil {
		t.Fatalf("expected nil, got %d items", len(got))
	}
}
