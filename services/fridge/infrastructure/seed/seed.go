// Package seed loads the embedded default category set.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pyamsoft/fridge/services/fridge/domain/models"
)

//go:embed categories.yaml
var categoriesYAML []byte

type categoryFile struct {
	Categories []struct {
		Name      string `yaml:"name"`
		Thumbnail string `yaml:"thumbnail"`
	} `yaml:"categories"`
}

// DefaultCategories returns the embedded default categories.
func DefaultCategories() ([]*models.Category, error) {
	return ParseCategories(categoriesYAML)
}

// ParseCategories decodes a category YAML document. Duplicate names
// (case-insensitive) are rejected since they would map to the same ID.
func ParseCategories(raw []byte) ([]*models.Category, error) {
	var f categoryFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	out := make([]*models.Category, 0, len(f.Categories))
	seen := make(map[string]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		name, err := models.NewName(c.Name)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		cat := models.NewDefaultCategory(name, c.Thumbnail)
		if _, dup := seen[cat.ID.String()]; dup {
			return nil, fmt.Errorf("category %d: duplicate name %q", i, name)
		}
		seen[cat.ID.String()] = struct{}{}
		out = append(out, cat)
	}
	return out, nil
}
