package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCategories(t *testing.T) {
	cats, err := DefaultCategories()
	require.NoError(t, err)
	require.NotEmpty(t, cats)
	for _, c := range cats {
		assert.True(t, c.IsDefault, c.Name)
		assert.NotEmpty(t, c.Thumbnail, c.Name)
	}
}

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{"empty document", "", 0, false},
		{"two categories", "categories:\n  - name: Dairy\n  - name: Produce\n", 2, false},
		{"blank name", "categories:\n  - name: '  '\n", 0, true},
		{"duplicate by case", "categories:\n  - name: Dairy\n  - name: dairy\n", 0, true},
		{"not yaml", "categories: [", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cats, err := ParseCategories([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, cats, tt.want)
		})
	}
}
