package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogContents(t *testing.T) {
	assert.Len(t, Items(), 17)
	assert.Len(t, Categories(), 8)
	assert.Equal(t, AllCategories, Categories()[0].ID)
}

func TestItems_ReturnsCopy(t *testing.T) {
	list := Items()
	list[0].Name = "changed"

	assert.Equal(t, "3-Seat Sofa", Items()[0].Name)
}

func TestFind(t *testing.T) {
	it, ok := Find("bed-2")
	require.True(t, ok)
	assert.Equal(t, "Double Bed", it.Name)
	assert.Equal(t, 150.0, it.Width)
	assert.Equal(t, 200.0, it.Height)

	_, ok = Find("bed-99")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     []string
	}{
		{name: "everything", search: "", category: AllCategories, want: nil},
		{name: "case insensitive", search: "CHAIR", category: "", want: []string{"chair-1", "chair-2"}},
		{name: "category only", search: "", category: "lighting", want: []string{"lamp-1", "lamp-2"}},
		{name: "search within category", search: "door", category: "architectural", want: []string{"door-1", "door-2"}},
		{name: "mismatched category", search: "sofa", category: "tables", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.search, tt.category)
			if tt.want == nil {
				assert.Len(t, got, len(Items()))
				return
			}
			ids := make([]string, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFillColor(t *testing.T) {
	assert.Equal(t, "#8B4513", Item{Color: "#8B4513"}.FillColor())
	assert.Equal(t, DefaultColor, Item{}.FillColor())
}
