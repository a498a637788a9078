package catalog

import "strings"

// ============================================================
// Furniture catalog
// ============================================================

// Item is a read-only template for stamping a furniture rectangle.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Icon     string  `json:"icon"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Color    string  `json:"color,omitempty"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllCategories matches every item in Filter.
const AllCategories = "all"

// DefaultColor is used for items without a colour of their own.
const DefaultColor = "#6b7280"

var items = []Item{
	{ID: "sofa-1", Name: "3-Seat Sofa", Category: "seating", Icon: "sofa", Width: 200, Height: 80, Color: "#8B4513"},
	{ID: "chair-1", Name: "Dining Chair", Category: "seating", Icon: "chair", Width: 50, Height: 50, Color: "#654321"},
	{ID: "chair-2", Name: "Office Chair", Category: "seating", Icon: "chair", Width: 60, Height: 60, Color: "#4169E1"},

	{ID: "table-1", Name: "Dining Table", Category: "tables", Icon: "table", Width: 120, Height: 80, Color: "#8B4513"},
	{ID: "table-2", Name: "Coffee Table", Category: "tables", Icon: "table", Width: 100, Height: 60, Color: "#654321"},
	{ID: "table-3", Name: "Desk", Category: "tables", Icon: "table", Width: 120, Height: 60, Color: "#2F4F4F"},

	{ID: "bed-1", Name: "Single Bed", Category: "bedroom", Icon: "bed", Width: 100, Height: 200, Color: "#F5F5DC"},
	{ID: "bed-2", Name: "Double Bed", Category: "bedroom", Icon: "bed", Width: 150, Height: 200, Color: "#F5F5DC"},
	{ID: "bed-3", Name: "King Bed", Category: "bedroom", Icon: "bed", Width: 180, Height: 200, Color: "#F5F5DC"},

	{ID: "tv-1", Name: `TV (32")`, Category: "electronics", Icon: "tv", Width: 80, Height: 50, Color: "#000000"},
	{ID: "tv-2", Name: `TV (55")`, Category: "electronics", Icon: "tv", Width: 120, Height: 70, Color: "#000000"},

	{ID: "lamp-1", Name: "Table Lamp", Category: "lighting", Icon: "lamp", Width: 20, Height: 40, Color: "#FFD700"},
	{ID: "lamp-2", Name: "Floor Lamp", Category: "lighting", Icon: "lamp", Width: 20, Height: 60, Color: "#FFD700"},

	{ID: "plant-1", Name: "Potted Plant", Category: "decor", Icon: "plant", Width: 30, Height: 40, Color: "#228B22"},

	{ID: "door-1", Name: "Single Door", Category: "architectural", Icon: "door", Width: 80, Height: 8, Color: "#8B4513"},
	{ID: "door-2", Name: "Double Door", Category: "architectural", Icon: "door", Width: 160, Height: 8, Color: "#8B4513"},
	{ID: "window-1", Name: "Window", Category: "architectural", Icon: "window", Width: 100, Height: 8, Color: "#87CEEB"},
}

var categories = []Category{
	{ID: AllCategories, Name: "All Items"},
	{ID: "seating", Name: "Seating"},
	{ID: "tables", Name: "Tables"},
	{ID: "bedroom", Name: "Bedroom"},
	{ID: "electronics", Name: "Electronics"},
	{ID: "lighting", Name: "Lighting"},
	{ID: "decor", Name: "Decor"},
	{ID: "architectural", Name: "Architectural"},
}

// Items returns a copy of the whole catalog.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func Find(id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Filter matches a case-insensitive name substring within a category.
// An empty category behaves like AllCategories.
func Filter(search, category string) []Item {
	needle := strings.ToLower(search)
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if category != "" && category != AllCategories && it.Category != category {
			continue
		}
		if !strings.Contains(strings.ToLower(it.Name), needle) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// FillColor is the colour a placed copy of the item is painted with.
func (it Item) FillColor() string {
	if it.Color == "" {
		return DefaultColor
	}
	return it.Color
}
