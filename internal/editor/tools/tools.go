package tools

import (
	"errors"
	"fmt"

	"floorplan-editor/internal/editor/catalog"
	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

var (
	ErrUnknownTool = errors.New("unknown tool")
	ErrEmptyStroke = errors.New("stroke needs at least one point")
)

// ============================================================
// Tools
// ============================================================

type Tool string

const (
	Select    Tool = "select"
	Wall      Tool = "wall"
	Room      Tool = "room"
	Furniture Tool = "furniture"
	Text      Tool = "text"
	Rectangle Tool = "rectangle"
	Circle    Tool = "circle"
	Line      Tool = "line"
	Measure   Tool = "measure"
)

var all = []Tool{Select, Wall, Room, Furniture, Text, Rectangle, Circle, Line, Measure}

func All() []Tool {
	out := make([]Tool, len(all))
	copy(out, all)
	return out
}

func Parse(s string) (Tool, error) {
	for _, t := range all {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, s)
}

// Mode is how pointer gestures are interpreted on the canvas.
type Mode int

const (
	ModeSelect Mode = iota
	ModeFreeDraw
	ModeMeasure
)

func (m Mode) String() string {
	switch m {
	case ModeFreeDraw:
		return "draw"
	case ModeMeasure:
		return "measure"
	}
	return "select"
}

type Brush struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
}

// Effect describes what entering a tool does to the canvas.
type Effect struct {
	Mode  Mode
	Brush Brush
	// Stamp reports that the tool places a default object immediately.
	Stamp bool
}

var (
	wallBrush = Brush{Width: 4, Color: "#374151"}
	roomBrush = Brush{Width: 2, Color: "#3b82f6"}
)

func (t Tool) Effect() Effect {
	switch t {
	case Wall:
		return Effect{Mode: ModeFreeDraw, Brush: wallBrush}
	case Room:
		return Effect{Mode: ModeFreeDraw, Brush: roomBrush}
	case Measure:
		return Effect{Mode: ModeMeasure}
	case Text, Rectangle, Circle, Furniture:
		return Effect{Mode: ModeSelect, Stamp: true}
	}
	return Effect{Mode: ModeSelect}
}

// ============================================================
// Stamps
// ============================================================

const (
	textColor   = "#374151"
	shapeStroke = "#6b7280"
)

func NewText() *models.Text {
	t := &models.Text{
		Base:       models.NewBase(100, 100),
		Text:       "Click to edit",
		FontFamily: "Arial",
		FontSize:   16,
	}
	t.Fill = textColor
	t.StrokeWidth = 1
	return t
}

func NewRectangle() *models.Rect {
	r := &models.Rect{Base: models.NewBase(200, 200), Width: 100, Height: 100}
	r.Fill = "transparent"
	r.Stroke = shapeStroke
	r.StrokeWidth = 2
	return r
}

func NewCircle() *models.Ellipse {
	e := &models.Ellipse{Base: models.NewBase(300, 300), RX: 50, RY: 50}
	e.Fill = "transparent"
	e.Stroke = shapeStroke
	e.StrokeWidth = 2
	return e
}

// NewFurniture stamps a catalog item. The placed rectangle keeps only the
// item id as a tag; it has no link back to the catalog entry.
func NewFurniture(item catalog.Item) *models.Rect {
	r := &models.Rect{Base: models.NewBase(100, 100), Width: item.Width, Height: item.Height}
	r.Name = item.Name
	r.Fill = item.FillColor()
	r.Stroke = textColor
	r.StrokeWidth = 1
	r.Data = map[string]string{"type": "furniture", "itemId": item.ID}
	return r
}

// NewStroke converts a freehand polyline into a single path object.
func NewStroke(points []models.Point, brush Brush) (*models.Path, error) {
	if len(points) == 0 {
		return nil, ErrEmptyStroke
	}
	d, origin, w, h := geometry.BuildPath(points)
	p := &models.Path{Base: models.NewBase(origin.X, origin.Y), D: d, Width: w, Height: h}
	p.Stroke = brush.Color
	p.StrokeWidth = brush.Width
	return p, nil
}
