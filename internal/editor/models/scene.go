package models

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Fixed canvas geometry.
const (
	CanvasWidth  = 1200
	CanvasHeight = 800
	GridSize     = 20

	BackgroundColor = "#ffffff"
	GridColor       = "#e5e7eb"

	MinZoom    = 0.1
	MaxZoom    = 3.0
	zoomFactor = 1.1
)

var (
	ErrObjectNotFound = errors.New("object not found")
	ErrDuplicateID    = errors.New("duplicate object id")
	ErrNotSelectable  = errors.New("object is not selectable")
)

// ============================================================
// Scene
// ============================================================

type Background struct {
	Color    string  `json:"color"`
	Grid     bool    `json:"grid"`
	GridSize float64 `json:"gridSize,omitempty"`
}

type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// Scene is an ordered set of objects; the last object paints on top.
type Scene struct {
	Width      float64
	Height     float64
	Background Background
	Viewport   Viewport

	objects []Object
	active  string
}

// NewScene returns an empty canvas with the grid background enabled.
func NewScene() *Scene {
	return &Scene{
		Width:      CanvasWidth,
		Height:     CanvasHeight,
		Background: Background{Color: BackgroundColor, Grid: true, GridSize: GridSize},
		Viewport:   Viewport{Zoom: 1},
	}
}

// Add appends obj at the front of the paint order. An empty id is filled in.
func (s *Scene) Add(obj Object) (string, error) {
	attrs := obj.Attrs()
	if attrs.ID == "" {
		attrs.ID = uuid.NewString()
	}
	if s.IndexOf(attrs.ID) >= 0 {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, attrs.ID)
	}
	s.objects = append(s.objects, obj)
	return attrs.ID, nil
}

func (s *Scene) Remove(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)
	if s.active == id {
		s.active = ""
	}
	return true
}

// Object returns a detached copy of the object with the given id.
func (s *Scene) Object(id string) (Object, bool) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return nil, false
	}
	return s.objects[idx].Clone(), true
}

// Update runs fn against the live object. The object id cannot be changed.
func (s *Scene) Update(id string, fn func(Object) error) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	obj := s.objects[idx]
	if err := fn(obj); err != nil {
		return err
	}
	obj.Attrs().ID = id
	return nil
}

// Objects returns copies of every object in paint order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	for i, obj := range s.objects {
		out[i] = obj.Clone()
	}
	return out
}

func (s *Scene) IDs() []string {
	out := make([]string, len(s.objects))
	for i, obj := range s.objects {
		out[i] = obj.Attrs().ID
	}
	return out
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) IndexOf(id string) int {
	for i, obj := range s.objects {
		if obj.Attrs().ID == id {
			return i
		}
	}
	return -1
}

// ============================================================
// Z-order
// ============================================================

func (s *Scene) BringToFront(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	obj := s.objects[idx]
	s.objects = append(s.objects[:idx], s.objects[idx+1:]...)
	s.objects = append(s.objects, obj)
	return true
}

func (s *Scene) SendToBack(id string) bool {
	idx := s.IndexOf(id)
	if idx < 0 {
		return false
	}
	obj := s.objects[idx]
	copy(s.objects[1:idx+1], s.objects[:idx])
	s.objects[0] = obj
	return true
}

// Duplicate clones the object with a fresh id, offsets it and selects it.
func (s *Scene) Duplicate(id string, dx, dy float64) (Object, error) {
	idx := s.IndexOf(id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	dup := s.objects[idx].Clone()
	dup.Attrs().ID = ""
	dup.Translate(dx, dy)
	newID, err := s.Add(dup)
	if err != nil {
		return nil, err
	}
	s.active = ""
	if dup.Attrs().Selectable {
		s.active = newID
	}
	return dup.Clone(), nil
}

// ============================================================
// Selection
// ============================================================

func (s *Scene) Select(id string) error {
	idx := s.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	if !s.objects[idx].Attrs().Selectable {
		return fmt.Errorf("%w: %s", ErrNotSelectable, id)
	}
	s.active = id
	return nil
}

func (s *Scene) Active() (string, bool) {
	return s.active, s.active != ""
}

func (s *Scene) ClearSelection() {
	s.active = ""
}

// ============================================================
// Canvas commands
// ============================================================

// Clear drops every object and resets the background to plain white.
func (s *Scene) Clear() {
	s.objects = nil
	s.active = ""
	s.Background = Background{Color: BackgroundColor}
}

func (s *Scene) SetGrid(on bool) {
	s.Background.Grid = on
	if on && s.Background.GridSize == 0 {
		s.Background.GridSize = GridSize
	}
}

func (s *Scene) ToggleGrid() bool {
	s.SetGrid(!s.Background.Grid)
	return s.Background.Grid
}

func (s *Scene) SetZoom(z float64) {
	if math.IsNaN(z) {
		z = 1
	}
	s.Viewport.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

func (s *Scene) ZoomIn()    { s.SetZoom(s.Viewport.Zoom * zoomFactor) }
func (s *Scene) ZoomOut()   { s.SetZoom(s.Viewport.Zoom / zoomFactor) }
func (s *Scene) ResetZoom() { s.SetZoom(1) }

func (s *Scene) Pan(dx, dy float64) {
	s.Viewport.PanX += dx
	s.Viewport.PanY += dy
}

// Clone returns a deep copy that shares nothing with s.
func (s *Scene) Clone() *Scene {
	out := *s
	out.objects = make([]Object, len(s.objects))
	for i, obj := range s.objects {
		out.objects[i] = obj.Clone()
	}
	return &out
}
