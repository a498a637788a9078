package service

import (
	"errors"
	"fmt"
	"sync"

	"floorplan-editor/internal/editor/catalog"
	"floorplan-editor/internal/editor/measure"
	"floorplan-editor/internal/editor/models"
	"floorplan-editor/internal/editor/properties"
	"floorplan-editor/internal/editor/tools"
)

var (
	ErrUnknownItem  = errors.New("unknown furniture item")
	ErrUnknownPhase = errors.New("unknown pointer phase")
)

// ============================================================
// Editor
// ============================================================

type Phase string

const (
	PhaseDown Phase = "down"
	PhaseMove Phase = "move"
	PhaseUp   Phase = "up"
)

// PointerResult reports what a pointer event changed.
type PointerResult struct {
	Mode     string          `json:"mode"`
	Created  string          `json:"created,omitempty"`
	Selected string          `json:"selected,omitempty"`
	Measured *measure.Result `json:"measurement,omitempty"`
}

// Editor is one live canvas: the scene plus the interaction state that
// decides what pointer gestures do to it.
type Editor struct {
	mu sync.Mutex

	scene   *models.Scene
	tool    tools.Tool
	effect  tools.Effect
	gesture measure.Gesture

	stroke   []models.Point
	drawing  bool
	dragID   string
	dragLast models.Point
}

func NewEditor() *Editor {
	return &Editor{
		scene:  models.NewScene(),
		tool:   tools.Select,
		effect: tools.Select.Effect(),
	}
}

func (e *Editor) Tool() tools.Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

// SelectTool switches the active tool. Text, rectangle and circle stamp a
// default object which becomes the selection; its snapshot is returned.
func (e *Editor) SelectTool(t tools.Tool) (*properties.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.endGestures()
	e.tool = t
	e.effect = t.Effect()

	var obj models.Object
	switch t {
	case tools.Text:
		obj = tools.NewText()
	case tools.Rectangle:
		obj = tools.NewRectangle()
	case tools.Circle:
		obj = tools.NewCircle()
	default:
		return nil, nil
	}
	snap, err := e.stamp(obj)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PlaceFurniture stamps the catalog item and selects it.
func (e *Editor) PlaceFurniture(itemID string) (properties.Snapshot, error) {
	item, ok := catalog.Find(itemID)
	if !ok {
		return properties.Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stamp(tools.NewFurniture(item))
}

func (e *Editor) stamp(obj models.Object) (properties.Snapshot, error) {
	id, err := e.scene.Add(obj)
	if err != nil {
		return properties.Snapshot{}, err
	}
	if err := e.scene.Select(id); err != nil {
		return properties.Snapshot{}, err
	}
	return properties.Read(e.scene, id)
}

// Pointer routes a pointer event according to the current tool mode.
func (e *Editor) Pointer(phase Phase, x, y float64) (PointerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	res := PointerResult{Mode: e.effect.Mode.String()}
	var err error

	switch e.effect.Mode {
	case tools.ModeFreeDraw:
		err = e.freeDraw(phase, x, y, &res)
	case tools.ModeMeasure:
		err = e.measure(phase, x, y, &res)
	default:
		err = e.pick(phase, x, y, &res)
	}
	return res, err
}

func (e *Editor) freeDraw(phase Phase, x, y float64, res *PointerResult) error {
	p := models.Point{X: x, Y: y}
	switch phase {
	case PhaseDown:
		e.stroke = []models.Point{p}
		e.drawing = true
	case PhaseMove:
		if e.drawing {
			e.stroke = append(e.stroke, p)
		}
	case PhaseUp:
		if !e.drawing {
			return nil
		}
		e.stroke = append(e.stroke, p)
		path, err := tools.NewStroke(e.stroke, e.effect.Brush)
		e.stroke, e.drawing = nil, false
		if err != nil {
			return err
		}
		id, err := e.scene.Add(path)
		if err != nil {
			return err
		}
		res.Created = id
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	return nil
}

func (e *Editor) measure(phase Phase, x, y float64, res *PointerResult) error {
	switch phase {
	case PhaseDown:
		id, err := e.gesture.Down(e.scene, x, y)
		res.Created = id
		return err
	case PhaseMove:
		return e.gesture.Move(e.scene, x, y)
	case PhaseUp:
		out, ok, err := e.gesture.Up(e.scene, x, y)
		if ok {
			res.Measured = &out
			res.Created = out.LabelID
		}
		return err
	}
	return fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
}

// pick selects the top-most object under the pointer and drags it.
func (e *Editor) pick(phase Phase, x, y float64, res *PointerResult) error {
	switch phase {
	case PhaseDown:
		id, ok := e.scene.HitTest(x, y)
		if !ok {
			e.scene.ClearSelection()
			e.dragID = ""
			return nil
		}
		if err := e.scene.Select(id); err != nil {
			return err
		}
		e.dragID = id
		e.dragLast = models.Point{X: x, Y: y}
		res.Selected = id
	case PhaseMove, PhaseUp:
		if e.dragID == "" {
			return nil
		}
		dx, dy := x-e.dragLast.X, y-e.dragLast.Y
		e.dragLast = models.Point{X: x, Y: y}
		err := e.scene.Update(e.dragID, func(obj models.Object) error {
			obj.Translate(dx, dy)
			return nil
		})
		res.Selected = e.dragID
		if phase == PhaseUp {
			e.dragID = ""
		}
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPhase, phase)
	}
	return nil
}

// endGestures drops any half-finished interaction when the tool changes.
func (e *Editor) endGestures() {
	e.gesture.Cancel(e.scene)
	e.stroke, e.drawing = nil, false
	e.dragID = ""
}

// ============================================================
// Scene access
// ============================================================

// Do runs fn with exclusive access to the live scene.
func (e *Editor) Do(fn func(*models.Scene) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.scene)
}

// Scene returns a detached copy of the current scene.
func (e *Editor) Scene() *models.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene.Clone()
}

// Replace swaps in a loaded scene. Interaction state is reset.
func (e *Editor) Replace(scene *models.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endGestures()
	e.scene = scene.Clone()
}
