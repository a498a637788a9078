package measure

import (
	"fmt"
	"math"

	"floorplan-editor/internal/editor/models"
)

const (
	Color       = "#ff0000"
	LineWidth   = 2
	LabelSize   = 12
	LabelFont   = "Arial"
	LabelOffset = 10

	lineName  = "measurement"
	labelName = "measurement-label"
)

type State int

const (
	Idle State = iota
	Dragging
)

// Result is what a completed gesture left in the scene.
type Result struct {
	LineID   string  `json:"lineId"`
	LabelID  string  `json:"labelId"`
	Distance float64 `json:"distance"`
	Label    string  `json:"label"`
}

// Gesture tracks one measurement drag at a time.
type Gesture struct {
	state  State
	lineID string
}

func (g *Gesture) State() State { return g.state }

// Down starts a new measurement line anchored at (x, y).
// A drag still in progress is cancelled first.
func (g *Gesture) Down(scene *models.Scene, x, y float64) (string, error) {
	g.Cancel(scene)

	line := models.NewLine(x, y, x, y)
	line.Name = lineName
	line.Stroke = Color
	line.StrokeWidth = LineWidth
	line.Selectable = false
	line.Evented = false

	id, err := scene.Add(line)
	if err != nil {
		return "", err
	}
	g.lineID = id
	g.state = Dragging
	return id, nil
}

// Move updates the far endpoint. It is a no-op outside a drag.
func (g *Gesture) Move(scene *models.Scene, x, y float64) error {
	if g.state != Dragging {
		return nil
	}
	return scene.Update(g.lineID, func(obj models.Object) error {
		line, ok := obj.(*models.Line)
		if !ok {
			return fmt.Errorf("measurement %s is not a line", g.lineID)
		}
		line.SetEnd(x, y)
		return nil
	})
}

// Up finishes the drag at (x, y) and labels the segment with its length.
// The returned bool is false when no drag was in progress.
func (g *Gesture) Up(scene *models.Scene, x, y float64) (Result, bool, error) {
	if g.state != Dragging {
		return Result{}, false, nil
	}
	if err := g.Move(scene, x, y); err != nil {
		g.reset()
		return Result{}, false, err
	}

	obj, ok := scene.Object(g.lineID)
	if !ok {
		g.reset()
		return Result{}, false, fmt.Errorf("%w: %s", models.ErrObjectNotFound, g.lineID)
	}
	line := obj.(*models.Line)

	distance := Distance(line.X1, line.Y1, line.X2, line.Y2)
	midX, midY := line.Midpoint()

	label := &models.Text{
		Base:       models.NewBase(midX, midY-LabelOffset),
		Text:       Label(distance),
		FontFamily: LabelFont,
		FontSize:   LabelSize,
	}
	label.Name = labelName
	label.Fill = Color
	label.Selectable = false
	label.Evented = false

	labelID, err := scene.Add(label)
	if err != nil {
		g.reset()
		return Result{}, false, err
	}

	res := Result{LineID: g.lineID, LabelID: labelID, Distance: distance, Label: label.Text}
	g.reset()
	return res, true, nil
}

// Cancel abandons a drag in progress and removes its unfinished line.
func (g *Gesture) Cancel(scene *models.Scene) bool {
	if g.state != Dragging {
		return false
	}
	removed := scene.Remove(g.lineID)
	g.reset()
	return removed
}

func (g *Gesture) reset() {
	g.state = Idle
	g.lineID = ""
}

func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Label formats a distance rounded half up to whole units.
func Label(distance float64) string {
	return fmt.Sprintf("%dpx", int64(math.Floor(distance+0.5)))
}
