package models

import "math"

// ============================================================
// Drawable objects
// ============================================================

type Kind string

const (
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
	KindPath    Kind = "path"
	KindLine    Kind = "line"
	KindText    Kind = "text"
)

// Object is one drawable in a scene. The set of implementations is closed:
// Rect, Ellipse, Path, Line and Text.
type Object interface {
	Kind() Kind
	Attrs() *Base
	// Size returns the unscaled bounding width and height.
	Size() (float64, float64)
	Clone() Object
	Translate(dx, dy float64)
	sealed()
}

// Base holds the attributes shared by every object kind.
type Base struct {
	ID          string            `json:"id"`
	Name        string            `json:"name,omitempty"`
	Left        float64           `json:"left"`
	Top         float64           `json:"top"`
	Angle       float64           `json:"angle"`
	ScaleX      float64           `json:"scaleX"`
	ScaleY      float64           `json:"scaleY"`
	Fill        string            `json:"fill"`
	Stroke      string            `json:"stroke"`
	StrokeWidth float64           `json:"strokeWidth"`
	Opacity     float64           `json:"opacity"`
	Selectable  bool              `json:"selectable"`
	Evented     bool              `json:"evented"`
	Data        map[string]string `json:"data,omitempty"`
}

// NewBase returns interactive defaults at the given position.
func NewBase(left, top float64) Base {
	return Base{
		Left:       left,
		Top:        top,
		ScaleX:     1,
		ScaleY:     1,
		Opacity:    1,
		Selectable: true,
		Evented:    true,
	}
}

func (b *Base) Attrs() *Base { return b }

func (b *Base) Translate(dx, dy float64) {
	b.Left += dx
	b.Top += dy
}

func (b *Base) sealed() {}

func (b Base) cloneBase() Base {
	out := b
	if b.Data != nil {
		out.Data = make(map[string]string, len(b.Data))
		for k, v := range b.Data {
			out.Data[k] = v
		}
	}
	return out
}

type Rect struct {
	Base
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r *Rect) Kind() Kind               { return KindRect }
func (r *Rect) Size() (float64, float64) { return r.Width, r.Height }

func (r *Rect) Clone() Object {
	out := *r
	out.Base = r.cloneBase()
	return &out
}

// Ellipse is anchored at its bounding box top-left corner.
type Ellipse struct {
	Base
	RX float64 `json:"rx"`
	RY float64 `json:"ry"`
}

func (e *Ellipse) Kind() Kind               { return KindEllipse }
func (e *Ellipse) Size() (float64, float64) { return 2 * e.RX, 2 * e.RY }

func (e *Ellipse) Clone() Object {
	out := *e
	out.Base = e.cloneBase()
	return &out
}

// Path is a freehand stroke. D holds SVG path data relative to (Left, Top).
type Path struct {
	Base
	D      string  `json:"d"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (p *Path) Kind() Kind               { return KindPath }
func (p *Path) Size() (float64, float64) { return p.Width, p.Height }

func (p *Path) Clone() Object {
	out := *p
	out.Base = p.cloneBase()
	return &out
}

// Line keeps its endpoints in scene coordinates; Left/Top track the
// top-left corner of the endpoints' bounding box.
type Line struct {
	Base
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func NewLine(x1, y1, x2, y2 float64) *Line {
	l := &Line{Base: NewBase(0, 0), X1: x1, Y1: y1, X2: x2, Y2: y2}
	l.sync()
	return l
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) Size() (float64, float64) {
	return math.Abs(l.X2 - l.X1), math.Abs(l.Y2 - l.Y1)
}

func (l *Line) Clone() Object {
	out := *l
	out.Base = l.cloneBase()
	return &out
}

func (l *Line) Translate(dx, dy float64) {
	l.X1 += dx
	l.Y1 += dy
	l.X2 += dx
	l.Y2 += dy
	l.sync()
}

// SetEnd moves the far endpoint.
func (l *Line) SetEnd(x, y float64) {
	l.X2, l.Y2 = x, y
	l.sync()
}

// Length is the Euclidean distance between the endpoints.
func (l *Line) Length() float64 {
	return math.Hypot(l.X2-l.X1, l.Y2-l.Y1)
}

// Midpoint returns the centre of the segment.
func (l *Line) Midpoint() (float64, float64) {
	return (l.X1 + l.X2) / 2, (l.Y1 + l.Y2) / 2
}

func (l *Line) sync() {
	l.Left = math.Min(l.X1, l.X2)
	l.Top = math.Min(l.Y1, l.Y2)
}

type Text struct {
	Base
	Text       string  `json:"text"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
}

func (t *Text) Kind() Kind { return KindText }

// Size approximates the rendered box as half an em per rune on one line.
func (t *Text) Size() (float64, float64) {
	return float64(len([]rune(t.Text))) * t.FontSize * 0.5, t.FontSize * 1.16
}

func (t *Text) Clone() Object {
	out := *t
	out.Base = t.cloneBase()
	return &out
}

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
