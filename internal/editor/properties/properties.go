package properties

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"
)

var (
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrUnsupported      = errors.New("attribute not supported for object")
)

// DuplicateOffset is how far a duplicate is shifted on both axes.
const DuplicateOffset = 20

// ============================================================
// Snapshot
// ============================================================

// Snapshot is a by-value copy of the editable attributes of one object.
type Snapshot struct {
	ID          string      `json:"id"`
	Kind        models.Kind `json:"kind"`
	Name        string      `json:"name"`
	Left        float64     `json:"left"`
	Top         float64     `json:"top"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Angle       float64     `json:"angle"`
	ScaleX      float64     `json:"scaleX"`
	ScaleY      float64     `json:"scaleY"`
	Fill        string      `json:"fill"`
	Stroke      string      `json:"stroke"`
	StrokeWidth float64     `json:"strokeWidth"`
	Opacity     float64     `json:"opacity"`
	IsText      bool        `json:"isText"`
	Text        string      `json:"text"`
	FontSize    float64     `json:"fontSize"`
	FontFamily  string      `json:"fontFamily"`
}

// Read copies the attributes of the object into a form snapshot.
func Read(scene *models.Scene, id string) (Snapshot, error) {
	obj, ok := scene.Object(id)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", models.ErrObjectNotFound, id)
	}
	a := obj.Attrs()
	w, h := obj.Size()

	snap := Snapshot{
		ID:          a.ID,
		Kind:        obj.Kind(),
		Name:        a.Name,
		Left:        math.Round(a.Left),
		Top:         math.Round(a.Top),
		Width:       math.Round(w),
		Height:      math.Round(h),
		Angle:       math.Round(a.Angle),
		ScaleX:      geometry.Round2(orDefault(a.ScaleX, 1)),
		ScaleY:      geometry.Round2(orDefault(a.ScaleY, 1)),
		Fill:        orDefaultString(a.Fill, "#000000"),
		Stroke:      orDefaultString(a.Stroke, "#000000"),
		StrokeWidth: orDefault(a.StrokeWidth, 1),
		Opacity:     geometry.Round2(orDefault(a.Opacity, 1)),
		FontSize:    16,
		FontFamily:  "Arial",
	}
	if t, ok := obj.(*models.Text); ok {
		snap.IsText = true
		snap.Text = t.Text
		snap.FontSize = orDefault(t.FontSize, 16)
		snap.FontFamily = orDefaultString(t.FontFamily, "Arial")
	}
	return snap, nil
}

// ============================================================
// Attribute edits
// ============================================================

type Attribute string

const (
	AttrLeft        Attribute = "left"
	AttrTop         Attribute = "top"
	AttrWidth       Attribute = "width"
	AttrHeight      Attribute = "height"
	AttrAngle       Attribute = "angle"
	AttrScaleX      Attribute = "scaleX"
	AttrScaleY      Attribute = "scaleY"
	AttrFill        Attribute = "fill"
	AttrStroke      Attribute = "stroke"
	AttrStrokeWidth Attribute = "strokeWidth"
	AttrOpacity     Attribute = "opacity"
	AttrText        Attribute = "text"
	AttrFontSize    Attribute = "fontSize"
	AttrFontFamily  Attribute = "fontFamily"
)

// fallbacks apply when a numeric field does not parse.
var fallbacks = map[Attribute]float64{
	AttrLeft:        0,
	AttrTop:         0,
	AttrWidth:       0,
	AttrHeight:      0,
	AttrAngle:       0,
	AttrScaleX:      1,
	AttrScaleY:      1,
	AttrStrokeWidth: 0,
	AttrOpacity:     1,
	AttrFontSize:    16,
}

// Apply writes a single form field back onto the object with the given id.
func Apply(scene *models.Scene, id string, attr Attribute, raw string) error {
	return scene.Update(id, func(obj models.Object) error {
		return apply(obj, attr, raw)
	})
}

func apply(obj models.Object, attr Attribute, raw string) error {
	a := obj.Attrs()

	if def, numeric := fallbacks[attr]; numeric {
		v := parseNumber(raw, def)
		switch attr {
		case AttrLeft:
			obj.Translate(v-a.Left, 0)
		case AttrTop:
			obj.Translate(0, v-a.Top)
		case AttrWidth:
			return setSize(obj, v, true)
		case AttrHeight:
			return setSize(obj, v, false)
		case AttrAngle:
			a.Angle = v
		case AttrScaleX:
			a.ScaleX = v
		case AttrScaleY:
			a.ScaleY = v
		case AttrStrokeWidth:
			a.StrokeWidth = v
		case AttrOpacity:
			a.Opacity = v
		case AttrFontSize:
			t, ok := obj.(*models.Text)
			if !ok {
				return fmt.Errorf("%w: %s on %s", ErrUnsupported, attr, obj.Kind())
			}
			t.FontSize = v
		}
		return nil
	}

	switch attr {
	case AttrFill:
		a.Fill = raw
	case AttrStroke:
		a.Stroke = raw
	case AttrText, AttrFontFamily:
		t, ok := obj.(*models.Text)
		if !ok {
			return fmt.Errorf("%w: %s on %s", ErrUnsupported, attr, obj.Kind())
		}
		if attr == AttrText {
			t.Text = raw
		} else {
			t.FontFamily = raw
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	return nil
}

func setSize(obj models.Object, v float64, horizontal bool) error {
	switch o := obj.(type) {
	case *models.Rect:
		if horizontal {
			o.Width = v
		} else {
			o.Height = v
		}
	case *models.Ellipse:
		if horizontal {
			o.RX = v / 2
		} else {
			o.RY = v / 2
		}
	case *models.Path:
		if horizontal {
			o.Width = v
		} else {
			o.Height = v
		}
	default:
		return fmt.Errorf("%w: size on %s", ErrUnsupported, obj.Kind())
	}
	return nil
}

func parseNumber(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

func orDefaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ============================================================
// Structural actions
// ============================================================

func Delete(scene *models.Scene, id string) error {
	if !scene.Remove(id) {
		return fmt.Errorf("%w: %s", models.ErrObjectNotFound, id)
	}
	return nil
}

// Duplicate clones the object shifted by DuplicateOffset and selects the copy.
func Duplicate(scene *models.Scene, id string) (Snapshot, error) {
	dup, err := scene.Duplicate(id, DuplicateOffset, DuplicateOffset)
	if err != nil {
		return Snapshot{}, err
	}
	return Read(scene, dup.Attrs().ID)
}

func BringToFront(scene *models.Scene, id string) error {
	if !scene.BringToFront(id) {
		return fmt.Errorf("%w: %s", models.ErrObjectNotFound, id)
	}
	return nil
}

func SendToBack(scene *models.Scene, id string) error {
	if !scene.SendToBack(id) {
		return fmt.Errorf("%w: %s", models.ErrObjectNotFound, id)
	}
	return nil
}
