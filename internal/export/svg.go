package export

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strings"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"

	svg "github.com/ajstarks/svgo"
)

// ============================================================
// SVG
// ============================================================

const gridPatternID = "grid"

// SVG writes the scene as a standalone SVG document. Coordinates of
// primitive shapes are rounded to whole units; path data is kept verbatim.
func SVG(scene *models.Scene) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("scene is nil")
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)

	w, h := round(scene.Width), round(scene.Height)
	canvas.Start(w, h, fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h))

	bg := fillValue(scene.Background.Color)
	if bg == "none" {
		bg = models.BackgroundColor
	}
	canvas.Rect(0, 0, w, h, "fill:"+bg)

	if scene.Background.Grid {
		g := round(gridSize(scene))
		gridStyle := "fill:none;stroke:" + models.GridColor + ";stroke-width:1"
		canvas.Def()
		canvas.Pattern(gridPatternID, 0, 0, g, g, "user")
		canvas.Line(0, g, g, g, gridStyle)
		canvas.Line(g, 0, g, g, gridStyle)
		canvas.PatternEnd()
		canvas.DefEnd()
		canvas.Rect(0, 0, w, h, "fill:url(#"+gridPatternID+")")
	}

	for _, obj := range scene.Objects() {
		writeObject(canvas, obj)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func writeObject(canvas *svg.SVG, obj models.Object) {
	a := obj.Attrs()
	idAttr := fmt.Sprintf(`id="%s"`, html.EscapeString(a.ID))

	canvas.Gtransform(transform(obj))
	switch o := obj.(type) {
	case *models.Rect:
		canvas.Rect(0, 0, round(o.Width), round(o.Height), idAttr, style(a))
	case *models.Ellipse:
		canvas.Ellipse(round(o.RX), round(o.RY), round(o.RX), round(o.RY), idAttr, style(a))
	case *models.Path:
		if d := pathData(o.D); d != "" {
			canvas.Path(d, idAttr, strokeOnlyStyle(a))
		}
	case *models.Line:
		canvas.Line(round(o.X1-a.Left), round(o.Y1-a.Top), round(o.X2-a.Left), round(o.Y2-a.Top), idAttr, strokeOnlyStyle(a))
	case *models.Text:
		canvas.Text(0, round(o.FontSize), o.Text, idAttr, textStyle(o))
	}
	canvas.Gend()
}

// transform places the local origin at (Left, Top), rotates about the
// scaled box centre and applies the scale.
func transform(obj models.Object) string {
	a := obj.Attrs()
	_, _, bw, bh := models.Bounds(obj)

	parts := []string{fmt.Sprintf("translate(%s %s)", geometry.FormatFloat(a.Left), geometry.FormatFloat(a.Top))}
	if a.Angle != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s %s %s)",
			geometry.FormatFloat(a.Angle), geometry.FormatFloat(bw/2), geometry.FormatFloat(bh/2)))
	}
	sx, sy := scale(a.ScaleX), scale(a.ScaleY)
	if sx != 1 || sy != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s %s)", geometry.FormatFloat(sx), geometry.FormatFloat(sy)))
	}
	return strings.Join(parts, " ")
}

// pathData re-emits d from its parsed points so only numbers and commands
// reach the document.
func pathData(d string) string {
	subpaths, err := geometry.ParsePath(d)
	if err != nil {
		return ""
	}

	var parts []string
	for _, points := range subpaths {
		for i, p := range points {
			cmd := "L"
			if i == 0 {
				cmd = "M"
			}
			parts = append(parts, cmd, geometry.FormatFloat(p.X), geometry.FormatFloat(p.Y))
		}
	}
	return strings.Join(parts, " ")
}

func style(a *models.Base) string {
	return fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%s;opacity:%s",
		fillValue(a.Fill), fillValue(a.Stroke), geometry.FormatFloat(a.StrokeWidth), geometry.FormatFloat(opacity(a.Opacity)))
}

func strokeOnlyStyle(a *models.Base) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linecap:round;stroke-linejoin:round;opacity:%s",
		fillValue(a.Stroke), geometry.FormatFloat(a.StrokeWidth), geometry.FormatFloat(opacity(a.Opacity)))
}

func textStyle(t *models.Text) string {
	family := sanitize(t.FontFamily)
	if family == "" {
		family = "Arial"
	}
	return fmt.Sprintf("fill:%s;font-family:%s;font-size:%spx;opacity:%s",
		fillValue(t.Fill), family, geometry.FormatFloat(t.FontSize), geometry.FormatFloat(opacity(t.Opacity)))
}

func fillValue(c string) string {
	c = sanitize(c)
	if c == "" || c == "transparent" {
		return "none"
	}
	return c
}

// sanitize drops characters that could break out of a style attribute.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '<', '>', '&', ';', ':':
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func gridSize(scene *models.Scene) float64 {
	if scene.Background.GridSize > 0 {
		return scene.Background.GridSize
	}
	return models.GridSize
}

func scale(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

func opacity(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round(v float64) int {
	return int(math.Round(v))
}
