package export

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"floorplan-editor/internal/editor/geometry"
	"floorplan-editor/internal/editor/models"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// PixelRatio is the raster density of PNG exports.
const PixelRatio = 2

var (
	fontOnce sync.Once
	ttfFont  *truetype.Font
	fontErr  error
)

// ============================================================
// PNG
// ============================================================

// PNG rasterizes the visible scene at the given pixel ratio.
func PNG(scene *models.Scene, ratio float64) ([]byte, error) {
	if scene == nil {
		return nil, fmt.Errorf("scene is nil")
	}
	if ratio <= 0 {
		ratio = 1
	}

	dc := gg.NewContext(int(math.Ceil(scene.Width*ratio)), int(math.Ceil(scene.Height*ratio)))

	bg, ok := parseColor(scene.Background.Color, 1)
	if !ok {
		bg = color.White
	}
	dc.SetColor(bg)
	dc.Clear()

	dc.Scale(ratio, ratio)
	if scene.Background.Grid {
		drawGrid(dc, scene)
	}

	for _, obj := range scene.Objects() {
		if err := drawObject(dc, obj); err != nil {
			return nil, fmt.Errorf("draw %s: %w", obj.Attrs().ID, err)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawGrid(dc *gg.Context, scene *models.Scene) {
	g := gridSize(scene)
	c, _ := parseColor(models.GridColor, 1)
	dc.SetColor(c)
	dc.SetLineWidth(1)
	for x := g; x <= scene.Width; x += g {
		dc.DrawLine(x, 0, x, scene.Height)
	}
	for y := g; y <= scene.Height; y += g {
		dc.DrawLine(0, y, scene.Width, y)
	}
	dc.Stroke()
}

func drawObject(dc *gg.Context, obj models.Object) error {
	a := obj.Attrs()
	_, _, bw, bh := models.Bounds(obj)
	alpha := opacity(a.Opacity)

	dc.Push()
	defer dc.Pop()

	dc.Translate(a.Left, a.Top)
	if a.Angle != 0 {
		dc.RotateAbout(gg.Radians(a.Angle), bw/2, bh/2)
	}
	dc.Scale(scale(a.ScaleX), scale(a.ScaleY))

	switch o := obj.(type) {
	case *models.Rect:
		dc.DrawRectangle(0, 0, o.Width, o.Height)
		paint(dc, a, alpha, true)
	case *models.Ellipse:
		dc.DrawEllipse(o.RX, o.RY, o.RX, o.RY)
		paint(dc, a, alpha, true)
	case *models.Path:
		subpaths, err := geometry.ParsePath(o.D)
		if err != nil {
			return err
		}
		for _, pts := range subpaths {
			dc.NewSubPath()
			for i, p := range pts {
				if i == 0 {
					dc.MoveTo(p.X, p.Y)
				} else {
					dc.LineTo(p.X, p.Y)
				}
			}
		}
		dc.SetLineCap(gg.LineCapRound)
		dc.SetLineJoin(gg.LineJoinRound)
		paint(dc, a, alpha, false)
	case *models.Line:
		dc.DrawLine(o.X1-a.Left, o.Y1-a.Top, o.X2-a.Left, o.Y2-a.Top)
		paint(dc, a, alpha, false)
	case *models.Text:
		face, err := fontFace(o.FontSize)
		if err != nil {
			return err
		}
		c, ok := parseColor(o.Fill, alpha)
		if !ok {
			return nil
		}
		dc.SetFontFace(face)
		dc.SetColor(c)
		dc.DrawString(o.Text, 0, o.FontSize)
	}
	return nil
}

// paint fills (when allowed) and strokes the current path.
func paint(dc *gg.Context, a *models.Base, alpha float64, fill bool) {
	fc, hasFill := parseColor(a.Fill, alpha)
	sc, hasStroke := parseColor(a.Stroke, alpha)
	hasStroke = hasStroke && a.StrokeWidth > 0

	if fill && hasFill {
		dc.SetColor(fc)
		if hasStroke {
			dc.FillPreserve()
		} else {
			dc.Fill()
		}
	}
	if hasStroke {
		dc.SetColor(sc)
		dc.SetLineWidth(a.StrokeWidth)
		dc.Stroke()
	}
	dc.ClearPath()
}

func fontFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		ttfFont, fontErr = truetype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	if size <= 0 {
		size = 16
	}
	// Faces hold glyph caches and are not safe for concurrent use.
	return truetype.NewFace(ttfFont, &truetype.Options{Size: size}), nil
}
