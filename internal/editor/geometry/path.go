package geometry

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Path data
// ============================================================

var commandRe = regexp.MustCompile(`([MmLlHhVvZz])([^MmLlHhVvZz]*)`)

// ParsePath splits SVG path data into polylines, one per subpath.
// Supported commands: M, m, L, l, H, h, V, v, Z. Repeated coordinate pairs
// after M/L are treated as implicit line-tos.
func ParsePath(d string) ([][]models.Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}

	var subpaths [][]models.Point
	var current []models.Point
	var x, y float64

	flush := func() {
		if len(current) > 0 {
			subpaths = append(subpaths, current)
		}
		current = nil
	}

	for _, match := range commandRe.FindAllStringSubmatch(d, -1) {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "m":
			if len(coords) < 2 {
				return nil, fmt.Errorf("moveto needs 2 coordinates")
			}
			flush()
			for i := 0; i+1 < len(coords); i += 2 {
				if cmd == "m" {
					x += coords[i]
					y += coords[i+1]
				} else {
					x, y = coords[i], coords[i+1]
				}
				current = append(current, models.Point{X: x, Y: y})
			}

		case "L", "l":
			for i := 0; i+1 < len(coords); i += 2 {
				if cmd == "l" {
					x += coords[i]
					y += coords[i+1]
				} else {
					x, y = coords[i], coords[i+1]
				}
				current = append(current, models.Point{X: x, Y: y})
			}

		case "H", "h":
			for _, c := range coords {
				if cmd == "h" {
					x += c
				} else {
					x = c
				}
				current = append(current, models.Point{X: x, Y: y})
			}

		case "V", "v":
			for _, c := range coords {
				if cmd == "v" {
					y += c
				} else {
					y = c
				}
				current = append(current, models.Point{X: x, Y: y})
			}

		case "Z", "z":
			if len(current) > 0 {
				current = append(current, current[0])
				x, y = current[0].X, current[0].Y
			}
			flush()
		}
	}
	flush()

	return subpaths, nil
}

// BuildPath turns a polyline into path data relative to its bounding box
// top-left corner, which is returned alongside the box size.
func BuildPath(points []models.Point) (d string, origin models.Point, w, h float64) {
	if len(points) == 0 {
		return "", models.Point{}, 0, 0
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(FormatFloat(p.X - minX))
		b.WriteString(" ")
		b.WriteString(FormatFloat(p.Y - minY))
	}

	return b.String(), models.Point{X: minX, Y: minY}, maxX - minX, maxY - minY
}

func parseCoords(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	s = strings.ReplaceAll(s, ",", " ")
	var coords []float64
	for _, part := range strings.Fields(s) {
		if val, err := strconv.ParseFloat(part, 64); err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}

// ============================================================
// Formatting helpers
// ============================================================

func FormatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// Round2 rounds to two decimals.
func Round2(val float64) float64 {
	return math.Round(val*100) / 100
}
