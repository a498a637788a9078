package export

import (
	"errors"
	"fmt"
	"strings"

	"floorplan-editor/internal/editor/models"
)

// ============================================================
// Export formats
// ============================================================

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

const (
	DefaultPNGName = "floor-plan.png"
	DefaultSVGName = "floor-plan.svg"
	DefaultPDFName = "floor-plan.pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Artifact is a finished download.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatPNG:
		return FormatPNG, nil
	case FormatSVG:
		return FormatSVG, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Export converts the scene into a downloadable file. An empty filename
// selects the format's default.
//
// PDF is not rendered: the result is the PNG export with ".pdf" in the
// filename replaced by ".png".
func Export(scene *models.Scene, format Format, filename string) (Artifact, error) {
	switch format {
	case FormatPNG:
		return exportPNG(scene, orDefault(filename, DefaultPNGName))
	case FormatSVG:
		data, err := SVG(scene)
		if err != nil {
			return Artifact{}, err
		}
		return Artifact{
			Filename:    orDefault(filename, DefaultSVGName),
			ContentType: "image/svg+xml",
			Data:        data,
		}, nil
	case FormatPDF:
		name := strings.Replace(orDefault(filename, DefaultPDFName), ".pdf", ".png", 1)
		return exportPNG(scene, name)
	}
	return Artifact{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func exportPNG(scene *models.Scene, filename string) (Artifact, error) {
	data, err := PNG(scene, PixelRatio)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Filename: filename, ContentType: "image/png", Data: data}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
