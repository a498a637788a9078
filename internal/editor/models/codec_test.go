package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_PreservesEveryKind(t *testing.T) {
	s := NewScene()
	s.SetZoom(1.5)

	rect := newRect("r", 10, 20, 100, 50)
	rect.Angle = 45
	rect.Data = map[string]string{"type": "furniture", "itemId": "sofa-1"}

	ellipse := &Ellipse{Base: NewBase(300, 300), RX: 50, RY: 30}
	ellipse.ID = "e"
	ellipse.Stroke = "#6b7280"

	path := &Path{Base: NewBase(5, 5), D: "M 0 0 L 10 10", Width: 10, Height: 10}
	path.ID = "p"

	line := NewLine(0, 0, 30, 40)
	line.ID = "l"
	line.Selectable = false
	line.Evented = false

	text := &Text{Base: NewBase(100, 100), Text: "Kitchen", FontFamily: "Arial", FontSize: 16}
	text.ID = "t"

	for _, obj := range []Object{rect, ellipse, path, line, text} {
		_, err := s.Add(obj)
		require.NoError(t, err)
	}

	data, err := s.Encode()
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, s.IDs(), decoded.IDs())
	assert.Equal(t, s.Background, decoded.Background)
	assert.Equal(t, 1.5, decoded.Viewport.Zoom)
	for i, want := range s.Objects() {
		got := decoded.Objects()[i]
		assert.Equal(t, want, got, "object %s", want.Attrs().ID)
	}
}

func TestEncode_TypeDiscriminator(t *testing.T) {
	s := NewScene()
	_, err := s.Add(NewLine(1, 2, 3, 4))
	require.NoError(t, err)

	data, err := s.Encode()
	require.NoError(t, err)

	var doc struct {
		Objects []map[string]any `json:"objects"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Objects, 1)
	assert.Equal(t, "line", doc.Objects[0]["type"])
	assert.Equal(t, 3.0, doc.Objects[0]["x2"])
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("not json"))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"objects":[{"type":"hexagon","id":"x"}]}`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"objects":[{"type":"rect","id":"x"},{"type":"rect","id":"x"}]}`))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestDecode_FillsDefaults(t *testing.T) {
	s, err := Decode([]byte(`{"objects":[]}`))
	require.NoError(t, err)

	assert.Equal(t, float64(CanvasWidth), s.Width)
	assert.Equal(t, BackgroundColor, s.Background.Color)
	assert.Equal(t, 1.0, s.Viewport.Zoom)
}

func TestDecode_CanvasSizeIsFixed(t *testing.T) {
	s, err := Decode([]byte(`{"width":5000000,"height":3,"viewport":{"zoom":400},"objects":[]}`))
	require.NoError(t, err)

	assert.Equal(t, float64(CanvasWidth), s.Width)
	assert.Equal(t, float64(CanvasHeight), s.Height)
	assert.Equal(t, MaxZoom, s.Viewport.Zoom)
}

func TestScene_JSONMarshalers(t *testing.T) {
	s := sceneABC(t)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"A", "B", "C"}, back.IDs())
}
