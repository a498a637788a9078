package properties

import (
	"testing"

	"floorplan-editor/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScene(t *testing.T) (*models.Scene, string, string) {
	scene := models.NewScene()

	rect := &models.Rect{Base: models.NewBase(10.4, 20.6), Width: 99.6, Height: 50}
	rect.Fill = "#ff0000"
	rect.Angle = 29.7
	rect.ScaleX = 1.234
	rectID, err := scene.Add(rect)
	require.NoError(t, err)

	text := &models.Text{Base: models.NewBase(5, 5), Text: "Hall", FontSize: 20, FontFamily: "Courier"}
	textID, err := scene.Add(text)
	require.NoError(t, err)

	return scene, rectID, textID
}

func TestRead_RoundsForDisplay(t *testing.T) {
	scene, rectID, _ := setupScene(t)

	snap, err := Read(scene, rectID)
	require.NoError(t, err)

	assert.Equal(t, models.KindRect, snap.Kind)
	assert.Equal(t, 10.0, snap.Left)
	assert.Equal(t, 21.0, snap.Top)
	assert.Equal(t, 100.0, snap.Width)
	assert.Equal(t, 30.0, snap.Angle)
	assert.Equal(t, 1.23, snap.ScaleX)
	assert.Equal(t, 1.0, snap.ScaleY)
	assert.Equal(t, "#ff0000", snap.Fill)
	assert.Equal(t, "#000000", snap.Stroke)
	assert.Equal(t, 1.0, snap.StrokeWidth)
	assert.False(t, snap.IsText)
	assert.Equal(t, 16.0, snap.FontSize)
	assert.Equal(t, "Arial", snap.FontFamily)
}

func TestRead_Text(t *testing.T) {
	scene, _, textID := setupScene(t)

	snap, err := Read(scene, textID)
	require.NoError(t, err)
	assert.True(t, snap.IsText)
	assert.Equal(t, "Hall", snap.Text)
	assert.Equal(t, 20.0, snap.FontSize)
	assert.Equal(t, "Courier", snap.FontFamily)
}

func TestRead_Missing(t *testing.T) {
	_, err := Read(models.NewScene(), "nope")
	assert.ErrorIs(t, err, models.ErrObjectNotFound)
}

func TestApply_Numeric(t *testing.T) {
	scene, rectID, _ := setupScene(t)

	require.NoError(t, Apply(scene, rectID, AttrLeft, "150"))
	require.NoError(t, Apply(scene, rectID, AttrWidth, " 42 "))
	require.NoError(t, Apply(scene, rectID, AttrOpacity, "1.7"))
	require.NoError(t, Apply(scene, rectID, AttrAngle, "90"))

	obj, _ := scene.Object(rectID)
	r := obj.(*models.Rect)
	assert.Equal(t, 150.0, r.Left)
	assert.Equal(t, 42.0, r.Width)
	assert.Equal(t, 1.7, r.Opacity, "stored as parsed")
	assert.Equal(t, 90.0, r.Angle)
}

func TestApply_FallbackOnParseFailure(t *testing.T) {
	scene, rectID, textID := setupScene(t)

	tests := []struct {
		attr Attribute
		id   string
		read func(models.Object) float64
		want float64
	}{
		{AttrLeft, rectID, func(o models.Object) float64 { return o.Attrs().Left }, 0},
		{AttrScaleX, rectID, func(o models.Object) float64 { return o.Attrs().ScaleX }, 1},
		{AttrOpacity, rectID, func(o models.Object) float64 { return o.Attrs().Opacity }, 1},
		{AttrStrokeWidth, rectID, func(o models.Object) float64 { return o.Attrs().StrokeWidth }, 0},
		{AttrFontSize, textID, func(o models.Object) float64 { return o.(*models.Text).FontSize }, 16},
	}

	for _, tt := range tests {
		t.Run(string(tt.attr), func(t *testing.T) {
			require.NoError(t, Apply(scene, tt.id, tt.attr, "abc"))
			obj, _ := scene.Object(tt.id)
			assert.Equal(t, tt.want, tt.read(obj))
		})
	}
}

func TestApply_ZeroIsKept(t *testing.T) {
	scene, rectID, _ := setupScene(t)

	require.NoError(t, Apply(scene, rectID, AttrOpacity, "0"))
	obj, _ := scene.Object(rectID)
	assert.Equal(t, 0.0, obj.Attrs().Opacity)
}

func TestApply_Colours(t *testing.T) {
	scene, rectID, _ := setupScene(t)

	require.NoError(t, Apply(scene, rectID, AttrFill, "#00ff00"))
	require.NoError(t, Apply(scene, rectID, AttrStroke, "#0000ff"))

	snap, err := Read(scene, rectID)
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", snap.Fill)
	assert.Equal(t, "#0000ff", snap.Stroke)
}

func TestApply_TextOnlyAttributes(t *testing.T) {
	scene, rectID, textID := setupScene(t)

	for _, attr := range []Attribute{AttrText, AttrFontSize, AttrFontFamily} {
		assert.ErrorIs(t, Apply(scene, rectID, attr, "x"), ErrUnsupported, string(attr))
	}

	require.NoError(t, Apply(scene, textID, AttrText, "Living room"))
	require.NoError(t, Apply(scene, textID, AttrFontFamily, "Georgia"))
	snap, err := Read(scene, textID)
	require.NoError(t, err)
	assert.Equal(t, "Living room", snap.Text)
	assert.Equal(t, "Georgia", snap.FontFamily)
}

func TestApply_SizeOnEllipseAndLine(t *testing.T) {
	scene := models.NewScene()
	eID, _ := scene.Add(&models.Ellipse{Base: models.NewBase(0, 0), RX: 10, RY: 10})
	lID, _ := scene.Add(models.NewLine(0, 0, 5, 5))

	require.NoError(t, Apply(scene, eID, AttrWidth, "80"))
	obj, _ := scene.Object(eID)
	assert.Equal(t, 40.0, obj.(*models.Ellipse).RX)

	assert.ErrorIs(t, Apply(scene, lID, AttrHeight, "10"), ErrUnsupported)
}

func TestApply_LineLeftMovesEndpoints(t *testing.T) {
	scene := models.NewScene()
	id, _ := scene.Add(models.NewLine(10, 10, 20, 30))

	require.NoError(t, Apply(scene, id, AttrLeft, "100"))

	obj, _ := scene.Object(id)
	l := obj.(*models.Line)
	assert.Equal(t, 100.0, l.X1)
	assert.Equal(t, 110.0, l.X2)
	assert.Equal(t, 100.0, l.Left)
}

func TestApply_UnknownAttribute(t *testing.T) {
	scene, rectID, _ := setupScene(t)
	assert.ErrorIs(t, Apply(scene, rectID, "shadow", "1"), ErrUnknownAttribute)
	assert.ErrorIs(t, Apply(scene, "ghost", AttrFill, "red"), models.ErrObjectNotFound)
}

func TestStructuralActions(t *testing.T) {
	scene, rectID, textID := setupScene(t)

	dup, err := Duplicate(scene, rectID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, dup.Left)
	assert.Equal(t, 41.0, dup.Top)
	assert.Equal(t, []string{rectID, textID, dup.ID}, scene.IDs())

	require.NoError(t, SendToBack(scene, dup.ID))
	require.NoError(t, BringToFront(scene, rectID))
	assert.Equal(t, []string{dup.ID, textID, rectID}, scene.IDs())

	require.NoError(t, Delete(scene, textID))
	assert.ErrorIs(t, Delete(scene, textID), models.ErrObjectNotFound)
	assert.ErrorIs(t, BringToFront(scene, textID), models.ErrObjectNotFound)
	assert.ErrorIs(t, SendToBack(scene, textID), models.ErrObjectNotFound)
}
