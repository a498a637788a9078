package measure

import (
	"testing"

	"floorplan-editor/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGesture_ThreeFourFive(t *testing.T) {
	scene := models.NewScene()
	var g Gesture

	lineID, err := g.Down(scene, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Dragging, g.State())

	require.NoError(t, g.Move(scene, 10, 10))
	res, ok, err := g.Up(scene, 30, 40)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, Idle, g.State())
	assert.Equal(t, lineID, res.LineID)
	assert.Equal(t, 50.0, res.Distance)
	assert.Equal(t, "50px", res.Label)
	assert.Equal(t, []string{lineID, res.LabelID}, scene.IDs())

	obj, _ := scene.Object(lineID)
	line := obj.(*models.Line)
	assert.Equal(t, 30.0, line.X2)
	assert.Equal(t, 40.0, line.Y2)
	assert.False(t, line.Selectable)
	assert.False(t, line.Evented)
	assert.Equal(t, Color, line.Stroke)

	obj, _ = scene.Object(res.LabelID)
	label := obj.(*models.Text)
	assert.Equal(t, "50px", label.Text)
	assert.Equal(t, 15.0, label.Left)
	assert.Equal(t, 10.0, label.Top)
	assert.Equal(t, float64(LabelSize), label.FontSize)
	assert.False(t, label.Evented)
}

func TestGesture_ZeroLength(t *testing.T) {
	scene := models.NewScene()
	var g Gesture

	_, err := g.Down(scene, 5, 5)
	require.NoError(t, err)
	res, ok, err := g.Up(scene, 5, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "0px", res.Label)
}

func TestGesture_UpWithoutDown(t *testing.T) {
	scene := models.NewScene()
	var g Gesture

	require.NoError(t, g.Move(scene, 1, 1))
	_, ok, err := g.Up(scene, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, scene.Len())
}

func TestGesture_CancelRemovesLine(t *testing.T) {
	scene := models.NewScene()
	var g Gesture

	_, err := g.Down(scene, 0, 0)
	require.NoError(t, err)
	require.NoError(t, g.Move(scene, 100, 0))
	require.Equal(t, 1, scene.Len())

	assert.True(t, g.Cancel(scene))
	assert.Zero(t, scene.Len())
	assert.Equal(t, Idle, g.State())
	assert.False(t, g.Cancel(scene))
}

func TestGesture_SecondDownReplacesDanglingLine(t *testing.T) {
	scene := models.NewScene()
	var g Gesture

	first, err := g.Down(scene, 0, 0)
	require.NoError(t, err)
	second, err := g.Down(scene, 10, 10)
	require.NoError(t, err)

	assert.Equal(t, []string{second}, scene.IDs())
	assert.NotEqual(t, first, second)
}

func TestLabel_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "3px", Label(2.5))
	assert.Equal(t, "2px", Label(2.49))
	assert.Equal(t, "141px", Label(Distance(0, 0, 100, 100)))
}
