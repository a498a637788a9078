package geometry

import (
	"testing"

	"floorplan-editor/internal/editor/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath_Absolute(t *testing.T) {
	subpaths, err := ParsePath("M 0 0 L 10 0 L 10 10 Z")
	require.NoError(t, err)
	require.Len(t, subpaths, 1)

	assert.Equal(t, []models.Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 0},
	}, subpaths[0])
}

func TestParsePath_RelativeAndAxis(t *testing.T) {
	subpaths, err := ParsePath("m5,5 h10 v10 l-5,5 M100 100 H120 V90")
	require.NoError(t, err)
	require.Len(t, subpaths, 2)

	assert.Equal(t, []models.Point{
		{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 10, Y: 20},
	}, subpaths[0])
	assert.Equal(t, []models.Point{
		{X: 100, Y: 100}, {X: 120, Y: 100}, {X: 120, Y: 90},
	}, subpaths[1])
}

func TestParsePath_ImplicitLineTo(t *testing.T) {
	subpaths, err := ParsePath("M 0 0 5 5 10 0")
	require.NoError(t, err)
	require.Len(t, subpaths, 1)
	assert.Len(t, subpaths[0], 3)
}

func TestParsePath_Errors(t *testing.T) {
	_, err := ParsePath("   ")
	assert.Error(t, err)

	_, err = ParsePath("M 5")
	assert.Error(t, err)
}

func TestBuildPath_RelativeToBox(t *testing.T) {
	d, origin, w, h := BuildPath([]models.Point{{X: 110, Y: 220}, {X: 150, Y: 200}, {X: 130.5, Y: 260}})

	assert.Equal(t, "M 0 20 L 40 0 L 20.5 60", d)
	assert.Equal(t, models.Point{X: 110, Y: 200}, origin)
	assert.Equal(t, 40.0, w)
	assert.Equal(t, 60.0, h)

	back, err := ParsePath(d)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, models.Point{X: 40, Y: 0}, back[0][1])
}

func TestBuildPath_Empty(t *testing.T) {
	d, _, w, h := BuildPath(nil)
	assert.Empty(t, d)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.234))
	assert.Equal(t, 0.5, Round2(0.499999))
	assert.Equal(t, "12.5", FormatFloat(12.5))
}
