package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRect(id string, left, top, w, h float64) *Rect {
	r := &Rect{Base: NewBase(left, top), Width: w, Height: h}
	r.ID = id
	r.Fill = "#cccccc"
	return r
}

func sceneABC(t *testing.T) *Scene {
	s := NewScene()
	for _, id := range []string{"A", "B", "C"} {
		_, err := s.Add(newRect(id, 0, 0, 10, 10))
		require.NoError(t, err)
	}
	return s
}

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene()

	assert.Equal(t, float64(CanvasWidth), s.Width)
	assert.Equal(t, float64(CanvasHeight), s.Height)
	assert.Equal(t, BackgroundColor, s.Background.Color)
	assert.True(t, s.Background.Grid)
	assert.Equal(t, 1.0, s.Viewport.Zoom)
	assert.Zero(t, s.Len())
}

func TestAdd_AssignsIDAndRejectsDuplicates(t *testing.T) {
	s := NewScene()

	id, err := s.Add(&Rect{Base: NewBase(0, 0), Width: 5, Height: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Add(newRect(id, 1, 1, 1, 1))
	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.Equal(t, 1, s.Len())
}

func TestZOrder(t *testing.T) {
	s := sceneABC(t)

	require.True(t, s.BringToFront("A"))
	assert.Equal(t, []string{"B", "C", "A"}, s.IDs())

	require.True(t, s.SendToBack("C"))
	assert.Equal(t, []string{"C", "B", "A"}, s.IDs())

	require.True(t, s.SendToBack("C"))
	assert.Equal(t, []string{"C", "B", "A"}, s.IDs())

	assert.False(t, s.BringToFront("missing"))
	assert.False(t, s.SendToBack("missing"))
}

func TestRemove_ClearsSelection(t *testing.T) {
	s := sceneABC(t)
	require.NoError(t, s.Select("B"))

	assert.True(t, s.Remove("B"))
	assert.False(t, s.Remove("B"))

	_, ok := s.Active()
	assert.False(t, ok)
	assert.Equal(t, []string{"A", "C"}, s.IDs())
}

func TestObject_ReturnsDetachedCopy(t *testing.T) {
	s := sceneABC(t)

	obj, ok := s.Object("A")
	require.True(t, ok)
	obj.Attrs().Fill = "#000000"
	obj.Translate(50, 50)

	again, _ := s.Object("A")
	assert.Equal(t, "#cccccc", again.Attrs().Fill)
	assert.Equal(t, 0.0, again.Attrs().Left)
}

func TestUpdate_KeepsID(t *testing.T) {
	s := sceneABC(t)

	err := s.Update("A", func(obj Object) error {
		obj.Attrs().ID = "hijacked"
		obj.Attrs().Fill = "red"
		return nil
	})
	require.NoError(t, err)

	obj, ok := s.Object("A")
	require.True(t, ok)
	assert.Equal(t, "red", obj.Attrs().Fill)

	err = s.Update("nope", func(Object) error { return nil })
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestDuplicate(t *testing.T) {
	s := sceneABC(t)

	dup, err := s.Duplicate("A", 20, 20)
	require.NoError(t, err)

	assert.NotEqual(t, "A", dup.Attrs().ID)
	assert.Equal(t, 20.0, dup.Attrs().Left)
	assert.Equal(t, 20.0, dup.Attrs().Top)
	assert.Equal(t, 4, s.Len())
	assert.Equal(t, dup.Attrs().ID, s.IDs()[3])

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, dup.Attrs().ID, active)

	orig, _ := s.Object("A")
	assert.Equal(t, 0.0, orig.Attrs().Left)
}

func TestDuplicate_LineMovesEndpoints(t *testing.T) {
	s := NewScene()
	line := NewLine(10, 10, 40, 50)
	id, err := s.Add(line)
	require.NoError(t, err)

	dup, err := s.Duplicate(id, 20, 20)
	require.NoError(t, err)

	l := dup.(*Line)
	assert.Equal(t, 30.0, l.X1)
	assert.Equal(t, 70.0, l.Y2)
	assert.Equal(t, 30.0, l.Left)
	assert.Equal(t, 30.0, l.Top)
	assert.Equal(t, 50.0, l.Length())
}

func TestSelect_NonSelectable(t *testing.T) {
	s := NewScene()
	r := newRect("fixed", 0, 0, 10, 10)
	r.Selectable = false
	_, err := s.Add(r)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Select("fixed"), ErrNotSelectable)
	assert.ErrorIs(t, s.Select("ghost"), ErrObjectNotFound)
}

func TestClear(t *testing.T) {
	s := sceneABC(t)
	require.NoError(t, s.Select("A"))

	s.Clear()

	assert.Zero(t, s.Len())
	assert.Equal(t, BackgroundColor, s.Background.Color)
	assert.False(t, s.Background.Grid)
	_, ok := s.Active()
	assert.False(t, ok)
}

func TestGridToggle(t *testing.T) {
	s := NewScene()
	s.Clear()

	assert.True(t, s.ToggleGrid())
	assert.Equal(t, float64(GridSize), s.Background.GridSize)
	assert.False(t, s.ToggleGrid())
}

func TestZoom_Clamped(t *testing.T) {
	s := NewScene()

	for i := 0; i < 100; i++ {
		s.ZoomIn()
	}
	assert.Equal(t, MaxZoom, s.Viewport.Zoom)

	for i := 0; i < 100; i++ {
		s.ZoomOut()
	}
	assert.Equal(t, MinZoom, s.Viewport.Zoom)

	s.ResetZoom()
	assert.Equal(t, 1.0, s.Viewport.Zoom)

	s.ZoomIn()
	assert.InDelta(t, 1.1, s.Viewport.Zoom, 1e-9)
}

func TestClone_IsDeep(t *testing.T) {
	s := sceneABC(t)
	c := s.Clone()

	require.NoError(t, c.Update("A", func(obj Object) error {
		obj.Attrs().Fill = "blue"
		return nil
	}))
	c.Remove("B")

	a, _ := s.Object("A")
	assert.Equal(t, "#cccccc", a.Attrs().Fill)
	assert.Equal(t, 3, s.Len())
}

func TestHitTest_TopMostInteractive(t *testing.T) {
	s := NewScene()
	_, _ = s.Add(newRect("bottom", 0, 0, 100, 100))
	_, _ = s.Add(newRect("top", 50, 50, 100, 100))

	label := &Text{Base: NewBase(60, 60), Text: "note", FontSize: 12}
	label.ID = "label"
	label.Evented = false
	label.Selectable = false
	_, _ = s.Add(label)

	id, ok := s.HitTest(60, 60)
	require.True(t, ok)
	assert.Equal(t, "top", id)

	id, ok = s.HitTest(10, 10)
	require.True(t, ok)
	assert.Equal(t, "bottom", id)

	_, ok = s.HitTest(500, 500)
	assert.False(t, ok)
}

func TestBounds_Scaled(t *testing.T) {
	e := &Ellipse{Base: NewBase(10, 20), RX: 25, RY: 10}
	e.ScaleX = 2

	x, y, w, h := Bounds(e)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 20.0, h)
}
