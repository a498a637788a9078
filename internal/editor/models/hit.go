package models

// Bounds is the unrotated, scaled bounding box of obj.
func Bounds(obj Object) (x, y, w, h float64) {
	a := obj.Attrs()
	w, h = obj.Size()
	return a.Left, a.Top, w * scaleOr1(a.ScaleX), h * scaleOr1(a.ScaleY)
}

// HitTest returns the id of the top-most evented object whose bounding box
// contains (x, y). Rotation is ignored.
func (s *Scene) HitTest(x, y float64) (string, bool) {
	for i := len(s.objects) - 1; i >= 0; i-- {
		obj := s.objects[i]
		a := obj.Attrs()
		if !a.Evented || !a.Selectable {
			continue
		}
		bx, by, bw, bh := Bounds(obj)
		if x >= bx && x <= bx+bw && y >= by && y <= by+bh {
			return a.ID, true
		}
	}
	return "", false
}

func scaleOr1(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
