package geometry

// Transform is an axis-aligned scale followed by a translation, which is all
// the window layer motion split view ever needs. The zero value is not valid;
// use Identity.
type Transform struct {
	ScaleX     float64
	ScaleY     float64
	TranslateX float64
	TranslateY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1}
}

// Translation returns a pure translation transform.
func Translation(dx, dy float64) Transform {
	return Transform{ScaleX: 1, ScaleY: 1, TranslateX: dx, TranslateY: dy}
}

// IsIdentity reports whether the transform leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t.ScaleX == 1 && t.ScaleY == 1 && t.TranslateX == 0 && t.TranslateY == 0
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: int(t.ScaleX*float64(p.X) + t.TranslateX),
		Y: int(t.ScaleY*float64(p.Y) + t.TranslateY),
	}
}

// ApplyToRect maps r through the transform.
func (t Transform) ApplyToRect(r Rect) Rect {
	return Rect{
		X:      int(t.ScaleX*float64(r.X) + t.TranslateX),
		Y:      int(t.ScaleY*float64(r.Y) + t.TranslateY),
		Width:  int(t.ScaleX * float64(r.Width)),
		Height: int(t.ScaleY * float64(r.Height)),
	}
}

// AboutPivot rebases the transform so that scaling happens about the given
// pivot point instead of the origin.
func (t Transform) AboutPivot(pivot Point) Transform {
	out := t
	out.TranslateX += float64(pivot.X) * (1 - t.ScaleX)
	out.TranslateY += float64(pivot.Y) * (1 - t.ScaleY)
	return out
}

// TransformBetweenRects returns the transform that maps src onto dst.
func TransformBetweenRects(src, dst Rect) Transform {
	if src.IsEmpty() {
		return Identity()
	}
	sx := float64(dst.Width) / float64(src.Width)
	sy := float64(dst.Height) / float64(src.Height)
	return Transform{
		ScaleX:     sx,
		ScaleY:     sy,
		TranslateX: float64(dst.X) - sx*float64(src.X),
		TranslateY: float64(dst.Y) - sy*float64(src.Y),
	}
}

// LerpTransform interpolates between two transforms. progress 0 yields from,
// progress 1 yields to.
func LerpTransform(from, to Transform, progress float64) Transform {
	return Transform{
		ScaleX:     from.ScaleX + (to.ScaleX-from.ScaleX)*progress,
		ScaleY:     from.ScaleY + (to.ScaleY-from.ScaleY)*progress,
		TranslateX: from.TranslateX + (to.TranslateX-from.TranslateX)*progress,
		TranslateY: from.TranslateY + (to.TranslateY-from.TranslateY)*progress,
	}
}
