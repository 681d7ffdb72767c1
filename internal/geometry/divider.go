package geometry

import "math"

// The divider can always rest at these ratios of the work area length.
var fixedPositionRatios = []float64{0, 0.5, 1}

// Optional resting ratios. Whether they are offered depends on the minimum
// sizes of the snapped windows.
const (
	OneThirdPositionRatio = 1.0 / 3.0
	TwoThirdPositionRatio = 2.0 / 3.0
)

// Black scrim tuning. The scrim starts to fade in once the divider passes an
// optional position ratio and reaches full opacity after moving a further
// ScrimFadeInRatio of the work area length.
const (
	ScrimFadeInRatio = 0.1
	ScrimMaxOpacity  = 0.4
	scrimOnsetRatio  = OneThirdPositionRatio - ScrimFadeInRatio
)

// DividerEndPosition returns the length of the work area along the split
// axis, which is the maximum divider position.
func DividerEndPosition(workArea Rect, horizontal bool) int {
	if horizontal {
		return workArea.Width
	}
	return workArea.Height
}

// DefaultDividerPosition returns the divider origin that splits the work area
// in half. In tablet mode the divider widget has thickness, so its origin
// sits half a thickness before the center.
func DefaultDividerPosition(end int, tablet bool, thickness int) int {
	pos := end / 2
	if tablet {
		pos -= thickness / 2
	}
	return pos
}

// SnapParams carries everything SnappedBounds needs. MinLength is the
// window's minimum size along the split axis, zero when unconstrained.
type SnapParams struct {
	WorkArea          Rect
	Horizontal        bool
	PhysicalLeftOrTop bool
	Tablet            bool
	DividerPosition   int
	Thickness         int
	MinLength         int
	Resizing          bool
}

// SnappedBounds computes the screen bounds of a snapped window.
//
// The window's length along the split axis is derived from the divider
// position. A window squeezed below its minimum keeps its minimum length
// while a drag is in flight; outside of a drag in tablet mode the divider
// would be bounced back to the default position, so the default length is
// reported instead.
func SnappedBounds(p SnapParams) Rect {
	end := DividerEndPosition(p.WorkArea, p.Horizontal)

	var windowSize int
	if p.PhysicalLeftOrTop {
		windowSize = p.DividerPosition
	} else {
		windowSize = end - p.DividerPosition
		if p.Tablet {
			windowSize -= p.Thickness
		}
	}

	if windowSize < p.MinLength {
		if p.Tablet && !p.Resizing {
			windowSize = end/2 - p.Thickness/2
			// The default divider position rounds down toward the left or
			// top, so the right or bottom window takes the leftover unit.
			if !p.PhysicalLeftOrTop && end%2 == 1 {
				windowSize++
			}
		} else {
			windowSize = p.MinLength
		}
	}

	left := p.WorkArea.X
	top := p.WorkArea.Y
	right := p.WorkArea.Right()
	bottom := p.WorkArea.Bottom()
	if p.Horizontal {
		if p.PhysicalLeftOrTop {
			right = left + windowSize
		} else {
			left = right - windowSize
		}
	} else {
		if p.PhysicalLeftOrTop {
			bottom = top + windowSize
		} else {
			top = bottom - windowSize
		}
	}
	return Rect{X: left, Y: top, Width: right - left, Height: bottom - top}
}

// OptionalPositionRatios returns the one-third and two-thirds ratios that the
// divider may rest at, given the minimum lengths of the physical left/top and
// right/bottom windows. A ratio is offered only when the window shrunk by it
// still fits.
func OptionalPositionRatios(minLeftLength, minRightLength, end int) []float64 {
	var ratios []float64
	if end <= 0 {
		return ratios
	}
	if float64(minLeftLength)/float64(end) <= OneThirdPositionRatio {
		ratios = append(ratios, OneThirdPositionRatio)
	}
	if float64(minRightLength)/float64(end) <= OneThirdPositionRatio {
		ratios = append(ratios, TwoThirdPositionRatio)
	}
	return ratios
}

// ClosestPositionRatio returns the resting ratio nearest to distance/length
// among the fixed ratios plus extras. Ties resolve to the ratio seen first,
// starting from zero.
func ClosestPositionRatio(distance, length float64, extras []float64) float64 {
	current := distance / length
	closest := 0.0
	for _, ratio := range append(append([]float64{}, fixedPositionRatios...), extras...) {
		if math.Abs(current-ratio) < math.Abs(current-closest) {
			closest = ratio
		}
	}
	return closest
}

// ClosestFixedDividerPosition quantizes a divider origin to the nearest
// resting position. The resting ratios describe the divider center, so the
// origin is converted to a center before matching and back after, except at
// the endpoints where the divider hugs the screen edge.
func ClosestFixedDividerPosition(dividerPosition, end, thickness, minLeftLength, minRightLength int) (position int, ratio float64) {
	extras := OptionalPositionRatios(minLeftLength, minRightLength, end)
	ratio = ClosestPositionRatio(float64(dividerPosition+thickness/2), float64(end), extras)
	position = int(math.Round(ratio * float64(end)))
	if ratio > 0 && ratio < 1 {
		position -= thickness / 2
	}
	return position, ratio
}

// ScrimSide decides which physical side the black scrim covers for the given
// pointer location, or false when no scrim should show. The minimum lengths
// belong to the physical left/top and right/bottom windows. The scrim
// appears once the pointer is within a third of an edge or once a window has
// been pushed to its minimum length.
func ScrimSide(location Point, workArea Rect, horizontal bool, minLeftLength, minRightLength int) (physicalLeftOrTop bool, show bool) {
	if !workArea.Contains(location) {
		return false, false
	}
	end := DividerEndPosition(workArea, horizontal)

	var leftDistance, rightDistance int
	if horizontal {
		leftDistance = location.X - workArea.X
		rightDistance = workArea.Right() - location.X
	} else {
		leftDistance = location.Y - workArea.Y
		rightDistance = workArea.Bottom() - location.Y
	}

	threshold := float64(end) * OneThirdPositionRatio
	if float64(leftDistance) < threshold || leftDistance < minLeftLength {
		return true, true
	}
	if float64(rightDistance) < threshold || rightDistance < minRightLength {
		return false, true
	}
	return false, false
}

// ScrimOpacity returns the scrim opacity for the given pointer location. The
// opacity ramps linearly from zero at the fade-in onset to ScrimMaxOpacity at
// the screen edge.
func ScrimOpacity(location Point, workArea Rect, horizontal bool) float64 {
	area := workArea
	loc := location.X
	if !horizontal {
		area = workArea.Transposed()
		loc = location.Y
	}
	opacity := ScrimMaxOpacity
	distance := math.Min(math.Abs(float64(loc-area.X)), math.Abs(float64(area.Right()-loc)))
	onset := float64(area.Width) * scrimOnsetRatio
	if distance > onset {
		opacity -= ScrimMaxOpacity * (distance - onset) / (float64(area.Width) * ScrimFadeInRatio)
		opacity = math.Max(opacity, 0)
	}
	return opacity
}

// SpawnCorner returns the corner of a just-snapped window that will abut the
// divider once its snap transform animation reaches the given progress. The
// divider spawn animation aligns the divider with this corner.
func SpawnCorner(bounds Rect, physicalLeftOrTop bool, transform Transform, progress float64) Point {
	p := bounds.Origin()
	if physicalLeftOrTop {
		p = bounds.BottomRight()
	}
	partial := LerpTransform(transform, Identity(), progress).AboutPivot(bounds.Origin())
	return partial.Apply(p)
}
