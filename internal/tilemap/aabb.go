package tilemap

import "github.com/robotmasters/engine/internal/fixedpoint"

// Rect is an entity's bounding box with a fixed-point origin and byte-valued
// size, matching EntityCore's size representation.
type Rect struct {
	X, Y          fixedpoint.Fixed
	Width, Height uint8
}

// RectFromEntity builds a Rect from an entity's position and size.
func RectFromEntity(pos fixedpoint.Vec2, width, height uint8) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: width, Height: height}
}

func (r Rect) Right() fixedpoint.Fixed {
	return r.X.Add(fixedpoint.FromInt(int16(r.Width)))
}

func (r Rect) Bottom() fixedpoint.Fixed {
	return r.Y.Add(fixedpoint.FromInt(int16(r.Height)))
}

func (r Rect) Overlaps(other Rect) bool {
	return r.X.Raw() < other.Right().Raw() &&
		r.Right().Raw() > other.X.Raw() &&
		r.Y.Raw() < other.Bottom().Raw() &&
		r.Bottom().Raw() > other.Y.Raw()
}

// AABB is an axis-aligned box with fixed-point width/height, used for the
// MTV/sweep algorithms that need sub-tile precision on all four fields.
type AABB struct {
	X, Y, Width, Height fixedpoint.Fixed
}

// AABBFromRect widens a byte-sized Rect into a full-Fixed AABB.
func AABBFromRect(r Rect) AABB {
	return AABB{
		X:      r.X,
		Y:      r.Y,
		Width:  fixedpoint.FromInt(int16(r.Width)),
		Height: fixedpoint.FromInt(int16(r.Height)),
	}
}

func (a AABB) Right() fixedpoint.Fixed  { return a.X.Add(a.Width) }
func (a AABB) Bottom() fixedpoint.Fixed { return a.Y.Add(a.Height) }

func (a AABB) Center() (fixedpoint.Fixed, fixedpoint.Fixed) {
	two := fixedpoint.FromInt(2)
	return a.X.Add(a.Width.Div(two)), a.Y.Add(a.Height.Div(two))
}

func (a AABB) Overlaps(other AABB) bool {
	return a.X.Raw() < other.Right().Raw() &&
		a.Right().Raw() > other.X.Raw() &&
		a.Y.Raw() < other.Bottom().Raw() &&
		a.Bottom().Raw() > other.Y.Raw()
}

// OverlapAmount returns the (x,y) overlap extent, zero if not overlapping.
func (a AABB) OverlapAmount(other AABB) (fixedpoint.Fixed, fixedpoint.Fixed) {
	if !a.Overlaps(other) {
		return fixedpoint.Zero, fixedpoint.Zero
	}
	overlapX := minInt32(a.Right().ToInt(), other.Right().ToInt()) - maxInt32(a.X.ToInt(), other.X.ToInt())
	overlapY := minInt32(a.Bottom().ToInt(), other.Bottom().ToInt()) - maxInt32(a.Y.ToInt(), other.Y.ToInt())
	return fixedpoint.FromInt(int16(maxInt32(overlapX, 0))), fixedpoint.FromInt(int16(maxInt32(overlapY, 0)))
}

// CalculateMTV returns the minimum translation vector separating a from
// other, choosing the axis of lesser overlap and a sign based on
// center-to-center direction.
func (a AABB) CalculateMTV(other AABB) (fixedpoint.Fixed, fixedpoint.Fixed) {
	overlapX, overlapY := a.OverlapAmount(other)
	if overlapX.IsZero() || overlapY.IsZero() {
		return fixedpoint.Zero, fixedpoint.Zero
	}

	if overlapX.Raw() < overlapY.Raw() {
		selfCenterX, _ := a.Center()
		otherCenterX, _ := other.Center()
		if selfCenterX.Raw() < otherCenterX.Raw() {
			return overlapX.Neg(), fixedpoint.Zero
		}
		return overlapX, fixedpoint.Zero
	}
	_, selfCenterY := a.Center()
	_, otherCenterY := other.Center()
	if selfCenterY.Raw() < otherCenterY.Raw() {
		return fixedpoint.Zero, overlapY.Neg()
	}
	return fixedpoint.Zero, overlapY
}

// Expand grows the AABB symmetrically by margin on every side.
func (a AABB) Expand(margin fixedpoint.Fixed) AABB {
	return AABB{
		X:      a.X.Sub(margin),
		Y:      a.Y.Sub(margin),
		Width:  a.Width.Add(margin.Mul(fixedpoint.FromInt(2))),
		Height: a.Height.Add(margin.Mul(fixedpoint.FromInt(2))),
	}
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
