// Package geometry provides the 2D primitives used by the overlap engine:
// footprint vertex construction, clockwise rotation, axis projection and
// 1D interval overlap. All functions are pure and operate on mgl64 vectors.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Notch proportions for the non-rectangular block footprints (LBlock, UBlock,
// JBlock). These approximate the Animal-AI item meshes and are not exact.
const (
	smallRatio = 0.25
	largeRatio = 0.75
)

// AxisAlignedRectangleVertices returns the four corners of an unrotated
// rectangle centered at center, in top-left, top-right, bottom-right,
// bottom-left order. The winding is relied upon by the rotated variants
// and by the block constructions below.
func AxisAlignedRectangleVertices(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	halfW := 0.5 * width
	halfH := 0.5 * height

	return []mgl64.Vec2{
		center.Add(mgl64.Vec2{-halfW, halfH}),
		center.Add(mgl64.Vec2{halfW, halfH}),
		center.Add(mgl64.Vec2{halfW, -halfH}),
		center.Add(mgl64.Vec2{-halfW, -halfH}),
	}
}

// RotateClockwise rotates points clockwise by angleDeg about pivot and
// returns the rotated copies. The input slice is never mutated.
//
// The rotation matrix [[cos, sin], [-sin, cos]] is the clockwise counterpart
// of the usual anticlockwise matrix; the arena is viewed from above and
// item rotations increase clockwise.
func RotateClockwise(points []mgl64.Vec2, angleDeg float64, pivot mgl64.Vec2) []mgl64.Vec2 {
	angle := mgl64.DegToRad(angleDeg)
	cos := math.Cos(angle)
	sin := math.Sin(angle)

	rotated := make([]mgl64.Vec2, len(points))
	for i, p := range points {
		x := p.X() - pivot.X()
		y := p.Y() - pivot.Y()
		rotated[i] = mgl64.Vec2{
			cos*x + sin*y + pivot.X(),
			-sin*x + cos*y + pivot.Y(),
		}
	}
	return rotated
}

// RotatedRectangleVertices returns the corners of a rectangle rotated
// clockwise about its own center.
func RotatedRectangleVertices(center mgl64.Vec2, width, height float64, angleDeg float64) []mgl64.Vec2 {
	return RotateClockwise(AxisAlignedRectangleVertices(center, width, height), angleDeg, center)
}

// RotatedLBlockVertices returns the six corners of an L-shaped footprint
// rotated clockwise about its bounding-rectangle center. The notch is carved
// out of the base rectangle using the fixed notch proportions.
func RotatedLBlockVertices(center mgl64.Vec2, width, height float64, angleDeg float64) []mgl64.Vec2 {
	return RotateClockwise(axisAlignedLBlockVertices(center, width, height), angleDeg, center)
}

func axisAlignedLBlockVertices(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	r := AxisAlignedRectangleVertices(center, width, height)
	a, b, _, d := r[0], r[1], r[2], r[3]

	c1 := b.Add(mgl64.Vec2{0, -smallRatio * height})
	c2 := c1.Add(mgl64.Vec2{-largeRatio * width, 0})
	c3 := mgl64.Vec2{c2.X(), d.Y()}
	return []mgl64.Vec2{a, b, c1, c2, c3, d}
}

// RotatedUBlockVertices returns the eight corners of a U-shaped footprint
// rotated clockwise about its bounding-rectangle center.
func RotatedUBlockVertices(center mgl64.Vec2, width, height float64, angleDeg float64) []mgl64.Vec2 {
	return RotateClockwise(axisAlignedUBlockVertices(center, width, height), angleDeg, center)
}

func axisAlignedUBlockVertices(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	r := AxisAlignedRectangleVertices(center, width, height)
	a, b, c, d := r[0], r[1], r[2], r[3]

	c1 := c
	c2 := c1.Add(mgl64.Vec2{-smallRatio * width, 0})
	c3 := c2.Add(mgl64.Vec2{0, largeRatio * height})
	c4 := c3.Add(mgl64.Vec2{-0.5 * width, 0})
	c5 := c4.Add(mgl64.Vec2{0, -largeRatio * height})
	return []mgl64.Vec2{a, b, c1, c2, c3, c4, c5, d}
}

// RotatedJBlockVertices returns the six corners of a J-shaped footprint
// rotated clockwise about its bounding-rectangle center. The J is the
// mirror construction of the L, carved from the top edge.
func RotatedJBlockVertices(center mgl64.Vec2, width, height float64, angleDeg float64) []mgl64.Vec2 {
	return RotateClockwise(axisAlignedJBlockVertices(center, width, height), angleDeg, center)
}

func axisAlignedJBlockVertices(center mgl64.Vec2, width, height float64) []mgl64.Vec2 {
	r := AxisAlignedRectangleVertices(center, width, height)
	a, c, d := r[0], r[2], r[3]

	b1 := a.Add(mgl64.Vec2{smallRatio * width, 0})
	b2 := b1.Add(mgl64.Vec2{0, -largeRatio * height})
	b3 := b2.Add(mgl64.Vec2{largeRatio * width, 0})
	return []mgl64.Vec2{a, b1, b2, b3, c, d}
}

// ProjectOntoAxis returns the scalar projection (dot product) of each point
// onto the given axis. The axis is expected to be normalised.
func ProjectOntoAxis(points []mgl64.Vec2, axis mgl64.Vec2) []float64 {
	projections := make([]float64, len(points))
	for i, p := range points {
		projections[i] = p.Dot(axis)
	}
	return projections
}

// MinMaxProjection projects points onto axis and returns the smallest and
// largest projection values, i.e. the interval the polygon covers on the axis.
func MinMaxProjection(points []mgl64.Vec2, axis mgl64.Vec2) (float64, float64) {
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, p := range points {
		d := p.Dot(axis)
		min = math.Min(min, d)
		max = math.Max(max, d)
	}
	return min, max
}

// SegmentOverlap returns the overlap length of two segments on a common
// line, each given by its two endpoint values in either order. Disjoint or
// merely touching segments yield 0. The result is symmetric in its arguments.
func SegmentOverlap(a1, a2, b1, b2 float64) float64 {
	lo1, hi1 := math.Min(a1, a2), math.Max(a1, a2)
	lo2, hi2 := math.Min(b1, b2), math.Max(b1, b2)
	return math.Max(0, math.Min(hi1, hi2)-math.Max(lo1, lo2))
}

// Normalize returns the unit vector pointing in the direction of v.
func Normalize(v mgl64.Vec2) mgl64.Vec2 {
	return v.Normalize()
}
