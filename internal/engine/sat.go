// Package engine implements the separating-axis overlap test for arena
// footprints and the pairwise overlap scan over a whole arena.
package engine

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcoles/arenaforge/internal/geometry"
	"github.com/tcoles/arenaforge/internal/model"
)

// Tolerances for treating an overlap magnitude as zero. Touching-but-not
// -overlapping footprints land within floating error of zero, so exact
// comparisons would misclassify them.
const (
	absTol = 1e-8
	relTol = 1e-5
)

// isClose mirrors numpy's closeness test: |a-b| <= atol + rtol*|b|.
func isClose(a, b float64) bool {
	return math.Abs(a-b) <= absTol+relTol*math.Abs(b)
}

func isCloseToZero(v float64) bool {
	return isClose(v, 0)
}

// SeparationAxes returns the two candidate separating axes of a rectangle
// rotated clockwise by degAngle: the axis along the rotation and its normal.
// The sign of the angle is flipped to move from the arena's clockwise
// convention into the anticlockwise one assumed by cos/sin, and the results
// are unit vectors by construction.
func SeparationAxes(degAngle float64) [2]mgl64.Vec2 {
	trigAngle := -degAngle
	rad1 := mgl64.DegToRad(trigAngle)
	rad2 := mgl64.DegToRad(math.Mod(trigAngle+90, 360))

	return [2]mgl64.Vec2{
		{math.Cos(rad1), math.Sin(rad1)},
		{math.Cos(rad2), math.Sin(rad2)},
	}
}

// candidateAxes collects the separation axes of both footprints, removes
// exact duplicates (axes derived from equal rotations are bit-identical)
// and returns them sorted by x then y so that iteration order, and with it
// the minimum-translation tie-break, is deterministic.
func candidateAxes(a, b *model.Footprint) []mgl64.Vec2 {
	seen := make(map[mgl64.Vec2]bool, 4)
	var axes []mgl64.Vec2
	for _, rotation := range []float64{a.Rotation, b.Rotation} {
		for _, axis := range SeparationAxes(rotation) {
			if !seen[axis] {
				seen[axis] = true
				axes = append(axes, axis)
			}
		}
	}

	sort.Slice(axes, func(i, j int) bool {
		if axes[i].X() != axes[j].X() {
			return axes[i].X() < axes[j].X()
		}
		return axes[i].Y() < axes[j].Y()
	})
	return axes
}

// Overlap reports whether two footprints overlap in 3D and the minimum
// translation vector on the horizontal plane that separates them.
//
// The vertical extents are compared first: items stacked with disjoint
// [base, base+height] intervals never overlap regardless of their horizontal
// placement. Otherwise the separating-axis test runs over the up-to-four
// candidate axes; a single (near-)zero projection overlap proves separation.
// When every axis overlaps, the returned vector is the smallest per-axis
// overlap times its axis; ties go to the lexicographically first axis.
//
// The zero vector doubles as the "no overlap" value, so callers must branch
// on the boolean rather than on the vector magnitude.
func Overlap(a, b *model.Footprint) (bool, mgl64.Vec2) {
	zero := mgl64.Vec2{}

	// Degenerate heights denote flat markers with an empty vertical extent.
	if a.Height <= 0 || b.Height <= 0 {
		return false, zero
	}

	aLo, aHi := a.VerticalInterval()
	bLo, bHi := b.VerticalInterval()
	if isCloseToZero(geometry.SegmentOverlap(aLo, aHi, bLo, bHi)) {
		return false, zero
	}

	verticesA := a.BaseVertices()
	verticesB := b.BaseVertices()

	minOverlap := math.Inf(1)
	var minAxis mgl64.Vec2

	for _, axis := range candidateAxes(a, b) {
		minA, maxA := geometry.MinMaxProjection(verticesA, axis)
		minB, maxB := geometry.MinMaxProjection(verticesB, axis)

		overlap := geometry.SegmentOverlap(minA, maxA, minB, maxB)
		if isCloseToZero(overlap) {
			// A genuine separating axis: the footprints cannot intersect.
			return false, zero
		}
		if overlap < minOverlap {
			minOverlap = overlap
			minAxis = axis
		}
	}

	return true, minAxis.Mul(minOverlap)
}
