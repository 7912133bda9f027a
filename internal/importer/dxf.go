package importer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/tcoles/arenaforge/internal/model"
)

// dxfWallHeight is the height assigned to footprints traced from a floor plan.
const dxfWallHeight = 3.0

// segment is a line between two plan points, used for chaining loose LINE and
// ARC entities into closed outlines.
type segment struct {
	start mgl64.Vec2
	end   mgl64.Vec2
}

// ImportDXF reads a DXF floor plan and turns each closed shape (LWPOLYLINE,
// CIRCLE, or chain of connected LINEs/ARCs) into an axis-aligned wall
// footprint covering the shape's bounding box.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]mgl64.Vec2
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			outlines = append(outlines, circleToOutline(e, 64))

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: mgl64.Vec2{e.Start[0], e.Start[1]},
				end:   mgl64.Vec2{e.End[0], e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	for _, chained := range chainSegments(segments, 0.01) {
		if len(chained) >= 3 {
			outlines = append(outlines, chained)
		}
	}

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	items, warnings := wallFootprints(outlines)
	result.Items = append(result.Items, items...)
	result.Warnings = append(result.Warnings, warnings...)

	return result
}

// wallFootprints maps each closed outline to an axis-aligned wall footprint
// covering its bounding box, centered on the box and resting on the floor.
// Degenerate shapes are skipped with a warning.
func wallFootprints(outlines [][]mgl64.Vec2) ([]*model.Footprint, []string) {
	var items []*model.Footprint
	var warnings []string

	for _, outline := range outlines {
		min, max := boundingBox(outline)
		length := max.X() - min.X()
		width := max.Y() - min.Y()

		if length < 0.01 || width < 0.01 {
			warnings = append(warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f)", length, width))
			continue
		}

		name := model.InstanceName("Wall", len(items))
		item := model.NewFootprint("Wall", name,
			(min.X()+max.X())/2, 0, (min.Y()+max.Y())/2,
			length, width, dxfWallHeight, 0)
		if color, err := model.DefaultColor("Wall"); err == nil {
			item.Color = &color
		}
		items = append(items, item)
	}

	return items, warnings
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to a vertex list.
// Bulged vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) []mgl64.Vec2 {
	var outline []mgl64.Vec2

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := mgl64.Vec2{v[0], v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := mgl64.Vec2{lw.Vertices[nextIdx][0], lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 mgl64.Vec2, bulge float64, numSegments int) []mgl64.Vec2 {
	mid := p1.Add(p2).Mul(0.5)
	chord := p2.Sub(p1)
	chordLen := chord.Len()
	if chordLen < 1e-9 {
		return []mgl64.Vec2{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perp := mgl64.Vec2{-chord.Y() / chordLen, chord.X() / chordLen}
	if bulge > 0 {
		perp = perp.Mul(-1)
	}
	center := mid.Add(perp.Mul(radius - sagitta))

	startAngle := math.Atan2(p1.Y()-center.Y(), p1.X()-center.X())
	endAngle := math.Atan2(p2.Y()-center.Y(), p2.X()-center.X())

	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]mgl64.Vec2, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, mgl64.Vec2{
			center.X() + radius*math.Cos(angle),
			center.Y() + radius*math.Sin(angle),
		})
	}
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) []mgl64.Vec2 {
	outline := make([]mgl64.Vec2, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = mgl64.Vec2{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return outline
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []mgl64.Vec2 {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]mgl64.Vec2, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = mgl64.Vec2{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []mgl64.Vec2) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines. tolerance
// is the maximum endpoint distance to consider two segments connected.
func chainSegments(segs []segment, tolerance float64) [][]mgl64.Vec2 {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]mgl64.Vec2

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []mgl64.Vec2{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if tail.Sub(seg.start).Len() <= tolerance {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if tail.Sub(seg.end).Len() <= tolerance {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Closed if the chain returns to its start
		if len(chain) >= 4 && chain[0].Sub(chain[len(chain)-1]).Len() <= tolerance {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// boundingBox returns the min and max corners of a vertex list.
func boundingBox(pts []mgl64.Vec2) (mgl64.Vec2, mgl64.Vec2) {
	min := pts[0]
	max := pts[0]
	for _, p := range pts[1:] {
		min = mgl64.Vec2{math.Min(min.X(), p.X()), math.Min(min.Y(), p.Y())}
		max = mgl64.Vec2{math.Max(max.X(), p.X()), math.Max(max.Y(), p.Y())}
	}
	return min, max
}
