package engine

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcoles/arenaforge/internal/model"
)

// Decimal precision used when printing overlap distances.
const overlapDecimals = 3

// PairOverlap records one overlapping pair found during a scan, with the
// horizontal minimum translation vector and the vertical extent overlap.
type PairOverlap struct {
	NameA           string
	NameB           string
	MTV             mgl64.Vec2
	VerticalOverlap float64
}

// FindOverlaps runs the separating-axis test over every unordered pair of
// items and returns one record per overlapping pair, in pair-scan order.
// The scan is O(n²) with a constant-bounded test per pair, which is fine for
// the tens-to-hundreds of items a hand-built arena holds.
//
// TODO: add a broad phase if configs ever grow past a few hundred items.
func FindOverlaps(items []*model.Footprint) []PairOverlap {
	var found []PairOverlap

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]

			overlapping, mtv := Overlap(a, b)
			if !overlapping {
				continue
			}

			aLo, aHi := a.VerticalInterval()
			bLo, bHi := b.VerticalInterval()

			found = append(found, PairOverlap{
				NameA:           a.Name,
				NameB:           b.Name,
				MTV:             mtv,
				VerticalOverlap: math.Min(aHi, bHi) - math.Max(aLo, bLo),
			})
		}
	}

	return found
}

// CheckOverlaps returns the set of item names participating in at least one
// overlapping pair. Callers that need per-pair detail use FindOverlaps
// directly.
func CheckOverlaps(items []*model.Footprint) map[string]bool {
	overlapping := make(map[string]bool)
	for _, pair := range FindOverlaps(items) {
		overlapping[pair.NameA] = true
		overlapping[pair.NameB] = true
	}
	return overlapping
}

// FormatOverlapWarnings produces one human-readable warning per overlapping
// pair, with the translation needed to separate the items.
func FormatOverlapWarnings(overlaps []PairOverlap) []string {
	warnings := make([]string, 0, len(overlaps))
	for _, o := range overlaps {
		warnings = append(warnings, fmt.Sprintf(
			"overlap between %q and %q: move apart by %g in x and %g in z (or %g in y)",
			o.NameA, o.NameB,
			roundUp(o.MTV.X(), overlapDecimals),
			roundUp(o.MTV.Y(), overlapDecimals),
			roundUp(o.VerticalOverlap, overlapDecimals),
		))
	}
	return warnings
}

// roundUp rounds v towards +inf at the given number of decimals. Positive
// magnitudes are never under-stated; negative components shrink towards zero
// instead, matching how the warnings have always displayed them.
func roundUp(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Ceil(v*factor) / factor
}
