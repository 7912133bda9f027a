package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewFootprintSanitisesNegativeDimensions(t *testing.T) {
	f := NewFootprint("Wall", "Wall 0", 1, 2, 3, -4, -5, -6, 10)

	if f.Length != 4 || f.Width != 5 || f.Height != 6 {
		t.Errorf("dimensions = (%v, %v, %v), want (4, 5, 6)", f.Length, f.Width, f.Height)
	}
}

func TestKindForType(t *testing.T) {
	tests := []struct {
		typeName string
		want     Kind
	}{
		{"Wall", KindBox},
		{"Ramp", KindBox},
		{"LBlock", KindLBlock},
		{"LObject", KindLBlock},
		{"UBlock", KindUBlock},
		{"JBlock", KindJBlock},
		{"SomethingNew", KindBox},
	}

	for _, tt := range tests {
		if got := KindForType(tt.typeName); got != tt.want {
			t.Errorf("KindForType(%q) = %v, want %v", tt.typeName, got, tt.want)
		}
	}
}

func TestBaseVerticesCountPerKind(t *testing.T) {
	counts := map[string]int{
		"Wall":   4,
		"LBlock": 6,
		"UBlock": 8,
		"JBlock": 6,
	}

	for typeName, want := range counts {
		f := NewFootprint(typeName, typeName+" 0", 0, 0, 0, 4, 4, 1, 0)
		if got := len(f.BaseVertices()); got != want {
			t.Errorf("%s vertex count = %d, want %d", typeName, got, want)
		}
	}
}

func TestBaseVerticesFollowMutationsImmediately(t *testing.T) {
	// Vertices are derived on demand, so a move must be visible on the very
	// next read with no separate refresh step.
	f := NewFootprint("Wall", "Wall 0", 0, 0, 0, 2, 2, 1, 0)

	before := f.BaseVertices()
	f.MoveTo(10, 0, 5, 90)
	after := f.BaseVertices()

	if before[0] == after[0] {
		t.Fatalf("vertices did not follow the move: %v", after[0])
	}

	want := mgl64.Vec2{10, 5}
	center := after[0].Add(after[2]).Mul(0.5)
	if math.Abs(center.X()-want.X()) > 1e-9 || math.Abs(center.Y()-want.Y()) > 1e-9 {
		t.Errorf("footprint center after move = %v, want %v", center, want)
	}
}

func TestBaseVerticesFollowResize(t *testing.T) {
	f := NewFootprint("Wall", "Wall 0", 0, 0, 0, 2, 2, 1, 0)

	f.Resize(6, 2, 1)
	v := f.BaseVertices()

	if math.Abs(v[0].X()-(-3)) > 1e-9 {
		t.Errorf("left edge after resize = %v, want -3", v[0].X())
	}
}

func TestVerticalInterval(t *testing.T) {
	f := NewFootprint("Wall", "Wall 0", 0, 2.5, 0, 1, 1, 3, 0)

	lo, hi := f.VerticalInterval()
	if lo != 2.5 || hi != 5.5 {
		t.Errorf("vertical interval = [%v, %v], want [2.5, 5.5]", lo, hi)
	}
}

func TestArenaFindItem(t *testing.T) {
	arena := &Arena{
		Items: []*Footprint{
			NewFootprint("Wall", "Wall 0", 0, 0, 0, 1, 1, 1, 0),
			NewFootprint("Ramp", "Ramp 0", 5, 0, 5, 1, 1, 1, 0),
		},
	}

	if got := arena.FindItem("Ramp 0"); got == nil || got.Type != "Ramp" {
		t.Errorf("FindItem(Ramp 0) = %v", got)
	}
	if got := arena.FindItem("Missing"); got != nil {
		t.Errorf("FindItem(Missing) = %v, want nil", got)
	}
	if names := arena.ItemNames(); len(names) != 2 || names[0] != "Wall 0" {
		t.Errorf("ItemNames = %v", names)
	}
}
