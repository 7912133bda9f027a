// Package model defines the arena data structures shared by the engine,
// project, session and export packages.
package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tcoles/arenaforge/internal/geometry"
)

// Kind classifies the horizontal footprint shape of an item.
type Kind int

const (
	KindBox Kind = iota // plain rectangular footprint
	KindLBlock
	KindUBlock
	KindJBlock
)

func (k Kind) String() string {
	switch k {
	case KindLBlock:
		return "LBlock"
	case KindUBlock:
		return "UBlock"
	case KindJBlock:
		return "JBlock"
	default:
		return "Box"
	}
}

// KindForType returns the footprint kind for an Animal-AI item type name.
// All types other than the three block shapes use a rectangular footprint.
func KindForType(typeName string) Kind {
	switch typeName {
	case "LBlock", "LObject":
		return KindLBlock
	case "UBlock", "UObject":
		return KindUBlock
	case "JBlock", "JObject":
		return KindJBlock
	default:
		return KindBox
	}
}

// RGB is an item display color with components in [0, 255].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Footprint is a single arena item: an oriented rectangular (or block-shaped)
// horizontal footprint plus a vertical extent.
//
// Position Y is the item's base elevation above the arena floor, not the
// center of the vertical extent; the item occupies [Y, Y+Height] vertically.
// Length runs along x, Width along z, Height along y. Rotation is the
// clockwise angle of the footprint about its own center, in degrees, and is
// deliberately left unclamped.
type Footprint struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"` // instance name, e.g. "Wall 2"
	Type     string  `json:"type"` // item type name, e.g. "Wall"
	X        float64 `json:"x"`
	Y        float64 `json:"y"` // base elevation
	Z        float64 `json:"z"`
	Length   float64 `json:"length"` // along x
	Width    float64 `json:"width"`  // along z
	Height   float64 `json:"height"` // along y
	Rotation float64 `json:"rotation"`
	Color    *RGB    `json:"color,omitempty"`
}

// NewFootprint builds a footprint, taking the absolute value of negative
// dimensions. The geometry core never validates its inputs, so construction
// is the only place dimensions are sanitised.
func NewFootprint(typeName, name string, x, y, z, length, width, height, rotation float64) *Footprint {
	return &Footprint{
		Name:     name,
		Type:     typeName,
		X:        x,
		Y:        y,
		Z:        z,
		Length:   math.Abs(length),
		Width:    math.Abs(width),
		Height:   math.Abs(height),
		Rotation: rotation,
	}
}

// Kind returns the footprint shape derived from the item type.
func (f *Footprint) Kind() Kind {
	return KindForType(f.Type)
}

// Center2D is the footprint center on the horizontal plane.
func (f *Footprint) Center2D() mgl64.Vec2 {
	return mgl64.Vec2{f.X, f.Z}
}

// BaseVertices computes the corner points of the horizontal footprint in the
// world frame. It is a pure function of the current position, size and
// rotation; nothing is cached, so the result can never go stale after a
// mutation.
//
// The planar rectangle's width is the item's 3D Length and its height the
// item's 3D Width: the 2D construction happens in the (x, z) plane.
func (f *Footprint) BaseVertices() []mgl64.Vec2 {
	center := f.Center2D()
	switch f.Kind() {
	case KindLBlock:
		return geometry.RotatedLBlockVertices(center, f.Length, f.Width, f.Rotation)
	case KindUBlock:
		return geometry.RotatedUBlockVertices(center, f.Length, f.Width, f.Rotation)
	case KindJBlock:
		return geometry.RotatedJBlockVertices(center, f.Length, f.Width, f.Rotation)
	default:
		return geometry.RotatedRectangleVertices(center, f.Length, f.Width, f.Rotation)
	}
}

// VerticalInterval returns the [base, top] extent of the item along y.
// An item with Height <= 0 has an empty extent and never overlaps vertically.
func (f *Footprint) VerticalInterval() (float64, float64) {
	return f.Y, f.Y + f.Height
}

// MoveTo updates position and rotation in a single step. Derived geometry is
// always recomputed on demand, so callers can never observe a half-moved item.
func (f *Footprint) MoveTo(x, y, z, rotation float64) {
	f.X = x
	f.Y = y
	f.Z = z
	f.Rotation = rotation
}

// Resize replaces the item dimensions, sanitising negatives like NewFootprint.
func (f *Footprint) Resize(length, width, height float64) {
	f.Length = math.Abs(length)
	f.Width = math.Abs(width)
	f.Height = math.Abs(height)
}

// Arena is a single arena configuration: scalar settings plus the ordered
// list of physical items.
type Arena struct {
	PassMark  float64      `json:"pass_mark"`
	TimeLimit float64      `json:"time_limit"`
	Items     []*Footprint `json:"items"`
}

// ItemNames returns the instance names of all items, in arena order.
func (a *Arena) ItemNames() []string {
	names := make([]string, len(a.Items))
	for i, item := range a.Items {
		names[i] = item.Name
	}
	return names
}

// FindItem returns the first item with the given instance name, or nil.
func (a *Arena) FindItem(name string) *Footprint {
	for _, item := range a.Items {
		if item.Name == name {
			return item
		}
	}
	return nil
}

// ArenaConfig is a full configuration file: one or more arenas in order.
type ArenaConfig struct {
	Arenas []*Arena `json:"arenas"`
}
