// Package session holds the mutable editing state of an open configuration:
// which arena and item are active, and the move/resize/spawn operations the
// editor performs on them. The geometry and overlap code stays stateless;
// everything selection-shaped lives here instead.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tcoles/arenaforge/internal/engine"
	"github.com/tcoles/arenaforge/internal/model"
)

// Session is an open configuration plus editing state. It is not safe for
// concurrent use; the editor drives it from a single goroutine.
type Session struct {
	Config *model.ArenaConfig

	arenaIndex int
	selected   string // instance name of the selected item, "" when none

	arenaWidth float64
	arenaDepth float64
}

// New opens a session on a loaded configuration. The arena floor extents
// are used to place newly spawned items.
func New(config *model.ArenaConfig, arenaWidth, arenaDepth float64) *Session {
	return &Session{
		Config:     config,
		arenaWidth: arenaWidth,
		arenaDepth: arenaDepth,
	}
}

// CurrentArena returns the arena being edited.
func (s *Session) CurrentArena() *model.Arena {
	return s.Config.Arenas[s.arenaIndex]
}

// SelectArena switches editing to another arena and clears the selection.
func (s *Session) SelectArena(index int) error {
	if index < 0 || index >= len(s.Config.Arenas) {
		return fmt.Errorf("arena index %d out of range", index)
	}
	s.arenaIndex = index
	s.selected = ""
	return nil
}

// Select makes the named item the editing target.
func (s *Session) Select(name string) error {
	if s.CurrentArena().FindItem(name) == nil {
		return fmt.Errorf("no item named %q", name)
	}
	s.selected = name
	return nil
}

// Deselect clears the selection.
func (s *Session) Deselect() {
	s.selected = ""
}

// Selected returns the selected item, or nil when nothing is selected.
func (s *Session) Selected() *model.Footprint {
	if s.selected == "" {
		return nil
	}
	return s.CurrentArena().FindItem(s.selected)
}

// PreviewMove trials a move of the selected item without committing it and
// returns the names of the items the moved footprint would overlap. The
// editor calls this while dragging to color the ghost footprint.
func (s *Session) PreviewMove(x, y, z, rotation float64) ([]string, error) {
	item := s.Selected()
	if item == nil {
		return nil, fmt.Errorf("no item selected")
	}

	trial := *item
	trial.MoveTo(x, y, z, rotation)

	var hits []string
	for _, other := range s.CurrentArena().Items {
		if other.Name == item.Name {
			continue
		}
		if overlapping, _ := engine.Overlap(&trial, other); overlapping {
			hits = append(hits, other.Name)
		}
	}
	return hits, nil
}

// MoveSelected commits a move of the selected item. Position and rotation
// change in one step; derived vertices are recomputed on the next read.
func (s *Session) MoveSelected(x, y, z, rotation float64) error {
	item := s.Selected()
	if item == nil {
		return fmt.Errorf("no item selected")
	}
	item.MoveTo(x, y, z, rotation)
	return nil
}

// ResizeSelected commits new dimensions for the selected item.
func (s *Session) ResizeSelected(length, width, height float64) error {
	item := s.Selected()
	if item == nil {
		return fmt.Errorf("no item selected")
	}
	item.Resize(length, width, height)
	return nil
}

// Spawn adds a new item of the given type at the arena center, using the
// default size and colour for the type, selects it and returns it.
func (s *Session) Spawn(typeName string) (*model.Footprint, error) {
	def, err := model.DefaultItemDefinition(typeName)
	if err != nil {
		return nil, err
	}

	arena := s.CurrentArena()
	name := s.nextInstanceName(typeName)

	item := model.NewFootprint(typeName, name,
		s.arenaWidth/2, 0, s.arenaDepth/2,
		def.Size.X, def.Size.Z, def.Size.Y, 0)
	item.ID = uuid.New().String()[:8]
	color := def.Color
	item.Color = &color

	arena.Items = append(arena.Items, item)
	s.selected = name
	return item, nil
}

// RemoveSelected deletes the selected item from the arena.
func (s *Session) RemoveSelected() error {
	item := s.Selected()
	if item == nil {
		return fmt.Errorf("no item selected")
	}

	arena := s.CurrentArena()
	for i, candidate := range arena.Items {
		if candidate == item {
			arena.Items = append(arena.Items[:i], arena.Items[i+1:]...)
			break
		}
	}
	s.selected = ""
	return nil
}

// OverlappingNames runs the full overlap scan on the current arena.
func (s *Session) OverlappingNames() map[string]bool {
	return engine.CheckOverlaps(s.CurrentArena().Items)
}

// nextInstanceName picks the lowest unused instance index for a type, so
// spawning after deletions fills gaps instead of growing forever.
func (s *Session) nextInstanceName(typeName string) string {
	taken := make(map[string]bool)
	for _, item := range s.CurrentArena().Items {
		taken[item.Name] = true
	}
	for i := 0; ; i++ {
		name := model.InstanceName(typeName, i)
		if !taken[name] {
			return name
		}
	}
}
