package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tcoles/arenaforge/internal/model"
)

// Dump serialises a configuration back into the Animal-AI YAML dialect.
// The writer is hand-built rather than layered on a yaml encoder: the format
// leans on custom tags and inline !Vector3/!RGB mappings that are simpler to
// emit directly than to teach to a generic marshaller.
func Dump(config *model.ArenaConfig) string {
	var b strings.Builder
	b.WriteString("!ArenaConfig\n")
	b.WriteString("arenas:\n")
	for i, arena := range config.Arenas {
		writeArena(&b, i, arena)
	}
	return b.String()
}

// DumpFile writes the serialised configuration to path, creating parent
// directories as needed.
func DumpFile(path string, config *model.ArenaConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Dump(config)), 0644)
}

func writeArena(b *strings.Builder, index int, arena *model.Arena) {
	indent(b, 1, fmt.Sprintf("%d: !Arena", index))
	indent(b, 2, fmt.Sprintf("passMark: %g", arena.PassMark))
	indent(b, 2, fmt.Sprintf("timeLimit: %g", arena.TimeLimit))
	indent(b, 2, "items:")

	for _, group := range groupItemsByType(arena.Items) {
		indent(b, 2, "- !Item")
		indent(b, 3, fmt.Sprintf("name: %s", group.typeName))

		indent(b, 3, "positions:")
		for _, item := range group.items {
			indent(b, 3, "- "+vector3(item.X, item.Y, item.Z))
		}
		indent(b, 3, "rotations:")
		for _, item := range group.items {
			indent(b, 3, fmt.Sprintf("- %g", item.Rotation))
		}
		indent(b, 3, "sizes:")
		for _, item := range group.items {
			// Sizes go back out in file order: x=length, y=height, z=width.
			indent(b, 3, "- "+vector3(item.Length, item.Height, item.Width))
		}
		indent(b, 3, "colors:")
		for _, item := range group.items {
			color := item.Color
			if color == nil {
				color = &model.RGB{}
			}
			indent(b, 3, fmt.Sprintf("- !RGB {r: %g, g: %g, b: %g}", color.R, color.G, color.B))
		}
	}
}

type itemGroup struct {
	typeName string
	items    []*model.Footprint
}

// groupItemsByType regroups the flat item list into per-type blocks in
// first-appearance order, matching the layout the loader consumes.
func groupItemsByType(items []*model.Footprint) []itemGroup {
	index := make(map[string]int)
	var groups []itemGroup

	for _, item := range items {
		typeName := item.Type
		if typeName == "" {
			typeName = model.TypeToken(item.Name)
		}
		i, ok := index[typeName]
		if !ok {
			i = len(groups)
			index[typeName] = i
			groups = append(groups, itemGroup{typeName: typeName})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

func vector3(x, y, z float64) string {
	return fmt.Sprintf("!Vector3 {x: %g, y: %g, z: %g}", x, y, z)
}

func indent(b *strings.Builder, level int, line string) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(line)
	b.WriteByte('\n')
}
