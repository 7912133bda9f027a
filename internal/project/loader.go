// Package project reads and writes Animal-AI arena configuration files.
//
// The configuration format carries custom YAML tags (!ArenaConfig, !Arena,
// !Item, !Vector3, !RGB) that stock unmarshalling refuses, so the loader
// walks the yaml.v3 node tree itself and treats tagged mappings as plain
// mappings. All coordinate-order mapping between the file's x/y/z triples
// and the model happens here and nowhere else.
package project

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tcoles/arenaforge/internal/model"
)

// LoadFile reads and parses an arena configuration file.
func LoadFile(path string) (*model.ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading arena config: %w", err)
	}
	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return config, nil
}

// Parse decodes an arena configuration document.
func Parse(data []byte) (*model.ArenaConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}

	root := doc.Content[0]
	arenasNode, ok := mappingValue(root, "arenas")
	if !ok {
		return nil, fmt.Errorf("document has no arenas mapping")
	}

	config := &model.ArenaConfig{}
	for _, entry := range mappingEntries(arenasNode) {
		arena, err := parseArena(entry.value)
		if err != nil {
			return nil, fmt.Errorf("arena %s: %w", entry.key, err)
		}
		config.Arenas = append(config.Arenas, arena)
	}

	if len(config.Arenas) == 0 {
		return nil, fmt.Errorf("document defines no arenas")
	}
	return config, nil
}

func parseArena(node *yaml.Node) (*model.Arena, error) {
	arena := &model.Arena{}

	if n, ok := mappingValue(node, "passMark"); ok {
		v, err := scalarFloat(n)
		if err != nil {
			return nil, fmt.Errorf("passMark: %w", err)
		}
		arena.PassMark = v
	}
	if n, ok := mappingValue(node, "timeLimit"); ok {
		v, err := scalarFloat(n)
		if err != nil {
			return nil, fmt.Errorf("timeLimit: %w", err)
		}
		arena.TimeLimit = v
	}

	itemsNode, ok := mappingValue(node, "items")
	if !ok {
		return arena, nil
	}

	for _, group := range itemsNode.Content {
		items, err := parseItemGroup(group)
		if err != nil {
			return nil, err
		}
		arena.Items = append(arena.Items, items...)
	}
	return arena, nil
}

// parseItemGroup expands one !Item block, which declares a type name and
// parallel positions/rotations/sizes/colors lists, into individual
// footprints named "Type index".
func parseItemGroup(node *yaml.Node) ([]*model.Footprint, error) {
	nameNode, ok := mappingValue(node, "name")
	if !ok {
		return nil, fmt.Errorf("item group without a name")
	}
	typeName := nameNode.Value

	positions, ok := mappingValue(node, "positions")
	if !ok || len(positions.Content) == 0 {
		// A group with no positions places nothing.
		return nil, nil
	}

	rotations, _ := mappingValue(node, "rotations")
	sizes, _ := mappingValue(node, "sizes")
	colors, _ := mappingValue(node, "colors")

	items := make([]*model.Footprint, 0, len(positions.Content))
	for i, posNode := range positions.Content {
		name := model.InstanceName(typeName, i)

		pos, err := parseVector3(posNode)
		if err != nil {
			return nil, fmt.Errorf("%s position: %w", name, err)
		}

		rotation := 0.0
		if rotations != nil && i < len(rotations.Content) {
			rotation, err = scalarFloat(rotations.Content[i])
			if err != nil {
				return nil, fmt.Errorf("%s rotation: %w", name, err)
			}
		}

		size, color, err := itemSizeAndColor(typeName, sizes, colors, i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if size.X < 0 || size.Y < 0 || size.Z < 0 {
			return nil, fmt.Errorf("%s: negative size (%g, %g, %g)", name, size.X, size.Y, size.Z)
		}

		// File size triples are (x=length, y=height, z=width); positions
		// carry y as the base elevation.
		item := model.NewFootprint(typeName, name, pos.X, pos.Y, pos.Z, size.X, size.Z, size.Y, rotation)
		item.Color = color
		items = append(items, item)
	}
	return items, nil
}

// itemSizeAndColor picks the declared size/color for the i-th instance,
// falling back to the default item definitions. The Agent is special: it is
// always a 1x1x1 black box regardless of what the file declares.
func itemSizeAndColor(typeName string, sizes, colors *yaml.Node, i int) (model.Vector3, *model.RGB, error) {
	if typeName == "Agent" {
		return model.Vector3{X: 1, Y: 1, Z: 1}, &model.RGB{}, nil
	}

	var size model.Vector3
	if sizes != nil && i < len(sizes.Content) {
		v, err := parseVector3(sizes.Content[i])
		if err != nil {
			return model.Vector3{}, nil, fmt.Errorf("size: %w", err)
		}
		size = v
	} else {
		v, err := model.DefaultSize(typeName)
		if err != nil {
			return model.Vector3{}, nil, err
		}
		size = v
	}

	var color *model.RGB
	if colors != nil && i < len(colors.Content) {
		c, err := parseRGB(colors.Content[i])
		if err != nil {
			return model.Vector3{}, nil, fmt.Errorf("color: %w", err)
		}
		color = c
	} else if c, err := model.DefaultColor(typeName); err == nil {
		color = &c
	}
	// Types without a default color simply stay uncolored.

	return size, color, nil
}

func parseVector3(node *yaml.Node) (model.Vector3, error) {
	var v model.Vector3
	for _, entry := range mappingEntries(node) {
		val, err := scalarFloat(entry.value)
		if err != nil {
			return v, fmt.Errorf("component %s: %w", entry.key, err)
		}
		switch entry.key {
		case "x":
			v.X = val
		case "y":
			v.Y = val
		case "z":
			v.Z = val
		default:
			return v, fmt.Errorf("unknown vector component %q", entry.key)
		}
	}
	return v, nil
}

func parseRGB(node *yaml.Node) (*model.RGB, error) {
	var c model.RGB
	for _, entry := range mappingEntries(node) {
		val, err := scalarFloat(entry.value)
		if err != nil {
			return nil, fmt.Errorf("component %s: %w", entry.key, err)
		}
		switch entry.key {
		case "r":
			c.R = val
		case "g":
			c.G = val
		case "b":
			c.B = val
		default:
			return nil, fmt.Errorf("unknown color component %q", entry.key)
		}
	}
	return &c, nil
}

type mappingEntry struct {
	key   string
	value *yaml.Node
}

// mappingEntries returns the key/value pairs of a mapping node in document
// order, regardless of any custom tag on the node.
func mappingEntries(node *yaml.Node) []mappingEntry {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]mappingEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, mappingEntry{key: node.Content[i].Value, value: node.Content[i+1]})
	}
	return entries
}

func mappingValue(node *yaml.Node, key string) (*yaml.Node, bool) {
	for _, entry := range mappingEntries(node) {
		if entry.key == key {
			return entry.value, true
		}
	}
	return nil, false
}

func scalarFloat(node *yaml.Node) (float64, error) {
	if node.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("expected a number, got %s", node.Tag)
	}
	v, err := strconv.ParseFloat(node.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", node.Value)
	}
	return v, nil
}
