package model

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tcoles/arenaforge/internal/assets"
)

// Vector3 mirrors the x/y/z triple used by item size definitions.
type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// ItemDefinition holds the default parameters of one item type.
type ItemDefinition struct {
	Size  Vector3 `yaml:"size"`
	Color RGB     `yaml:"color"`
}

type itemDefinitionsFile struct {
	Items map[string]ItemDefinition `yaml:"items"`
}

var (
	defsOnce sync.Once
	defs     map[string]ItemDefinition
	defsErr  error
)

func itemDefinitions() (map[string]ItemDefinition, error) {
	defsOnce.Do(func() {
		var file itemDefinitionsFile
		if err := yaml.Unmarshal(assets.ItemDefinitionsYAML, &file); err != nil {
			defsErr = fmt.Errorf("parsing embedded item definitions: %w", err)
			return
		}
		defs = file.Items
	})
	return defs, defsErr
}

// DefaultItemDefinition returns the default parameters for an item type.
// The type name may be an instance name like "Wall 3"; only the leading
// type token is looked up.
func DefaultItemDefinition(typeName string) (ItemDefinition, error) {
	table, err := itemDefinitions()
	if err != nil {
		return ItemDefinition{}, err
	}

	def, ok := table[TypeToken(typeName)]
	if !ok {
		return ItemDefinition{}, fmt.Errorf("item type %q has no default definition", TypeToken(typeName))
	}
	return def, nil
}

// DefaultSize returns the default size of an item type.
func DefaultSize(typeName string) (Vector3, error) {
	def, err := DefaultItemDefinition(typeName)
	if err != nil {
		return Vector3{}, err
	}
	return def.Size, nil
}

// DefaultColor returns the default colour of an item type.
func DefaultColor(typeName string) (RGB, error) {
	def, err := DefaultItemDefinition(typeName)
	if err != nil {
		return RGB{}, err
	}
	return def.Color, nil
}

// KnownItemTypes lists every item type with a default definition.
func KnownItemTypes() []string {
	table, err := itemDefinitions()
	if err != nil {
		return nil
	}
	types := make([]string, 0, len(table))
	for name := range table {
		types = append(types, name)
	}
	return types
}

// TypeToken strips an instance suffix from an item name: "Wall 3" -> "Wall".
func TypeToken(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}

// InstanceName builds the instance name for the i-th item of a type,
// matching the convention used when loading configurations.
func InstanceName(typeName string, index int) string {
	return fmt.Sprintf("%s %d", typeName, index)
}
