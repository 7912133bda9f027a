// Package assets embeds static data files shipped with the application.
package assets

import _ "embed"

// ItemDefinitionsYAML holds the default size and colour of every known
// Animal-AI item type.
//
//go:embed items.yaml
var ItemDefinitionsYAML []byte
