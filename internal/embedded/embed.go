package embedded

import (
	"embed"
)

// Content holds the built-in configuration used when no user file exists or
// a key is missing from it.
//
//go:embed config/*.yaml
var Content embed.FS

// DefaultConfigPath is the path of the default configuration inside Content.
const DefaultConfigPath = "config/default.yaml"
