package data

import (
	"embed"
)

// Schemas holds the JSON Schemas request bodies are validated against,
// one file per schema name.
//
//go:embed schemas/*.json
var Schemas embed.FS

// DemoSeed is the fixture loaded at startup when demo seeding is on
//
//go:embed seed/demo.json
var DemoSeed []byte
