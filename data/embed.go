// Package data provides the embedded map files shipped with the simulator.
package data

import "embed"

// dataFS embeds all YAML maps from the data directory at build time.
//
//go:embed *.yaml
var dataFS embed.FS

// FS returns the embedded filesystem containing the bundled maps.
func FS() embed.FS {
	return dataFS
}
