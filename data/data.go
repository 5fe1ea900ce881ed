// Package data embeds the reference dataset shipped with the binary.
package data

import _ "embed"

//go:embed reference.yaml
var reference []byte

// Reference returns the embedded reference dataset as raw YAML.
func Reference() []byte {
	return reference
}
