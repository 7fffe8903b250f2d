// FILE: lixenwraith/settings/kind.go
package settings

import "strings"

// Kind distinguishes load-only configuration from runtime-mutable settings.
type Kind int

const (
	// KindConfig containers are immutable after load and support file includes.
	KindConfig Kind = iota
	// KindSettings containers can be changed with Update and are written back to file.
	KindSettings
)

// String returns "Config" or "Settings".
func (k Kind) String() string {
	if k == KindSettings {
		return "Settings"
	}
	return "Config"
}

// Format identifies a file format by its canonical extension, without the dot.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat normalizes s ("TOML", ".json", "yml") into a Format.
// The second return value is false when s names no known format.
func ParseFormat(s string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "toml", "tml":
		return FormatTOML, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// defaultFormat is the built-in file format of a kind.
func (k Kind) defaultFormat() Format {
	if k == KindSettings {
		return FormatJSON
	}
	return FormatTOML
}
