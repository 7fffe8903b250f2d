// FILE: lixenwraith/settings/codec.go
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec converts between file contents and a raw nested mapping.
type Codec interface {
	// Decode parses a whole document. The root must be a mapping.
	Decode(data []byte) (map[string]any, error)
	// Encode serializes a mapping into a whole document.
	Encode(data map[string]any) ([]byte, error)
}

// TOMLCodec reads and writes TOML documents.
type TOMLCodec struct{}

// Decode parses a TOML document; integers decode as int64.
func (TOMLCodec) Decode(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return out, nil
}

// Encode writes data as a TOML document with nested mappings as tables.
func (TOMLCodec) Encode(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return nil, fmt.Errorf("failed to marshal data to TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// JSONCodec reads and writes JSON documents.
// Numbers are decoded as json.Number to preserve precision.
type JSONCodec struct{}

// Decode parses a JSON object, keeping numbers as json.Number.
func (JSONCodec) Decode(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return out, nil
}

// Encode writes data as indented JSON ending in a newline.
func (JSONCodec) Encode(data map[string]any) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data to JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// YAMLCodec reads and writes YAML documents. It is not part of the default
// codec set; enable it with Builder.WithCodec or Builder.WithYAML.
type YAMLCodec struct{}

// Decode parses a YAML document whose root is a mapping.
func (YAMLCodec) Decode(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return out, nil
}

// Encode writes data as a YAML document.
func (YAMLCodec) Encode(data map[string]any) ([]byte, error) {
	out, err := yaml.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data to YAML: %w", err)
	}
	return out, nil
}

// codecSet maps a lower-case extension without the dot to its codec.
type codecSet map[string]Codec

func defaultCodecs() codecSet {
	return codecSet{
		string(FormatTOML): TOMLCodec{},
		string(FormatJSON): JSONCodec{},
	}
}

// forPath returns the codec for the extension of path, compared case-insensitively.
func (cs codecSet) forPath(path string) (Codec, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if codec, ok := cs[ext]; ok {
		return codec, nil
	}
	return nil, fmt.Errorf("%w %q in %s", ErrUnknownFormat, ext, path)
}
