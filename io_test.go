// FILE: lixenwraith/settings/io_test.go
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadFile tests reading raw mappings by file extension
func TestLoadFile(t *testing.T) {
	reg, logs, _ := newTestRegistry(t)
	tmpDir := t.TempDir()

	t.Run("TOML", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "valid.TOML"), `
name = "x"
[server]
port = 9000
tags = ["a", "b"]
`)
		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x", data["name"])
		server := data["server"].(map[string]any)
		assert.Equal(t, int64(9000), server["port"])
		assert.Equal(t, []any{"a", "b"}, server["tags"])
	})

	t.Run("JSON", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "valid.json"), `{"server": {"port": 9000}}`)
		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, json.Number("9000"), data["server"].(map[string]any)["port"])
	})

	t.Run("MissingFile", func(t *testing.T) {
		data, err := reg.LoadFile(filepath.Join(tmpDir, "missing.toml"))
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("EmptyFile", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "empty.json"), "")
		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "config.ini"), "[x]\na=1\n")
		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)
		assert.Contains(t, logs.String(), "unknown format")
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "bad.toml"), "invalid = toml content")
		_, err := reg.LoadFile(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse TOML")
	})

	t.Run("YAMLNeedsCodec", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "c.yaml"), "server:\n  port: 9000\n")
		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Empty(t, data)

		yamlReg := NewBuilder().WithYAML().MustBuild()
		data, err = yamlReg.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 9000, data["server"].(map[string]any)["port"])
	})
}

// TestSaveFile tests the read-merge-write save
func TestSaveFile(t *testing.T) {
	reg, logs, _ := newTestRegistry(t)
	tmpDir := t.TempDir()

	t.Run("MergeNotReplaceJSON", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "merge.json"), `{"section": {"b": 2}, "other": "kept"}`)

		require.NoError(t, reg.SaveFile(path, map[string]any{"section": map[string]any{"a": 1}}))

		var stored map[string]any
		require.NoError(t, json.Unmarshal([]byte(readFile(t, path)), &stored))
		assert.Equal(t, map[string]any{
			"section": map[string]any{"a": float64(1), "b": float64(2)},
			"other":   "kept",
		}, stored)
	})

	t.Run("MergeNotReplaceTOML", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "merge.toml"), "[section]\nb = 2\n")

		require.NoError(t, reg.SaveFile(path, map[string]any{"section": map[string]any{"a": 1}}))

		var stored map[string]any
		_, err := toml.Decode(readFile(t, path), &stored)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"section": map[string]any{"a": int64(1), "b": int64(2)},
		}, stored)
	})

	t.Run("CreatesFileAndDirectories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "new", "dir", "settings.json")
		require.NoError(t, reg.SaveFile(path, map[string]any{"a": "b"}))

		data, err := reg.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "b", data["a"])
		assert.Contains(t, logs.String(), "creating file")

		// No temporary files left behind
		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("UnknownFormatIsNoop", func(t *testing.T) {
		path := filepath.Join(tmpDir, "settings.ini")
		require.NoError(t, reg.SaveFile(path, map[string]any{"a": "b"}))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("MalformedExistingFile", func(t *testing.T) {
		path := writeFile(t, filepath.Join(tmpDir, "broken.json"), `{"a": `)
		err := reg.SaveFile(path, map[string]any{"a": "b"})
		assert.Error(t, err)
		assert.Equal(t, `{"a": `, readFile(t, path))
	})

	t.Run("EmptyPath", func(t *testing.T) {
		assert.ErrorIs(t, reg.SaveFile("", map[string]any{}), ErrNoFilepath)
	})
}
