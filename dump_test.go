// FILE: lixenwraith/settings/dump_test.go
package settings

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDump tests writing the live instance in a chosen format
func TestDump(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	cfgs, err := NewConfig(reg, example1ConfigDefaults())
	require.NoError(t, err)
	writeFile(t, cfgs.Filepath(), example1ConfigTOML)

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfgs.Dump(&buf, FormatTOML))

		var decoded map[string]any
		_, err := toml.Decode(buf.String(), &decoded)
		require.NoError(t, err)
		assert.Equal(t, 33.33, decoded["field0"])
		section := decoded["section1"].(map[string]any)
		assert.Equal(t, "f1", section["field1"])
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, cfgs.Dump(&buf, FormatJSON))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, 33.33, decoded["field0"])
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, cfgs.Dump(&buf, FormatYAML), ErrUnknownFormat)
		assert.Zero(t, buf.Len())
	})
}

// TestDebug tests the current-versus-default listing
func TestDebug(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	sets, err := NewSettings(reg, example1SettingsDefaults())
	require.NoError(t, err)

	assert.Contains(t, sets.Debug(), "Not loaded")

	_, err = sets.UpdatePath("section1.setting2", 7)
	require.NoError(t, err)

	out := sets.Debug()
	assert.Contains(t, out, "Settings AnExample1Settings")
	assert.Contains(t, out, "section1.setting2:\n    Current: 7\n    Default: 2")
	assert.Contains(t, out, "name:\n    Current: nice name\n    Default: nice name")
}
