// FILE: lixenwraith/settings/helper_test.go
package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDeepMerge tests merging of nested maps
func TestDeepMerge(t *testing.T) {
	t.Run("OverlayWinsOnLeaves", func(t *testing.T) {
		base := map[string]any{"a": 1, "b": 2}
		merged := deepMerge(base, map[string]any{"b": 3, "c": 4})
		assert.Equal(t, map[string]any{"a": 1, "b": 3, "c": 4}, merged)
	})

	t.Run("NestedMapsMergeKeyByKey", func(t *testing.T) {
		base := map[string]any{"section": map[string]any{"b": 2, "keep": "x"}}
		overlay := map[string]any{"section": map[string]any{"a": 1, "b": 20}}

		merged := deepMerge(base, overlay)
		assert.Equal(t, map[string]any{
			"section": map[string]any{"a": 1, "b": 20, "keep": "x"},
		}, merged)
	})

	t.Run("ScalarReplacesMap", func(t *testing.T) {
		merged := deepMerge(map[string]any{"s": map[string]any{"a": 1}}, map[string]any{"s": "flat"})
		assert.Equal(t, "flat", merged["s"])
	})

	t.Run("InputsUntouched", func(t *testing.T) {
		inner := map[string]any{"a": 1}
		base := map[string]any{"s": inner}
		overlay := map[string]any{"s": map[string]any{"a": 2}}

		merged := deepMerge(base, overlay)
		merged["s"].(map[string]any)["z"] = true

		assert.Equal(t, map[string]any{"a": 1}, inner)
		assert.Equal(t, map[string]any{"s": map[string]any{"a": 2}}, overlay)
	})

	t.Run("NilBase", func(t *testing.T) {
		assert.Equal(t, map[string]any{"a": 1}, deepMerge(nil, map[string]any{"a": 1}))
	})
}

// TestNestedPaths tests dot-notation helpers
func TestNestedPaths(t *testing.T) {
	nested := make(map[string]any)
	setNestedValue(nested, "section1.sub.value", 5)
	setNestedValue(nested, "section1.other", "x")
	setNestedValue(nested, "top", true)

	assert.Equal(t, map[string]any{
		"section1": map[string]any{
			"sub":   map[string]any{"value": 5},
			"other": "x",
		},
		"top": true,
	}, nested)

	assert.Equal(t, map[string]any{
		"section1.sub.value": 5,
		"section1.other":     "x",
		"top":                true,
	}, flattenMap(nested, ""))

	t.Run("ValidateKeyPath", func(t *testing.T) {
		assert.NoError(t, validateKeyPath("section1.setting-2"))
		assert.Error(t, validateKeyPath(""))
		assert.Error(t, validateKeyPath("section1..x"))
		assert.Error(t, validateKeyPath("section 1"))
	})
}
