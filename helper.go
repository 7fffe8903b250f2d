// File: lixenwraith/settings/helper.go
package settings

import (
	"fmt"
	"strings"
)

// deepMerge returns a new map holding base with overlay merged on top.
// Nested maps present on both sides are merged recursively; any other overlay
// value replaces the base value. Neither input is modified.
func deepMerge(base, overlay map[string]any) map[string]any {
	merged := cloneMap(base)
	for key, value := range overlay {
		if overlayMap, isMap := value.(map[string]any); isMap {
			if baseMap, baseIsMap := merged[key].(map[string]any); baseIsMap {
				merged[key] = deepMerge(baseMap, overlayMap)
				continue
			}
			merged[key] = cloneMap(overlayMap)
			continue
		}
		merged[key] = value
	}
	return merged
}

// cloneMap copies nested maps so the result shares no map with the input.
// Leaf values, including slices, are shared.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		if nested, isMap := value.(map[string]any); isMap {
			out[key] = cloneMap(nested)
		} else {
			out[key] = value
		}
	}
	return out
}

// flattenMap converts a nested map[string]any to a flat map[string]any with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		if nextMap, isMap := current[segment].(map[string]any); isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// validateKeyPath checks every segment of a dot-notation path.
func validateKeyPath(path string) error {
	if path == "" {
		return fmt.Errorf("key path cannot be empty")
	}
	for _, segment := range strings.Split(path, ".") {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("invalid path segment %q in path %q", segment, path)
		}
	}
	return nil
}

// isValidKeySegment checks if a single path segment is a valid TOML bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	// TOML bare keys are sequences of ASCII letters, ASCII digits, underscores, and dashes (A-Za-z0-9_-).
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}
