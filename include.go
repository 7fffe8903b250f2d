// FILE: lixenwraith/settings/include.go
package settings

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
)

// loadWithIncludes loads path and expands the files it includes. The
// including file's top-level keys are laid over each included file's data,
// so the includer wins on every conflicting key and a table it declares
// replaces the included table whole; earlier includes win over later ones. Relative include paths resolve against the including file's
// directory. Missing included files follow the same policy as the root file.
func (r *Registry) loadWithIncludes(path string, throwIfFileNotFound bool) (map[string]any, error) {
	abs, err := absPath(path)
	if err != nil {
		return nil, err
	}
	return r.resolveIncludes(abs, throwIfFileNotFound, []string{})
}

// resolveIncludes keeps the chain of files being expanded; a file that
// appears twice on one chain is a cycle. The same file included from two
// different branches is not.
func (r *Registry) resolveIncludes(path string, throwIfFileNotFound bool, chain []string) (map[string]any, error) {
	for _, seen := range chain {
		if seen == path {
			return nil, fmt.Errorf("%w: %s", ErrIncludeCycle, strings.Join(append(chain, path), " -> "))
		}
	}
	chain = append(chain, path)

	data, err := r.LoadFile(path)
	if err != nil {
		return nil, err
	}

	rawIncludes, ok := data[r.includeKey]
	if !ok {
		return data, nil
	}
	delete(data, r.includeKey)

	includes, err := includeList(rawIncludes)
	if err != nil {
		return nil, fmt.Errorf("file '%s': %w", path, err)
	}

	for _, include := range includes {
		if err := validateFilepath(include); err != nil {
			return nil, fmt.Errorf("include in '%s': %w", path, err)
		}
		if !filepath.IsAbs(include) {
			include = filepath.Join(filepath.Dir(path), include)
		}
		include = filepath.Clean(include)

		if !isFile(include) {
			if throwIfFileNotFound {
				return nil, fmt.Errorf("%w: %s (included from %s)", ErrNotFound, include, path)
			}
			r.logger.Warn("included file not found, skipping", "path", include, "includer", path)
			continue
		}

		included, err := r.resolveIncludes(include, throwIfFileNotFound, chain)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]any, len(included)+len(data))
		maps.Copy(merged, included)
		maps.Copy(merged, data)
		data = merged
	}

	return data, nil
}

// includeList normalizes a string or a list of strings into a list.
func includeList(raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: include entry %v is not a string", ErrInvalidPath, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: include value of type %T is not a string or list of strings", ErrInvalidPath, raw)
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
