// FILE: lixenwraith/settings/section.go
package settings

import (
	"fmt"
	"reflect"
)

// GetSection returns the live instance of section type T.
//
// Sections become live when a container holding them is loaded. When T has no
// live instance yet, GetSection logs a warning and creates one from T's
// declared defaults: the defaults inside the container that declares T, or
// the zero value when no registered container declares it.
func GetSection[T any](reg *Registry) (*T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if inst, ok := reg.instance(t); ok {
		return inst.(*T), nil
	}

	reg.loadMu.Lock()
	defer reg.loadMu.Unlock()

	if inst, ok := reg.instance(t); ok {
		return inst.(*T), nil
	}

	info, err := reg.sectionInfo(t)
	if err != nil {
		return nil, err
	}

	kind := "section"
	if info.owned || info.container {
		kind = info.kind.String() + " section"
	}
	reg.logger.Warn(kind+" accessed before data has been loaded; using default values", "type", t.Name())

	inst, err := reg.instantiate(info.schema, map[string]any{}, info.defaults)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", kind, t.Name(), err)
	}
	reg.store(info.schema, inst)
	return inst.Interface().(*T), nil
}
