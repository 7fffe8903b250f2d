// FILE: lixenwraith/settings/update.go
package settings

import (
	"fmt"
	"reflect"
)

// Update applies changes to a copy of the live Settings instance, makes the
// copy the live instance, and saves it to file. It returns ErrUsage for a
// Config container.
//
// changes mirrors the shape of T: a key naming a section takes a nested
// mapping that is applied the same way, any other key replaces the field
// value. Keys that name no field are ignored. The changed instance is checked
// against `validate` tags like a loaded one.
//
// When the new instance cannot be saved, Update returns it together with the
// error: the in-memory change has happened, the file is unchanged. A file
// path that does not resolve is reported as ErrNoFilepath.
func (c *Container[T]) Update(changes map[string]any) (*T, error) {
	if c.kind != KindSettings {
		return nil, fmt.Errorf("%w: Update called on %s %s; only Settings can be updated", ErrUsage, c.kind, c.typ.Name())
	}

	c.reg.loadMu.Lock()
	defer c.reg.loadMu.Unlock()

	current, err := c.current()
	if err != nil {
		return nil, err
	}

	next := reflect.New(c.typ)
	next.Elem().Set(reflect.ValueOf(current).Elem())

	verr := &ValidationError{Type: c.typ.String()}
	c.applyChanges(c.info.schema, next.Elem(), changes, "", verr)
	if verr.orNil() == nil {
		c.reg.validateStruct(c.info.schema, next.Interface(), verr)
	}
	if err := verr.orNil(); err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.kind, c.typ.Name(), err)
	}

	c.reg.store(c.info.schema, next)
	inst := next.Interface().(*T)

	return inst, c.save(inst)
}

// UpdatePath is Update for a single value addressed by a dot-notation path,
// e.g. "basics.totals".
func (c *Container[T]) UpdatePath(path string, value any) (*T, error) {
	if err := validateKeyPath(path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	changes := make(map[string]any)
	setNestedValue(changes, path, value)
	return c.Update(changes)
}

// Save writes the live Settings instance to file, loading it first if there is
// none. It returns ErrUsage for a Config container.
func (c *Container[T]) Save() error {
	if c.kind != KindSettings {
		return fmt.Errorf("%w: Save called on %s %s; only Settings can be saved", ErrUsage, c.kind, c.typ.Name())
	}

	c.reg.loadMu.Lock()
	defer c.reg.loadMu.Unlock()

	inst, err := c.current()
	if err != nil {
		return err
	}
	return c.save(inst)
}

// current returns the live instance, loading it if needed. It requires reg.loadMu.
func (c *Container[T]) current() (*T, error) {
	if inst, ok := c.reg.instance(c.typ); ok {
		return inst.(*T), nil
	}
	return c.load(false)
}

// save writes the whole instance, merged into the stored data.
func (c *Container[T]) save(inst *T) error {
	path := c.Filepath()
	if path == "" {
		return fmt.Errorf("%w: no path specified for %s %s", ErrNoFilepath, c.kind, c.typ.Name())
	}

	raw := encodeSection(c.info.schema, reflect.ValueOf(inst).Elem())
	if err := c.reg.SaveFile(path, raw); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", c.kind, c.typ.Name(), err)
	}
	return nil
}

// applyChanges sets the fields of v, an addressable copy, from changes.
func (c *Container[T]) applyChanges(s *schema, v reflect.Value, changes map[string]any, prefix string, verr *ValidationError) {
	for key, value := range changes {
		path := joinPath(prefix, key)
		f, ok := s.field(key)
		if !ok {
			c.reg.logger.Warn("ignoring change for undeclared field",
				"kind", c.kind.String(), "type", c.typ.Name(), "field", path)
			continue
		}
		fv := v.FieldByIndex(f.index)

		if f.section != nil {
			if sub, isMap := value.(map[string]any); isMap {
				c.applyChanges(f.section, fv, sub, path, verr)
				continue
			}
		}

		if value == nil {
			verr.add(path, fmt.Errorf("cannot set nil for %s", f.typ))
			continue
		}

		given := reflect.ValueOf(value)
		if given.Type().AssignableTo(f.typ) {
			fv.Set(cloneValue(given))
			continue
		}

		decoded, err := decodeLeaf(value, f.typ)
		if err != nil {
			verr.add(path, err)
			continue
		}
		fv.Set(decoded)
	}
}

// cloneValue returns a copy of v that shares no slice, map, or pointer with
// it, so values passed to Update stay owned by the caller.
func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(cloneValue(v.Elem()))
		return out
	case reflect.Struct:
		// Unexported fields are copied as they are.
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < out.NumField(); i++ {
			if field := out.Field(i); field.CanSet() {
				field.Set(cloneValue(v.Field(i)))
			}
		}
		return out
	}
	return v
}
