// FILE: lixenwraith/settings/schema.go
package settings

import (
	"encoding"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// tagName is the struct tag that names stored keys, for every file format.
const tagName = "toml"

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

	// Struct types decoded as single values rather than as nested sections.
	valueStructTypes = map[reflect.Type]bool{
		reflect.TypeOf(time.Time{}): true,
		reflect.TypeOf(url.URL{}):   true,
		reflect.TypeOf(net.IPNet{}): true,
	}
)

// schemaField describes one stored key of a container or section type.
type schemaField struct {
	key      string
	goName   string
	index    []int
	typ      reflect.Type
	section  *schema // non-nil when the field is a nested section
	required bool    // no default; must be present in stored data
}

// schema is the field table of a container or section type, built once when
// the type is registered.
type schema struct {
	typ    reflect.Type
	fields []schemaField
	byKey  map[string]int
}

func (s *schema) field(key string) (*schemaField, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return nil, false
	}
	return &s.fields[i], true
}

// buildSchema walks the exported fields of struct type t. Nested section types
// are walked recursively; seen guards against a type containing itself.
func buildSchema(t reflect.Type) (*schema, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct type", ErrUsage, t)
	}
	return buildSchemaSeen(t, map[reflect.Type]bool{})
}

func buildSchemaSeen(t reflect.Type, seen map[reflect.Type]bool) (*schema, error) {
	if seen[t] {
		return nil, fmt.Errorf("%w: section type %s contains itself", ErrUsage, t)
	}
	seen[t] = true
	defer delete(seen, t)

	s := &schema{typ: t, byKey: make(map[string]int)}
	var errs []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key, required, skip := parseFieldTag(field)
		if skip {
			continue
		}
		if _, dup := s.byKey[key]; dup {
			errs = append(errs, fmt.Sprintf("field %s: duplicate key %q", field.Name, key))
			continue
		}

		sf := schemaField{
			key:      key,
			goName:   field.Name,
			index:    field.Index,
			typ:      field.Type,
			required: required,
		}

		if isSectionType(field.Type) {
			nested, err := buildSchemaSeen(field.Type, seen)
			if err != nil {
				errs = append(errs, fmt.Sprintf("field %s: %v", field.Name, err))
				continue
			}
			sf.section = nested
		}

		s.byKey[key] = len(s.fields)
		s.fields = append(s.fields, sf)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: invalid schema for %s: %s", ErrUsage, t, strings.Join(errs, "; "))
	}
	return s, nil
}

// parseFieldTag reads `toml:"name,required"`. Without a tag the key is the
// lower-cased field name.
func parseFieldTag(field reflect.StructField) (key string, required, skip bool) {
	tag := field.Tag.Get(tagName)
	if tag == "-" {
		return "", false, true
	}

	key = strings.ToLower(field.Name)
	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		key = parts[0]
	}
	for _, opt := range parts[1:] {
		if strings.TrimSpace(opt) == "required" {
			required = true
		}
	}
	return key, required, false
}

// isSectionType reports whether a field of type t is instantiated as a nested section.
func isSectionType(t reflect.Type) bool {
	if t.Kind() != reflect.Struct || valueStructTypes[t] {
		return false
	}
	return !reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// sectionTypes calls fn for every nested section field, depth first, with the
// field's schema and its value inside v.
func (s *schema) sectionTypes(v reflect.Value, fn func(sub *schema, value reflect.Value)) {
	for i := range s.fields {
		f := &s.fields[i]
		if f.section == nil {
			continue
		}
		fv := v.FieldByIndex(f.index)
		fn(f.section, fv)
		f.section.sectionTypes(fv, fn)
	}
}
