// FILE: lixenwraith/settings/encode.go
package settings

import (
	"encoding"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"time"
)

var (
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	durationType      = reflect.TypeOf(time.Duration(0))
	urlType           = reflect.TypeOf(url.URL{})
	ipNetType         = reflect.TypeOf(net.IPNet{})
)

// encodeSection serializes every declared field of v into a raw mapping, the
// inverse of decodeSection. Values that the decode hooks parse from strings
// (durations, times, addresses, URLs) are written as strings.
func encodeSection(s *schema, v reflect.Value) map[string]any {
	out := make(map[string]any, len(s.fields))
	for i := range s.fields {
		f := &s.fields[i]
		fv := v.FieldByIndex(f.index)
		if f.section != nil {
			out[f.key] = encodeSection(f.section, fv)
			continue
		}
		if raw, ok := encodeValue(fv); ok {
			out[f.key] = raw
		}
	}
	return out
}

// encodeValue converts a leaf value into something every codec can write.
// The second return value is false for nil values, which are left out.
func encodeValue(v reflect.Value) (any, bool) {
	if !v.IsValid() {
		return nil, false
	}

	switch v.Type() {
	case durationType:
		return time.Duration(v.Int()).String(), true
	case urlType:
		u := v.Interface().(url.URL)
		return u.String(), true
	case ipNetType:
		n := v.Interface().(net.IPNet)
		return n.String(), true
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, false
		}
		if v.Kind() == reflect.Ptr && v.Type().Implements(textMarshalerType) {
			return marshalText(v)
		}
		return encodeValue(v.Elem())
	}

	if v.Type().Implements(textMarshalerType) {
		return marshalText(v)
	}

	switch v.Kind() {
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), true
		}
		fallthrough
	case reflect.Array:
		items := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := encodeValue(v.Index(i)); ok {
				items = append(items, item)
			}
		}
		return items, true
	case reflect.Map:
		if v.IsNil() {
			return nil, false
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, ok := encodeValue(iter.Key())
			if !ok {
				continue
			}
			keyStr, isStr := key.(string)
			if !isStr {
				keyStr = fmt.Sprint(key)
			}
			if item, ok := encodeValue(iter.Value()); ok {
				out[keyStr] = item
			}
		}
		return out, true
	case reflect.Struct:
		return encodeStruct(v), true
	}

	return v.Interface(), true
}

// encodeStruct handles structs that are leaf values, e.g. slice elements.
func encodeStruct(v reflect.Value) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		key, _, skip := parseFieldTag(field)
		if skip {
			continue
		}
		if raw, ok := encodeValue(v.Field(i)); ok {
			out[key] = raw
		}
	}
	return out
}

func marshalText(v reflect.Value) (any, bool) {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return nil, false
	}
	return string(text), true
}
