// FILE: lixenwraith/settings/decode.go
package settings

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var errMissing = errors.New("required field is missing and has no default")

// instantiate builds a new value of s.typ from raw. Fields absent from raw keep
// their value in defaults; keys of raw without a declared field are dropped.
// All field failures are collected into one *ValidationError.
func (r *Registry) instantiate(s *schema, raw map[string]any, defaults reflect.Value) (reflect.Value, error) {
	verr := &ValidationError{Type: s.typ.String()}

	out := reflect.New(s.typ)
	if defaults.IsValid() {
		out.Elem().Set(defaults)
	}
	decodeSection(s, raw, out.Elem(), "", verr)

	if verr.orNil() == nil {
		r.validateStruct(s, out.Interface(), verr)
	}
	if err := verr.orNil(); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

// decodeSection fills v, which already holds the defaults, from raw.
func decodeSection(s *schema, raw map[string]any, v reflect.Value, prefix string, verr *ValidationError) {
	for i := range s.fields {
		f := &s.fields[i]
		path := joinPath(prefix, f.key)
		fv := v.FieldByIndex(f.index)
		value, present := raw[f.key]

		if f.section != nil {
			sub := map[string]any{}
			if present && value != nil {
				m, ok := value.(map[string]any)
				if !ok {
					verr.add(path, fmt.Errorf("expected a table for section %s, got %T", f.typ, value))
					continue
				}
				sub = m
			}
			decodeSection(f.section, sub, fv, path, verr)
			continue
		}

		if !present {
			if f.required {
				verr.add(path, errMissing)
			}
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

// decodeLeaf coerces a raw value into a fresh value of type t.
// Decoding into a fresh value keeps slices and maps of the defaults untouched.
func decodeLeaf(value any, t reflect.Type) (reflect.Value, error) {
	target := reflect.New(t)

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target.Interface(),
		TagName:          tagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return reflect.Value{}, fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(value); err != nil {
		return reflect.Value{}, err
	}
	return target.Elem(), nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToNetIPHookFunc(),
		stringToNetIPNetHookFunc(),
		stringToURLHookFunc(),

		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}

// stringToNetIPHookFunc handles net.IP conversion
func stringToNetIPHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(net.IP{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 45 { // Max IPv6 length
			return nil, fmt.Errorf("invalid IP length: %d", len(str))
		}

		ip := net.ParseIP(str)
		if ip == nil {
			return nil, fmt.Errorf("invalid IP address: %s", str)
		}
		return ip, nil
	}
}

// stringToNetIPNetHookFunc handles net.IPNet conversion
func stringToNetIPNetHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(net.IPNet{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 49 { // Max IPv6 CIDR length
			return nil, fmt.Errorf("invalid CIDR length: %d", len(str))
		}
		_, ipnet, err := net.ParseCIDR(str)
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR: %w", err)
		}
		if isPtr {
			return ipnet, nil
		}
		return *ipnet, nil
	}
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		str := reflect.ValueOf(data).String()
		if len(str) > 2048 {
			return nil, fmt.Errorf("URL too long: %d bytes", len(str))
		}
		u, err := url.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}

// newValidator creates the validator used for `validate` struct tags.
// Field names in its errors follow the stored keys.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		key, _, skip := parseFieldTag(field)
		if skip {
			return "-"
		}
		return key
	})
	return v
}

// validateStruct runs `validate` tag constraints on a constructed instance.
func (r *Registry) validateStruct(s *schema, instance any, verr *ValidationError) {
	err := r.validate.Struct(instance)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.add(s.typ.Name(), err)
		return
	}
	for _, fe := range fieldErrs {
		// Namespace is "TypeName.section.key"; drop the root type name.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = path[i+1:]
		}
		verr.add(path, fmt.Errorf("failed on the '%s' constraint (value %v)", fe.Tag(), fe.Value()))
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
