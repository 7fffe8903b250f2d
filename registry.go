// FILE: lixenwraith/settings/registry.go
package settings

import (
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultIncludeKey is the top-level key that lists files included by a Config file.
const DefaultIncludeKey = "__include__"

// typeInfo is what the registry knows about a container or section type.
type typeInfo struct {
	kind      Kind
	container bool
	owned     bool // section seen inside a registered container
	schema    *schema
	defaults  reflect.Value // value of the type holding its declared defaults
}

// Registry is the store of live container and section instances, one per
// type, plus the per-type file path overrides. An application normally owns
// one Registry; tests create a fresh one each.
//
// All methods are safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	instances map[reflect.Type]any // type -> *T
	paths     map[reflect.Type]string
	types     map[reflect.Type]*typeInfo

	// loadMu serializes get-or-create, load, and update so that a type is
	// never instantiated twice concurrently.
	loadMu sync.Mutex

	logger         *slog.Logger
	codecs         codecSet
	configFormat   Format
	settingsFormat Format
	includeKey     string
	homeDir        func() (string, error)
	validate       *validator.Validate
}

// NewRegistry creates a Registry with the default codecs (TOML, JSON),
// slog.Default as the diagnostics sink, and the user's home directory as the
// base of default file paths.
func NewRegistry() *Registry {
	return &Registry{
		instances:      make(map[reflect.Type]any),
		paths:          make(map[reflect.Type]string),
		types:          make(map[reflect.Type]*typeInfo),
		logger:         slog.Default(),
		codecs:         defaultCodecs(),
		configFormat:   KindConfig.defaultFormat(),
		settingsFormat: KindSettings.defaultFormat(),
		includeKey:     DefaultIncludeKey,
		homeDir:        os.UserHomeDir,
		validate:       newValidator(),
	}
}

// Logger returns the diagnostics sink of the registry.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// Reset drops every live instance and file path override. Registered types
// and their schemas are kept.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances = make(map[reflect.Type]any)
	r.paths = make(map[reflect.Type]string)
}

// defaultFormat is the file format a kind uses when a container sets none.
func (r *Registry) defaultFormat(kind Kind) Format {
	if kind == KindSettings {
		return r.settingsFormat
	}
	return r.configFormat
}

// register records a container type. Its nested section types are recorded
// too, with the container's kind and the defaults found inside the
// container's defaults, unless they were registered before.
func (r *Registry) register(t reflect.Type, kind Kind, defaults reflect.Value) (*typeInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.types[t]; ok {
		if info.container && info.kind != kind {
			return nil, fmt.Errorf("%w: %s is already registered as %s", ErrUsage, t, info.kind)
		}
		if info.container {
			return info, nil
		}
	}

	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}

	info := &typeInfo{kind: kind, container: true, schema: s, defaults: defaults}
	r.types[t] = info

	s.sectionTypes(defaults, func(sub *schema, value reflect.Value) {
		if known, ok := r.types[sub.typ]; ok && (known.container || known.owned) {
			return
		}
		r.types[sub.typ] = &typeInfo{kind: kind, owned: true, schema: sub, defaults: value}
	})

	return info, nil
}

// sectionInfo returns what is known about a section type, building its schema
// with zero defaults when the type was never seen inside a container.
func (r *Registry) sectionInfo(t reflect.Type) (*typeInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info, ok := r.types[t]; ok {
		return info, nil
	}

	s, err := buildSchema(t)
	if err != nil {
		return nil, err
	}
	info := &typeInfo{schema: s, defaults: reflect.New(t).Elem()}
	r.types[t] = info
	return info, nil
}

// instance returns the live instance of t.
func (r *Registry) instance(t reflect.Type) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, ok := r.instances[t]
	return inst, ok
}

// store replaces the live instance of the type of ptr, which must point to a
// value described by s, and stores a copy of every nested section under the
// section's own type.
func (r *Registry) store(s *schema, ptr reflect.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances[s.typ] = ptr.Interface()
	s.sectionTypes(ptr.Elem(), func(sub *schema, value reflect.Value) {
		section := reflect.New(sub.typ)
		section.Elem().Set(value)
		r.instances[sub.typ] = section.Interface()
	})
}

func (r *Registry) filepathOverride(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.paths[t]
	return path, ok
}

func (r *Registry) setFilepathOverride(t reflect.Type, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == "" {
		delete(r.paths, t)
		return
	}
	r.paths[t] = path
}

// HasInstance reports whether a live instance of T exists.
func HasInstance[T any](r *Registry) bool {
	_, ok := r.instance(reflect.TypeOf((*T)(nil)).Elem())
	return ok
}
