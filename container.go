// FILE: lixenwraith/settings/container.go
package settings

import (
	"fmt"
	"path/filepath"
	"reflect"
)

// Container is the handle of a Config or Settings type T stored in one file.
// The live instance of T is held by the Registry, so several handles of the
// same T share it.
//
// Pointers returned by a Container point at the live instance and must be
// treated as read-only. Every change produces a new instance.
type Container[T any] struct {
	reg    *Registry
	typ    reflect.Type
	kind   Kind
	info   *typeInfo
	format Format

	defaultPath    string
	hasDefaultPath bool // WithDefaultFilepath or WithoutDefaultFilepath was given
}

// Option configures a Container.
type Option func(*containerOptions)

type containerOptions struct {
	format         Format
	defaultPath    string
	hasDefaultPath bool
	filepath       string
}

// WithFormat sets the file format used for the default file path.
func WithFormat(format Format) Option {
	return func(o *containerOptions) {
		o.format = format
	}
}

// WithDefaultFilepath replaces the derived default file path.
func WithDefaultFilepath(path string) Option {
	return func(o *containerOptions) {
		o.defaultPath = path
		o.hasDefaultPath = true
	}
}

// WithoutDefaultFilepath disables the default file path; the container then
// uses a file only after SetFilepath.
func WithoutDefaultFilepath() Option {
	return WithDefaultFilepath("")
}

// WithFilepath sets the file path override at registration, like SetFilepath
// without loading.
func WithFilepath(path string) Option {
	return func(o *containerOptions) {
		o.filepath = path
	}
}

// NewConfig registers T as a Config container. defaults holds the declared
// default of every field.
func NewConfig[T any](reg *Registry, defaults T, opts ...Option) (*Container[T], error) {
	return newContainer(reg, KindConfig, defaults, opts)
}

// NewSettings registers T as a Settings container. defaults holds the
// declared default of every field.
func NewSettings[T any](reg *Registry, defaults T, opts ...Option) (*Container[T], error) {
	return newContainer(reg, KindSettings, defaults, opts)
}

func newContainer[T any](reg *Registry, kind Kind, defaults T, opts []Option) (*Container[T], error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: nil registry", ErrUsage)
	}

	var o containerOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	info, err := reg.register(t, kind, reflect.ValueOf(defaults))
	if err != nil {
		return nil, err
	}

	c := &Container[T]{
		reg:            reg,
		typ:            t,
		kind:           kind,
		info:           info,
		format:         o.format,
		defaultPath:    o.defaultPath,
		hasDefaultPath: o.hasDefaultPath,
	}

	if o.filepath != "" {
		if err := c.setFilepathOverride(o.filepath); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Kind returns KindConfig or KindSettings.
func (c *Container[T]) Kind() Kind {
	return c.kind
}

// Format returns the file format used for the default file path.
func (c *Container[T]) Format() Format {
	if c.format != "" {
		return c.format
	}
	return c.reg.defaultFormat(c.kind)
}

// DefaultFilepath returns the file path used when none was set, e.g.
// ~/.my_app/config.toml for a Config type named MyAppConfig. It returns ""
// when the container has no default path.
func (c *Container[T]) DefaultFilepath() string {
	if c.hasDefaultPath {
		return c.defaultPath
	}

	home, err := c.reg.homeDir()
	if err != nil {
		c.reg.logger.Warn("cannot determine home directory for default file path",
			"kind", c.kind.String(), "type", c.typ.Name(), "error", err)
		return ""
	}
	return filepath.Join(home, defaultFolderName(c.typ.Name(), c.kind), defaultFileName(c.kind, c.Format()))
}

// Filepath returns the path set with SetFilepath, or DefaultFilepath when none is set.
func (c *Container[T]) Filepath() string {
	if path, ok := c.reg.filepathOverride(c.typ); ok {
		return path
	}
	return c.DefaultFilepath()
}

// SetFilepath sets the file path of the container. An empty path reverts to
// DefaultFilepath. With load true the file is loaded right away; otherwise an
// existing instance is kept as is until the next Load or Reload.
func (c *Container[T]) SetFilepath(path string, load bool) error {
	if err := c.setFilepathOverride(path); err != nil {
		return err
	}

	if load {
		_, err := c.Load(false)
		return err
	}
	if _, ok := c.reg.instance(c.typ); ok {
		c.reg.logger.Info("file path has been set but the file is not loaded",
			"kind", c.kind.String(), "type", c.typ.Name(), "path", c.Filepath())
	}
	return nil
}

func (c *Container[T]) setFilepathOverride(path string) error {
	if path == "" {
		c.reg.setFilepathOverride(c.typ, "")
		return nil
	}
	if err := validateFilepath(path); err != nil {
		return err
	}
	abs, err := absPath(path)
	if err != nil {
		return err
	}
	c.reg.setFilepathOverride(c.typ, abs)
	return nil
}

// Get returns the live instance, loading it from file first if there is none.
func (c *Container[T]) Get() (*T, error) {
	if inst, ok := c.reg.instance(c.typ); ok {
		return inst.(*T), nil
	}

	c.reg.loadMu.Lock()
	defer c.reg.loadMu.Unlock()

	if inst, ok := c.reg.instance(c.typ); ok {
		return inst.(*T), nil
	}
	c.reg.logger.Debug("loading on first access",
		"kind", c.kind.String(), "type", c.typ.Name(), "path", c.Filepath())
	return c.load(false)
}

// Reload loads the file again and replaces the live instance.
func (c *Container[T]) Reload() (*T, error) {
	return c.Load(false)
}

// Load creates a new instance from the file and makes it the live instance.
//
// When the file path is absent or the file does not exist, Load fails with
// ErrNotFound if throwIfFileNotFound is true, and otherwise logs a warning and
// builds the instance from the declared defaults. A failed Load leaves the
// live instance unchanged.
func (c *Container[T]) Load(throwIfFileNotFound bool) (*T, error) {
	c.reg.loadMu.Lock()
	defer c.reg.loadMu.Unlock()

	return c.load(throwIfFileNotFound)
}

// load requires reg.loadMu.
func (c *Container[T]) load(throwIfFileNotFound bool) (*T, error) {
	raw, err := c.readStored(throwIfFileNotFound)
	if err != nil {
		return nil, err
	}

	inst, err := c.reg.instantiate(c.info.schema, raw, c.info.defaults)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.kind, c.typ.Name(), err)
	}

	c.reg.store(c.info.schema, inst)
	return inst.Interface().(*T), nil
}

// readStored returns the raw data stored for the container, an empty mapping
// when loading from file is impossible. An unknown format is never fatal, not
// even for a strict load of a missing file.
func (c *Container[T]) readStored(throwIfFileNotFound bool) (map[string]any, error) {
	path := c.Filepath()
	logger := c.reg.logger.With("kind", c.kind.String(), "type", c.typ.Name(), "path", path)

	if path == "" {
		if throwIfFileNotFound {
			return nil, fmt.Errorf("%w: no file path for %s %s", ErrNotFound, c.kind, c.typ.Name())
		}
		logger.Warn("no file path; trying with default values, this may fail")
		return make(map[string]any), nil
	}

	if _, err := c.reg.codecs.forPath(path); err != nil {
		logger.Error("cannot load file with unknown format; trying with default values", "error", err)
		return make(map[string]any), nil
	}

	if !isFile(path) {
		if throwIfFileNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		logger.Warn("file not found; trying with default values, this may fail")
		return make(map[string]any), nil
	}

	if c.kind == KindConfig {
		return c.reg.loadWithIncludes(path, throwIfFileNotFound)
	}
	return c.reg.LoadFile(path)
}
