// File: lixenwraith/settings/builder.go
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorOption configures the validator used for `validate` struct tags.
type ValidatorOption func(*validator.Validate)

// Builder provides a fluent interface for building a Registry
type Builder struct {
	reg  *Registry
	errs []error
}

// NewBuilder creates a new registry builder
func NewBuilder() *Builder {
	return &Builder{reg: NewRegistry()}
}

// WithLogger sets the diagnostics sink
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.reg.logger = logger
	}
	return b
}

// WithConfigFormat sets the file format used by Config containers that set none.
// An unknown format is logged and TOML is kept.
func (b *Builder) WithConfigFormat(format string) *Builder {
	b.reg.configFormat = b.parseKindFormat(KindConfig, format)
	return b
}

// WithSettingsFormat sets the file format used by Settings containers that set none.
// An unknown format is logged and JSON is kept.
func (b *Builder) WithSettingsFormat(format string) *Builder {
	b.reg.settingsFormat = b.parseKindFormat(KindSettings, format)
	return b
}

func (b *Builder) parseKindFormat(kind Kind, format string) Format {
	f, ok := ParseFormat(format)
	if !ok {
		b.reg.logger.Error("unknown default file format, using built-in default",
			"kind", kind.String(), "format", format, "default", string(kind.defaultFormat()))
		return kind.defaultFormat()
	}
	return f
}

// WithCodec registers codec for files with extension ext ("yaml", ".yml").
func (b *Builder) WithCodec(ext string, codec Codec) *Builder {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" || codec == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: codec needs an extension and an implementation", ErrUsage))
		return b
	}
	b.reg.codecs[ext] = codec
	return b
}

// WithYAML registers the YAML codec for ".yaml" and ".yml" files.
func (b *Builder) WithYAML() *Builder {
	return b.WithCodec("yaml", YAMLCodec{}).WithCodec("yml", YAMLCodec{})
}

// WithHomeDir sets the function that returns the base directory of default file paths.
func (b *Builder) WithHomeDir(fn func() (string, error)) *Builder {
	if fn != nil {
		b.reg.homeDir = fn
	}
	return b
}

// WithIncludeKey sets the top-level key that lists included files in Config files.
func (b *Builder) WithIncludeKey(key string) *Builder {
	if !isValidKeySegment(key) {
		b.errs = append(b.errs, fmt.Errorf("%w: invalid include key %q", ErrUsage, key))
		return b
	}
	b.reg.includeKey = key
	return b
}

// WithValidator applies options to the validator, e.g. to register custom validations.
// Options run in the order they are added.
func (b *Builder) WithValidator(opts ...ValidatorOption) *Builder {
	for _, opt := range opts {
		if opt != nil {
			opt(b.reg.validate)
		}
	}
	return b
}

// Build returns the Registry, or the errors collected by the With methods.
func (b *Builder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.reg, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Registry {
	reg, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("settings registry build failed: %v", err))
	}
	return reg
}
