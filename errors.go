// FILE: lixenwraith/settings/errors.go
package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPath is returned when a file path is not well-formed for the running OS.
	ErrInvalidPath = errors.New("invalid file path")

	// ErrNotFound is returned when a strict load cannot find its file.
	ErrNotFound = errors.New("file not found")

	// ErrUnknownFormat is reported when a file extension has no registered codec.
	// It is never fatal: LoadFile and SaveFile log it and degrade to empty data or a no-op.
	ErrUnknownFormat = errors.New("unknown file format")

	// ErrValidation matches any *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrUsage is returned when a Settings-only operation is called on a Config.
	ErrUsage = errors.New("invalid usage")

	// ErrNoFilepath is returned when a container must be persisted but no path resolves.
	ErrNoFilepath = errors.New("no file path to save to")

	// ErrIncludeCycle is returned when a file includes itself, directly or indirectly.
	ErrIncludeCycle = errors.New("include cycle")
)

// FieldError describes a single field that failed construction.
type FieldError struct {
	Path string // dotted path of the field, e.g. "section1.field2"
	Err  error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ValidationError aggregates every field failure of one instantiation.
type ValidationError struct {
	Type   string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%d field(s) of %s failed validation: %s", len(e.Fields), e.Type, strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		errs = append(errs, f.Err)
	}
	return errs
}

func (e *ValidationError) add(path string, err error) {
	e.Fields = append(e.Fields, FieldError{Path: path, Err: err})
}

// orNil returns e as an error when it holds at least one field failure.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
