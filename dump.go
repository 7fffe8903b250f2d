// File: lixenwraith/settings/dump.go
package settings

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
)

// Dump writes the live instance to w in format, loading it first if needed.
func (c *Container[T]) Dump(w io.Writer, format Format) error {
	codec, ok := c.reg.codecs[string(format)]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	inst, err := c.Get()
	if err != nil {
		return err
	}

	data, err := codec.Encode(encodeSection(c.info.schema, reflect.ValueOf(inst).Elem()))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Debug returns a formatted string showing every stored key of the live
// instance next to its declared default.
func (c *Container[T]) Debug() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", c.kind, c.typ.Name()))
	b.WriteString(fmt.Sprintf("File: %s\n", c.Filepath()))

	inst, ok := c.reg.instance(c.typ)
	if !ok {
		b.WriteString("Not loaded\n")
		return b.String()
	}

	current := flattenMap(encodeSection(c.info.schema, reflect.ValueOf(inst).Elem()), "")
	defaults := flattenMap(encodeSection(c.info.schema, c.info.defaults), "")

	paths := make([]string, 0, len(current))
	for path := range current {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	b.WriteString("Current values:\n")
	for _, path := range paths {
		b.WriteString(fmt.Sprintf("  %s:\n", path))
		b.WriteString(fmt.Sprintf("    Current: %v\n", current[path]))
		b.WriteString(fmt.Sprintf("    Default: %v\n", defaults[path]))
	}
	return b.String()
}
