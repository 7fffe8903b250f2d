// FILE: lixenwraith/settings/path.go
package settings

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

const (
	maxPathLength      = 4096
	maxComponentLength = 255
)

var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// validateFilepath reports whether path is well-formed for the running OS.
// It does not check that the path exists.
func validateFilepath(path string) error {
	return validateFilepathFor(runtime.GOOS, path)
}

func validateFilepathFor(goos, path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: %q is blank", ErrInvalidPath, path)
	}
	if len(path) > maxPathLength {
		return fmt.Errorf("%w: path exceeds %d bytes", ErrInvalidPath, maxPathLength)
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("%w: %q contains a NUL byte", ErrInvalidPath, path)
	}

	if goos != "windows" {
		for _, component := range strings.Split(path, "/") {
			if len(component) > maxComponentLength {
				return fmt.Errorf("%w: component %q exceeds %d bytes", ErrInvalidPath, component, maxComponentLength)
			}
		}
		return nil
	}

	rest := path
	if len(rest) >= 2 && rest[1] == ':' && unicode.IsLetter(rune(rest[0])) {
		rest = rest[2:]
	}
	components := strings.FieldsFunc(rest, func(r rune) bool { return r == '\\' || r == '/' })
	for _, component := range components {
		if len(component) > maxComponentLength {
			return fmt.Errorf("%w: component %q exceeds %d bytes", ErrInvalidPath, component, maxComponentLength)
		}
		for _, r := range component {
			if r < 32 || strings.ContainsRune(`<>:"|?*`, r) {
				return fmt.Errorf("%w: %q contains reserved character %q", ErrInvalidPath, path, r)
			}
		}
		if component == "." || component == ".." {
			continue
		}
		if strings.HasSuffix(component, " ") || strings.HasSuffix(component, ".") {
			return fmt.Errorf("%w: component %q ends with a space or period", ErrInvalidPath, component)
		}
		base := strings.ToUpper(strings.SplitN(component, ".", 2)[0])
		if windowsReservedNames[base] {
			return fmt.Errorf("%w: %q is a reserved name", ErrInvalidPath, component)
		}
	}
	return nil
}

// defaultFolderName derives ".my_app" from a type named "MyAppConfig" of kind Config.
// A type named exactly after its kind gets ".config" or ".settings".
func defaultFolderName(typeName string, kind Kind) string {
	kindStr := kind.String()
	if typeName == kindStr {
		return "." + strings.ToLower(kindStr)
	}

	stripped := strings.ReplaceAll(typeName, kindStr, "")
	var b strings.Builder
	b.WriteByte('.')
	for i, r := range stripped {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// defaultFileName is the lower-cased kind with the extension of format, e.g. "config.toml".
func defaultFileName(kind Kind, format Format) string {
	return strings.ToLower(kind.String()) + "." + string(format)
}

// absPath resolves path against the working directory and cleans it.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return abs, nil
}
