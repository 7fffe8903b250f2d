// FILE: lixenwraith/settings/path_test.go
package settings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFolderName(t *testing.T) {
	tests := []struct {
		typeName string
		kind     Kind
		want     string
	}{
		{"MyAppConfig", KindConfig, ".my_app"},
		{"AnExample1Config", KindConfig, ".an_example1"},
		{"Config", KindConfig, ".config"},
		{"Settings", KindSettings, ".settings"},
		{"MyExampleSettings", KindSettings, ".my_example"},
		{"Tool", KindConfig, ".tool"},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			assert.Equal(t, tt.want, defaultFolderName(tt.typeName, tt.kind))
		})
	}

	assert.Equal(t, "config.toml", defaultFileName(KindConfig, FormatTOML))
	assert.Equal(t, "settings.json", defaultFileName(KindSettings, FormatJSON))
}

func TestValidateFilepath(t *testing.T) {
	t.Run("Unix", func(t *testing.T) {
		assert.NoError(t, validateFilepathFor("linux", "/home/me/.my_app/config.toml"))
		assert.NoError(t, validateFilepathFor("linux", "relative/dir/file.json"))
		assert.NoError(t, validateFilepathFor("linux", "weird:name?.toml"))

		assert.ErrorIs(t, validateFilepathFor("linux", "a\x00b.toml"), ErrInvalidPath)
		assert.ErrorIs(t, validateFilepathFor("linux", "   "), ErrInvalidPath)
		assert.ErrorIs(t, validateFilepathFor("linux", "/tmp/"+strings.Repeat("x", 300)), ErrInvalidPath)
	})

	t.Run("Windows", func(t *testing.T) {
		assert.NoError(t, validateFilepathFor("windows", `C:\Users\me\.my_app\config.toml`))
		assert.NoError(t, validateFilepathFor("windows", `..\config.toml`))

		assert.ErrorIs(t, validateFilepathFor("windows", "fi:\x00\\l*e/p\"a?t>h|.t<xt"), ErrInvalidPath)
		assert.ErrorIs(t, validateFilepathFor("windows", `C:\dir\fi*le.toml`), ErrInvalidPath)
		assert.ErrorIs(t, validateFilepathFor("windows", `C:\dir\CON.toml`), ErrInvalidPath)
		assert.ErrorIs(t, validateFilepathFor("windows", `C:\dir.\file.toml`), ErrInvalidPath)
	})
}
