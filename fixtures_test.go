// FILE: lixenwraith/settings/fixtures_test.go
package settings

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type SubConfigSection struct {
	Field3 []int `toml:"field3"`
}

type Example1ConfigSection struct {
	Field1 string           `toml:"field1"`
	Field2 int              `toml:"field2"`
	Subsec SubConfigSection `toml:"subsec"`
}

type AnExample1Config struct {
	Field0   float64               `toml:"field0"`
	Section1 Example1ConfigSection `toml:"section1"`
}

func example1ConfigDefaults() AnExample1Config {
	return AnExample1Config{
		Field0: 2.2,
		Section1: Example1ConfigSection{
			Field1: "field1",
			Field2: 2,
			Subsec: SubConfigSection{Field3: []int{3, 4}},
		},
	}
}

type Example1SettingsSection struct {
	Setting1 string        `toml:"setting1"`
	Setting2 int           `toml:"setting2"`
	Interval time.Duration `toml:"interval"`
	Tags     []string      `toml:"tags"`
}

type AnExample1Settings struct {
	Name     string                  `toml:"name"`
	Enabled  bool                    `toml:"enabled"`
	Section1 Example1SettingsSection `toml:"section1"`
}

func example1SettingsDefaults() AnExample1Settings {
	return AnExample1Settings{
		Name: "nice name",
		Section1: Example1SettingsSection{
			Setting1: "setting1",
			Setting2: 2,
			Interval: time.Minute,
			Tags:     []string{"a"},
		},
	}
}

// syncBuffer collects log output from concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestRegistry returns a registry logging into the returned buffer, with a
// temporary home directory.
func newTestRegistry(t *testing.T) (*Registry, *syncBuffer, string) {
	t.Helper()
	logs := &syncBuffer{}
	home := t.TempDir()
	reg := NewBuilder().
		WithLogger(slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))).
		WithHomeDir(func() (string, error) { return home, nil }).
		MustBuild()
	return reg, logs, home
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
