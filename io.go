// File: lixenwraith/settings/io.go
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// saveMu serializes read-merge-write cycles within this process.
// It does not protect against other processes writing the same file.
var saveMu sync.Mutex

// LoadFile reads the raw mapping stored in path, using the codec registered
// for its extension. A missing or empty file yields an empty mapping. An
// unknown extension is logged as an error and also yields an empty mapping.
// Malformed content is returned as an error.
func (r *Registry) LoadFile(path string) (map[string]any, error) {
	data, err := r.readFile(path)
	switch {
	case errors.Is(err, ErrNotFound):
		return make(map[string]any), nil
	case errors.Is(err, ErrUnknownFormat):
		r.logger.Error("cannot load file with unknown format", "path", path, "error", err)
		return make(map[string]any), nil
	case err != nil:
		return nil, err
	}
	return data, nil
}

// readFile is LoadFile without the degraded paths: it reports ErrNotFound and
// ErrUnknownFormat to the caller.
func (r *Registry) readFile(path string) (map[string]any, error) {
	codec, err := r.codecs.forPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat file '%s': %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}
	if info.Size() == 0 {
		return make(map[string]any), nil
	}

	fileData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	data, err := codec.Decode(fileData)
	if err != nil {
		return nil, fmt.Errorf("file '%s': %w", path, err)
	}
	return data, nil
}

// SaveFile merges data into whatever is stored in path and writes the result.
// Nested mappings are merged key by key, so keys written by other tools
// survive. The file and its directory are created when missing. An unknown
// extension is logged as an error and nothing is written.
//
// The read and the write are not atomic with respect to other processes.
func (r *Registry) SaveFile(path string, data map[string]any) error {
	if path == "" {
		return ErrNoFilepath
	}

	codec, err := r.codecs.forPath(path)
	if err != nil {
		r.logger.Error("cannot save file with unknown format", "path", path, "error", err)
		return nil
	}

	saveMu.Lock()
	defer saveMu.Unlock()

	stored, err := r.readFile(path)
	switch {
	case errors.Is(err, ErrNotFound):
		stored = nil
		r.logger.Info("creating file", "path", path)
	case err != nil:
		return fmt.Errorf("failed to read existing data before save: %w", err)
	}

	encoded, err := codec.Encode(deepMerge(stored, data))
	if err != nil {
		return fmt.Errorf("file '%s': %w", path, err)
	}

	return atomicWriteFile(path, encoded)
}

// atomicWriteFile writes data to a temporary file in the target directory and
// renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in '%s': %w", dir, err)
	}

	tempPath := tempFile.Name()
	removed := false
	defer func() {
		if !removed {
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file '%s': %w", tempPath, err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file '%s': %w", tempPath, err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on temporary file '%s': %w", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file '%s' to '%s': %w", tempPath, path, err)
	}
	removed = true

	return nil
}
