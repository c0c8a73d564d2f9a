// Package prefs is a small persistent key/value flag store.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Store holds string flags by key.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// MemStore keeps flags in memory only.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string]string{}}
}

func (m *MemStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemStore) Set(key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

func (m *MemStore) Remove(key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// FileStore persists flags as a flat JSON object. Every write rewrites the
// whole file through a temp file and rename.
type FileStore struct {
	path string
	mem  *MemStore
}

// OpenFile loads path if it exists. A missing file is an empty store.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{path: path, mem: NewMemStore()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fs, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read prefs %s", path)
	}
	if err := json.Unmarshal(data, &fs.mem.values); err != nil {
		return nil, errors.Wrapf(err, "parse prefs %s", path)
	}
	if fs.mem.values == nil {
		fs.mem.values = map[string]string{}
	}
	return fs, nil
}

func (f *FileStore) Get(key string) (string, bool) { return f.mem.Get(key) }

func (f *FileStore) Set(key, value string) error {
	if err := f.mem.Set(key, value); err != nil {
		return err
	}
	return f.flush()
}

func (f *FileStore) Remove(key string) error {
	if err := f.mem.Remove(key); err != nil {
		return err
	}
	return f.flush()
}

func (f *FileStore) flush() error {
	f.mem.mu.RLock()
	data, err := json.MarshalIndent(f.mem.values, "", "  ")
	f.mem.mu.RUnlock()
	if err != nil {
		return errors.Wrap(err, "encode prefs")
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrap(err, "create prefs dir")
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "write prefs %s", tmp)
	}
	return errors.Wrap(os.Rename(tmp, f.path), "replace prefs")
}
