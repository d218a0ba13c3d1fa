package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileKeyCache persists entries as a JSON object on disk so resolutions
// survive restarts. Writes go to a temporary file that is renamed over the
// original; the mutex serialises writers within the process.
type FileKeyCache struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// NewFileKeyCache loads path if it exists.
func NewFileKeyCache(path string) (*FileKeyCache, error) {
	if path == "" {
		return nil, errors.New("file cache path must not be empty")
	}
	c := &FileKeyCache{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return c, nil
	case err != nil:
		return nil, fmt.Errorf("read key cache: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &c.data); err != nil {
			return nil, fmt.Errorf("parse key cache %s: %w", path, err)
		}
	}
	return c, nil
}

func (c *FileKeyCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	return v, ok, nil
}

// Put records value and flushes the cache. An existing entry is kept.
func (c *FileKeyCache) Put(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.data[key]; ok {
		return nil
	}
	c.data[key] = value
	if err := c.flush(); err != nil {
		delete(c.data, key)
		return err
	}
	return nil
}

func (c *FileKeyCache) flush() error {
	raw, err := json.MarshalIndent(c.data, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}
