package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// FileKV is a KV backed by a JSON object in a single file.
type FileKV struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFileKV loads path. A missing or unparsable file opens empty; the next
// Flush replaces an unparsable one.
func OpenFileKV(path string) (*FileKV, error) {
	store := &FileKV{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &store.values); err != nil {
		log.Printf("tasks: parse %s: %v", path, err)
		store.values = map[string]string{}
	}
	return store, nil
}

// String returns the value stored under key.
func (store *FileKV) String(key string) string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.values[key]
}

// SetString stores value under key in memory. Call Flush to persist.
func (store *FileKV) SetString(key string, value string) {
	store.mu.Lock()
	store.values[key] = value
	store.mu.Unlock()
}

// Flush writes all values to disk.
func (store *FileKV) Flush() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(store.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", store.path, err)
	}
	if err := os.WriteFile(store.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", store.path, err)
	}
	return nil
}
