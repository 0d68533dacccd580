package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// FileBackend implements types.Storage with one JSON file per key in the
// data directory. Writes go through a temp file, fsync and rename.
type FileBackend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	lock     *flock.Flock
}

// NewFileBackend creates an unattached file backend.
func NewFileBackend() *FileBackend {
	return &FileBackend{}
}

// Attach creates and locks DataDir.
func (b *FileBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	lock, err := acquireDirLock(dataDir)
	if err != nil {
		return err
	}

	b.dataDir = dataDir
	b.lock = lock
	b.attached = true
	return nil
}

// Detach releases the directory lock. Idempotent.
func (b *FileBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	err := releaseDirLock(b.lock)
	b.lock = nil
	b.attached = false
	return err
}

// Get reads <key>.json. A missing file is an absent key.
func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrStorageDetached
	}

	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set atomically replaces <key>.json.
func (b *FileBackend) Set(key string, value []byte) error {
	if !validKey(key) {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStorageDetached
	}
	return writeFileAtomic(b.path(key), value)
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dataDir, key+".json")
}

// writeFileAtomic writes data using the temp-file, fsync, rename pattern so a
// crash never leaves a half-written value behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".kv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing value: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
