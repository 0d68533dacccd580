package storage

import (
	"sync"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// MemoryBackend implements types.Storage in process memory. Nothing survives
// Detach. It takes no directory lock.
type MemoryBackend struct {
	mu       sync.RWMutex
	attached bool
	values   map[string][]byte
}

// NewMemoryBackend creates an unattached in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Attach validates config and starts with an empty key space.
func (b *MemoryBackend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}
	b.values = make(map[string][]byte)
	b.attached = true
	return nil
}

// Detach drops all values. Idempotent.
func (b *MemoryBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.values = nil
	b.attached = false
	return nil
}

// Get returns a copy of the value for key.
func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrStorageDetached
	}
	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key.
func (b *MemoryBackend) Set(key string, value []byte) error {
	if !validKey(key) {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStorageDetached
	}
	b.values[key] = append([]byte(nil), value...)
	return nil
}
