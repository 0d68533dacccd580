// Package storage implements the durable key-value backends behind the
// script store: SQLite (default), one JSON file per key, and an in-process
// map. Disk backends hold an exclusive lock on the data directory while
// attached so only one process writes the collection at a time.
package storage

import (
	"fmt"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// New returns an unattached backend for the named backend type.
func New(backend string) (types.Storage, error) {
	switch backend {
	case types.BackendSQLite:
		return NewSQLiteBackend(), nil
	case types.BackendFile:
		return NewFileBackend(), nil
	case types.BackendMemory:
		return NewMemoryBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, backend)
	}
}

// Open creates the backend named by config and attaches it.
func Open(config types.Config) (types.Storage, error) {
	s, err := New(config.Backend)
	if err != nil {
		return nil, err
	}
	if err := s.Attach(config); err != nil {
		return nil, err
	}
	return s, nil
}

// validKey rejects keys that cannot be used as a file name or table key.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	for _, r := range key {
		switch r {
		case '/', '\\', 0:
			return false
		}
	}
	return true
}
