package storage

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// lockFileName is created inside the data directory.
const lockFileName = "prompter.lock"

// acquireDirLock takes a non-blocking exclusive lock on dataDir. Returns
// ErrStorageLocked when another process already holds it.
func acquireDirLock(dataDir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dataDir, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, types.ErrStorageLocked
	}
	return lock, nil
}

// releaseDirLock unlocks and tolerates a nil lock.
func releaseDirLock(lock *flock.Flock) error {
	if lock == nil {
		return nil
	}
	if err := lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
