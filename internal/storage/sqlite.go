package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/prompter/pkg/types"
)

// dbFileName is the SQLite database inside the data directory.
const dbFileName = "prompter.db"

// schemaKV holds every stored value. One row per key.
const schemaKV = `CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at TEXT NOT NULL
);`

// SQLiteBackend implements types.Storage on a single-table SQLite database.
type SQLiteBackend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	lock     *flock.Flock
}

// NewSQLiteBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewSQLiteBackend() *SQLiteBackend {
	return &SQLiteBackend{}
}

// Attach creates DataDir if needed, locks it, opens the database and applies
// the schema. Existing data is kept.
func (b *SQLiteBackend) Attach(config types.Config) error {
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

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		_ = releaseDirLock(lock)
		return err
	}
	if _, err := db.Exec(schemaKV); err != nil {
		db.Close()
		_ = releaseDirLock(lock)
		return fmt.Errorf("apply schema: %w", err)
	}

	b.db = db
	b.lock = lock
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database and releases the directory lock. Idempotent.
func (b *SQLiteBackend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	var closeErr error
	if b.db != nil {
		closeErr = b.db.Close()
		b.db = nil
	}
	lockErr := releaseDirLock(b.lock)
	b.lock = nil
	b.attached = false

	if closeErr != nil {
		return closeErr
	}
	return lockErr
}

// Get returns the value for key.
func (b *SQLiteBackend) Get(key string) ([]byte, bool, error) {
	if !validKey(key) {
		return nil, false, types.ErrInvalidKey
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, false, types.ErrStorageDetached
	}

	var value []byte
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value for key.
func (b *SQLiteBackend) Set(key string, value []byte) error {
	if !validKey(key) {
		return types.ErrInvalidKey
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStorageDetached
	}

	if value == nil {
		value = []byte{}
	}
	_, err := b.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
