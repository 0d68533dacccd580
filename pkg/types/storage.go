package types

// Storage is the durable key-value collaborator behind the script store.
// Callers attach to a backend, read and write whole values by key, and
// detach when done.
type Storage interface {
	// Attach connects to the backend described by config. Creates the
	// DataDir if it does not exist. Returns ErrAlreadyAttached if called
	// while attached and ErrStorageLocked if another process holds the
	// data directory.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Get returns the value stored under key. ok is false when the key is
	// absent.
	Get(key string) (value []byte, ok bool, err error)

	// Set replaces the value stored under key.
	Set(key string, value []byte) error
}
