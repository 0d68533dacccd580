package types

import "errors"

// Record operation errors. The store returns these without mutating anything.
var (
	ErrNotFound         = errors.New("record not found")
	ErrInvalidData      = errors.New("invalid record data")
	ErrInvalidName      = errors.New("name must not be empty")
	ErrInvalidContent   = errors.New("content must not be empty")
	ErrInvalidParent    = errors.New("parent must be an existing top-level group")
	ErrInvalidFontSize  = errors.New("font size out of range")
	ErrSpeedOutOfRange  = errors.New("scroll speed out of range")
	ErrGroupNotPlayable = errors.New("groups cannot be played")
)

// Storage lifecycle errors.
var (
	ErrStorageDetached = errors.New("storage is detached")
	ErrAlreadyAttached = errors.New("storage is already attached")
	ErrStorageLocked   = errors.New("storage is in use by another process")
	ErrInvalidKey      = errors.New("invalid storage key")
)
