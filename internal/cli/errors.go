package cli

import (
	"errors"

	"github.com/mesh-intelligence/prompter/internal/importer"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// userErrors are the rejections caused by what the user asked for.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidData,
	types.ErrInvalidName,
	types.ErrInvalidContent,
	types.ErrInvalidParent,
	types.ErrInvalidFontSize,
	types.ErrSpeedOutOfRange,
	types.ErrGroupNotPlayable,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	importer.ErrEmptyInput,
}

// classify wraps err with the exit code its cause calls for.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps err to a process exit code. Errors cobra raises for bad
// flags or arguments carry no code and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}
