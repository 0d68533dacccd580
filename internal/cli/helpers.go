package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/prompter/internal/library"
	"github.com/mesh-intelligence/prompter/internal/storage"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// openLibrary resolves the data directory, attaches the configured backend
// and restores the collection. The caller must call the returned close
// function, which detaches the backend and releases its lock.
func (f *rootFlags) openLibrary() (*library.Store, func(), error) {
	dataDir, err := f.resolveDataDir()
	if err != nil {
		return nil, nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	st, err := storage.Open(types.Config{Backend: f.cfg.Backend, DataDir: dataDir})
	if err != nil {
		return nil, nil, classify(fmt.Errorf("attach storage: %w", err))
	}
	return library.Open(st), func() { _ = st.Detach() }, nil
}

// parseID parses a record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		return 0, userError(fmt.Errorf("invalid id %q", arg))
	}
	return id, nil
}

// parseParent parses an optional --parent value. Empty means top level.
func parseParent(arg string) (*int64, error) {
	if arg == "" {
		return nil, nil
	}
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// kind names a record for humans.
func kind(s types.Script) string {
	if s.IsGroup {
		return "group"
	}
	return "script"
}
