package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/prompter/internal/player"
	"github.com/mesh-intelligence/prompter/internal/storage"
	"github.com/mesh-intelligence/prompter/pkg/types"
)

// testEnv points every command at private config and data directories.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, configDir: t.TempDir(), dataDir: t.TempDir()}
}

func (e *testEnv) args(args ...string) []string {
	return append(args, "--config-dir", e.configDir, "--data-dir", e.dataDir)
}

// exec runs one command and returns its stdout.
func (e *testEnv) exec(args ...string) (string, error) {
	e.t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(e.args(args...))
	err := root.Execute()
	return out.String(), err
}

func (e *testEnv) mustExec(args ...string) string {
	e.t.Helper()
	out, err := e.exec(args...)
	require.NoError(e.t, err, "prompter %v", args)
	return out
}

// code runs one command through run and returns the exit code and stderr.
func (e *testEnv) code(args ...string) (int, string) {
	e.t.Helper()
	var out, errOut bytes.Buffer
	c := run(context.Background(), e.args(args...), &out, &errOut)
	return c, errOut.String()
}

func (e *testEnv) createJSON(args ...string) types.Script {
	e.t.Helper()
	out := e.mustExec(append([]string{"create", "--json"}, args...)...)
	var s types.Script
	require.NoError(e.t, json.Unmarshal([]byte(out), &s), out)
	return s
}

func (e *testEnv) listJSON(args ...string) []types.Script {
	e.t.Helper()
	out := e.mustExec(append([]string{"list", "--json"}, args...)...)
	var s []types.Script
	require.NoError(e.t, json.Unmarshal([]byte(out), &s), out)
	return s
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func names(scripts []types.Script) []string {
	out := make([]string, len(scripts))
	for i, s := range scripts {
		out[i] = s.Name
	}
	return out
}

func TestVersion(t *testing.T) {
	e := newTestEnv(t)
	out := e.mustExec("version")
	assert.Contains(t, out, "prompter v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInit(t *testing.T) {
	e := newTestEnv(t)

	out := e.mustExec("init")
	assert.Contains(t, out, "initialized")

	cfg, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "backend: sqlite")
	assert.Contains(t, string(cfg), "scroll_speed: 2")
	assert.Contains(t, string(cfg), "font_size: 32")
	assert.FileExists(t, filepath.Join(e.dataDir, "prompter.db"))

	// Idempotent, and an edited config survives.
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: file\n"), 0o644))
	e.mustExec("init")
	cfg, err = os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "backend: file\n", string(cfg))
}

func TestCreateListShow(t *testing.T) {
	e := newTestEnv(t)

	g := e.createJSON("--group", "--name", "Talks")
	assert.True(t, g.IsGroup)

	s1 := e.createJSON("--name", "Opening", "--content", "Good evening", "--parent", id(g.ID))
	s2 := e.createJSON("--name", "Solo", "--content", "Hello", "--font-size", "40", "--speed", "1.5")
	require.NotNil(t, s1.ParentID)
	assert.Equal(t, g.ID, *s1.ParentID)
	require.NotNil(t, s2.FontSize)
	assert.Equal(t, 40, *s2.FontSize)

	assert.Equal(t, []string{"Talks", "Solo"}, names(e.listJSON()))
	assert.Equal(t, []string{"Opening"}, names(e.listJSON("--group", id(g.ID))))
	assert.Equal(t, []string{"Talks", "Opening", "Solo"}, names(e.listJSON("--all")))

	tree := e.mustExec("list", "--all")
	assert.Contains(t, tree, "└ Opening")
	assert.Contains(t, tree, "Solo")

	shown := e.mustExec("show", id(s1.ID))
	assert.Contains(t, shown, "Good evening")
	assert.Contains(t, shown, "Parent: "+id(g.ID))
}

func TestListEmpty(t *testing.T) {
	e := newTestEnv(t)
	assert.Contains(t, e.mustExec("list"), "No scripts.")
	assert.Empty(t, e.listJSON())
}

func TestCreateFromFile(t *testing.T) {
	e := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "keynote.txt")
	require.NoError(t, os.WriteFile(path, []byte("\xEF\xBB\xBFline one\r\nline two\r\n"), 0o644))

	s := e.createJSON("--file", path)
	assert.Equal(t, "keynote", s.Name)
	assert.Equal(t, "line one\nline two\n", s.Content)
}

func TestCreateRejects(t *testing.T) {
	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "Talks")
	s := e.createJSON("--name", "Solo", "--content", "Hello")

	tests := []struct {
		name string
		args []string
	}{
		{"no content source", []string{"create", "--name", "x"}},
		{"two content sources", []string{"create", "--name", "x", "--content", "a", "--clipboard"}},
		{"group with content", []string{"create", "--group", "--name", "x", "--content", "a"}},
		{"blank name", []string{"create", "--name", "  ", "--content", "a"}},
		{"blank content", []string{"create", "--name", "x", "--content", "  "}},
		{"script as parent", []string{"create", "--name", "x", "--content", "a", "--parent", id(s.ID)}},
		{"missing parent", []string{"create", "--name", "x", "--content", "a", "--parent", "42"}},
		{"nested group", []string{"create", "--group", "--name", "x", "--parent", id(g.ID)}},
		{"speed out of range", []string{"create", "--name", "x", "--content", "a", "--speed", "9"}},
		{"font out of range", []string{"create", "--name", "x", "--content", "a", "--font-size", "8"}},
		{"bad parent id", []string{"create", "--name", "x", "--content", "a", "--parent", "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := e.code(tt.args...)
			assert.Equal(t, exitUserError, code)
		})
	}
	assert.Len(t, e.listJSON("--all"), 2, "rejected creates change nothing")
}

func TestUpdate(t *testing.T) {
	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "Talks")
	s := e.createJSON("--name", "Draft", "--content", "v1")

	e.mustExec("update", id(s.ID), "--name", "Final", "--content", "v2", "--speed", "0.5", "--parent", id(g.ID))

	var got types.Script
	require.NoError(t, json.Unmarshal([]byte(e.mustExec("show", "--json", id(s.ID))), &got))
	assert.Equal(t, "Final", got.Name)
	assert.Equal(t, "v2", got.Content)
	require.NotNil(t, got.ScrollSpeed)
	assert.InDelta(t, 0.5, *got.ScrollSpeed, 1e-9)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, g.ID, *got.ParentID)

	e.mustExec("update", id(s.ID), "--top-level")
	require.NoError(t, json.Unmarshal([]byte(e.mustExec("show", "--json", id(s.ID))), &got))
	assert.Nil(t, got.ParentID)
	assert.Equal(t, "v2", got.Content, "unset flags keep their values")

	code, _ := e.code("update", id(g.ID), "--name", "")
	assert.Equal(t, exitUserError, code)
	code, _ = e.code("update", "123", "--name", "x")
	assert.Equal(t, exitUserError, code)
}

func TestMove(t *testing.T) {
	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "Talks")
	s := e.createJSON("--name", "Solo", "--content", "Hello")

	out := e.mustExec("move", id(s.ID), "--parent", id(g.ID))
	assert.Contains(t, out, "into group "+id(g.ID))
	assert.Equal(t, []string{"Solo"}, names(e.listJSON("--group", id(g.ID))))

	e.mustExec("move", id(s.ID), "--top-level")
	assert.Empty(t, e.listJSON("--group", id(g.ID)))

	code, _ := e.code("move", id(s.ID))
	assert.Equal(t, exitUserError, code)
	code, _ = e.code("move", id(g.ID), "--parent", id(g.ID))
	assert.Equal(t, exitUserError, code)
}

func TestDeleteCascades(t *testing.T) {
	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "G1")
	s1 := e.createJSON("--name", "S1", "--content", "a", "--parent", id(g.ID))
	s2 := e.createJSON("--name", "S2", "--content", "b")

	out := e.mustExec("delete", id(g.ID))
	assert.Contains(t, out, id(g.ID))
	assert.Contains(t, out, id(s1.ID))

	all := e.listJSON("--all")
	require.Len(t, all, 1)
	assert.Equal(t, s2.ID, all[0].ID)

	code, stderr := e.code("delete", id(g.ID))
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, "not found")
}

func TestImportAndExport(t *testing.T) {
	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "Talks")

	dir := t.TempDir()
	a := filepath.Join(dir, "alpha.txt")
	b := filepath.Join(dir, "beta.md")
	require.NoError(t, os.WriteFile(a, []byte("first"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("second"), 0o644))

	out := e.mustExec("import", "--json", "--parent", id(g.ID), a, b)
	var created []types.Script
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.Equal(t, []string{"alpha", "beta"}, names(created))

	dest := filepath.Join(dir, "library.json")
	e.mustExec("export", "--output", dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var exported []types.Script
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, []string{"Talks", "alpha", "beta"}, names(exported))

	stdout := e.mustExec("export")
	assert.JSONEq(t, string(data), stdout)
}

func TestImportIsAllOrNothing(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	blank := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(good, []byte("text"), 0o644))
	require.NoError(t, os.WriteFile(blank, []byte(" \n"), 0o644))

	code, _ := e.code("import", good, blank)
	assert.Equal(t, exitUserError, code)
	code, _ = e.code("import", good, filepath.Join(dir, "missing.txt"))
	assert.Equal(t, exitSysError, code)
	assert.Empty(t, e.listJSON("--all"))
}

func TestImportChecksNamesBeforeCreating(t *testing.T) {
	e := newTestEnv(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "good.txt")
	unnamed := filepath.Join(dir, " .txt")
	require.NoError(t, os.WriteFile(good, []byte("text"), 0o644))
	require.NoError(t, os.WriteFile(unnamed, []byte("more text"), 0o644))

	code, stderr := e.code("import", good, unnamed)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, " .txt")
	assert.Empty(t, e.listJSON("--all"))
}

func TestPlay(t *testing.T) {
	orig := runPlayer
	t.Cleanup(func() { runPlayer = orig })

	var played *player.Model
	runPlayer = func(_ context.Context, m *player.Model) error {
		played = m
		return nil
	}

	e := newTestEnv(t)
	g := e.createJSON("--group", "--name", "Talks")
	s := e.createJSON("--name", "Solo", "--content", "Hello", "--font-size", "48")

	e.mustExec("play", id(s.ID))
	require.NotNil(t, played)
	assert.Equal(t, 48, played.Session().FontSize())
	assert.FileExists(t, filepath.Join(e.dataDir, logFileName))

	played = nil
	code, _ := e.code("play", id(g.ID))
	assert.Equal(t, exitUserError, code)
	assert.Nil(t, played)

	runPlayer = func(context.Context, *player.Model) error { return errors.New("no tty") }
	code, _ = e.code("play", id(s.ID))
	assert.Equal(t, exitSysError, code)
}

func TestConfigCommand(t *testing.T) {
	e := newTestEnv(t)
	t.Setenv("PROMPTER_SCROLL_SPEED", "1.5")

	out := e.mustExec("config", "--json")
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1.5, got["scroll_speed"])
	assert.Equal(t, "sqlite", got["backend"])
	assert.Equal(t, e.dataDir, got["data_dir"])
	assert.Equal(t, e.configDir, got["config_dir"])

	assert.Contains(t, e.mustExec("config"), "scroll_speed: 1.5")
}

func TestFileBackendFromConfig(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: file\n"), 0o644))

	e.createJSON("--name", "Solo", "--content", "Hello")
	assert.FileExists(t, filepath.Join(e.dataDir, "teleprompter-scripts.json"))
	assert.Equal(t, []string{"Solo"}, names(e.listJSON()))
}

func TestExitCodes(t *testing.T) {
	e := newTestEnv(t)

	code, _ := e.code("show", "999")
	assert.Equal(t, exitUserError, code)

	code, stderr := e.code("show", "abc")
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, stderr, `invalid id "abc"`)

	code, _ = e.code("list", "--no-such-flag")
	assert.Equal(t, exitUserError, code)

	code, _ = e.code("version")
	assert.Equal(t, exitSuccess, code)

	t.Run("unknown backend", func(t *testing.T) {
		e := newTestEnv(t)
		require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"), []byte("backend: tape\n"), 0o644))
		code, _ := e.code("list")
		assert.Equal(t, exitUserError, code)
	})

	t.Run("locked data dir", func(t *testing.T) {
		e := newTestEnv(t)
		st, err := storage.Open(types.Config{Backend: types.BackendSQLite, DataDir: e.dataDir})
		require.NoError(t, err)
		defer st.Detach()

		code, stderr := e.code("list")
		assert.Equal(t, exitSysError, code)
		assert.Contains(t, stderr, types.ErrStorageLocked.Error())
	})
}

func TestClassify(t *testing.T) {
	assert.Nil(t, classify(nil))
	assert.Equal(t, exitUserError, exitCode(classify(fmt.Errorf("x: %w", types.ErrNotFound))))
	assert.Equal(t, exitSysError, exitCode(classify(errors.New("disk on fire"))))
	assert.Equal(t, exitUserError, exitCode(errors.New("unknown flag")))
	assert.Equal(t, exitSuccess, exitCode(nil))
}
