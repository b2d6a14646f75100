package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/internal/paths"
	"github.com/mesh-intelligence/storyboard/pkg/storyboard"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// testEnv runs the command tree in process against isolated directories.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
	backend   string
}

type result struct {
	code   int
	stdout string
	stderr string
}

func newTestEnv(t *testing.T, backend string) *testEnv {
	t.Helper()
	root := t.TempDir()
	for _, key := range []string{paths.EnvConfigDir, paths.EnvDataDir, "STORYBOARD_BACKEND", "STORYBOARD_LOG_MODE"} {
		t.Setenv(key, "")
	}
	return &testEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
		backend:   backend,
	}
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	return e.runWithInput("", args...)
}

func (e *testEnv) runWithInput(stdin string, args ...string) result {
	e.t.Helper()
	full := append([]string{
		"--config-dir", e.configDir,
		"--data-dir", e.dataDir,
		"--backend", e.backend,
		"--log-mode", "quiet",
	}, args...)

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetArgs(full)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	err := root.ExecuteContext(context.Background())
	if err != nil {
		stderr.WriteString(err.Error())
	}
	return result{code: exitCode(err), stdout: stdout.String(), stderr: stderr.String()}
}

// mustRun runs args and fails the test unless the command succeeds.
func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	r := e.run(args...)
	require.Equal(e.t, exitSuccess, r.code, "storyboard %v: %s", args, r.stderr)
	return r.stdout
}

// create runs create and returns the assigned id.
func (e *testEnv) create(kind, payload string) string {
	e.t.Helper()
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(e.t, json.Unmarshal([]byte(e.mustRun("create", kind, payload)), &out))
	require.NotEmpty(e.t, out.ID)
	return out.ID
}

func eachBackend(t *testing.T, fn func(t *testing.T, env *testEnv)) {
	for _, name := range storyboard.Backends() {
		t.Run(name, func(t *testing.T) { fn(t, newTestEnv(t, name)) })
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	out := env.mustRun("version")
	assert.Contains(t, out, "storyboard v"+storyboard.Version)
	assert.Contains(t, out, modulePath)
}

func TestInitWritesConfigAndStore(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		out := env.mustRun("init")
		assert.Contains(t, out, "storyboard initialized")
		assert.Contains(t, out, env.dataDir)

		raw, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "backend: sqlite")
		assert.DirExists(t, env.dataDir)

		// A second init leaves the existing config alone.
		require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: docstore\n"), 0o644))
		env.mustRun("init")
		raw, err = os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "backend: docstore\n", string(raw))
	})
}

func TestEntityLifecycle(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		project := env.create("project", `{"title":"Tidewater","status":"draft"}`)
		chapter := env.create("chapter", `{"mangaProjectId":"`+project+`","chapterNumber":2,"title":"Low Tide"}`)
		env.create("chapter", `{"mangaProjectId":"`+project+`","chapterNumber":1,"title":"High Tide"}`)

		var got types.Chapter
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("get", "chapter", chapter)), &got))
		assert.Equal(t, "Low Tide", got.Title)
		assert.Equal(t, project, got.ProjectID)

		var listed []types.Chapter
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("list", "chapter", project)), &listed))
		require.Len(t, listed, 2)
		assert.Equal(t, "High Tide", listed[0].Title)

		var updated types.Chapter
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("update", "chapter", chapter, `{"isPublished":true}`)), &updated))
		assert.True(t, updated.IsPublished)
		assert.Equal(t, "Low Tide", updated.Title)

		assert.Contains(t, env.mustRun("delete", "project", project), "deleted project")
		r := env.run("get", "chapter", chapter)
		assert.Equal(t, exitUserError, r.code)
		assert.Contains(t, r.stderr, "not found")
	})
}

func TestCreateFromStdin(t *testing.T) {
	env := newTestEnv(t, types.BackendDocstore)
	r := env.runWithInput(`{"title":"Piped"}`, "create", "project", "-")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"title": "Piped"`)
}

func TestRelationsTreeAndClean(t *testing.T) {
	eachBackend(t, func(t *testing.T, env *testEnv) {
		project := env.create("project", `{"title":"T"}`)
		chapter := env.create("chapter", `{"mangaProjectId":"`+project+`","chapterNumber":1}`)
		scene := env.create("scene", `{"chapterId":"`+chapter+`","order":1}`)
		panel := env.create("panel", `{"sceneId":"`+scene+`","order":1}`)
		character := env.create("character", `{"mangaProjectId":"`+project+`","name":"Mika"}`)
		env.create("dialogue", `{"panelId":"`+panel+`","order":1,"content":"hi","speakerId":"`+character+`"}`)

		env.mustRun("assign", panel, character)
		var refs storyboard.Appearances
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("appearances", character)), &refs))
		assert.Equal(t, []string{panel}, refs.PanelIDs)
		assert.Len(t, refs.DialogueIDs, 1)

		var tree map[string]any
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("tree", project)), &tree))
		assert.Equal(t, project, tree["id"])
		assert.Len(t, tree["chapters"], 1)

		env.mustRun("unassign", panel, character)
		var report storyboard.CleanupReport
		require.NoError(t, json.Unmarshal([]byte(env.mustRun("clean", "--json")), &report))
		assert.Zero(t, report.Total())
		assert.Contains(t, env.mustRun("clean"), "made 0 repairs")
	})
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t, types.BackendSQLite)
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown kind", []string{"get", "comic", "x"}, exitUserError},
		{"missing args", []string{"get", "project"}, exitUserError},
		{"bad json", []string{"create", "project", "{"}, exitUserError},
		{"unknown field", []string{"create", "project", `{"nope":1}`}, exitUserError},
		{"missing entity", []string{"get", "project", "missing"}, exitUserError},
		{"missing tree", []string{"tree", "missing"}, exitUserError},
		{"assign missing ends", []string{"assign", "p", "c"}, exitUserError},
		{"list needs parent", []string{"list", "scene"}, exitUserError},
		{"project list takes no parent", []string{"list", "project", "x"}, exitUserError},
		{"unknown flag", []string{"list", "project", "--bogus"}, exitUserError},
		{"unknown command", []string{"frobnicate"}, exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := env.run(tt.args...)
			assert.Equal(t, tt.code, r.code, r.stderr)
		})
	}

	t.Run("unknown backend", func(t *testing.T) {
		bad := newTestEnv(t, "postgres")
		assert.Equal(t, exitUserError, bad.run("list", "project").code)
	})
}

func TestExitCodeMapping(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrPanelNotFound))
	assert.Equal(t, exitSysError, exitCode(types.ErrSchemaVersion))
	assert.Equal(t, exitSysError, exitCode(sysError(types.ErrNotFound)))
}

func TestConfigEnvOverrides(t *testing.T) {
	env := newTestEnv(t, "")
	t.Setenv("STORYBOARD_BACKEND", types.BackendDocstore)
	out := env.mustRun("init")
	assert.Contains(t, out, "backend: docstore")
	assert.FileExists(t, filepath.Join(env.dataDir, "projects.jsonl"))
}

func TestDotEnvLoaded(t *testing.T) {
	env := newTestEnv(t, "")
	// godotenv never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("STORYBOARD_BACKEND"))
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, ".env"), []byte("STORYBOARD_BACKEND=docstore\n"), 0o644))

	out := env.mustRun("init")
	assert.Contains(t, out, "backend: docstore")
}
