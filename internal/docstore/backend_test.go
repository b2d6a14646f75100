package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/internal/storetest"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

func attached(t *testing.T, dataDir string) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(context.Background(), types.Config{
		Backend: types.BackendDocstore,
		DataDir: dataDir,
	}))
	return b
}

func TestConformanceInMemory(t *testing.T) {
	storetest.Run(t, func(t *testing.T) types.Backend {
		return attached(t, "")
	})
}

func TestConformanceOnDisk(t *testing.T) {
	storetest.Run(t, func(t *testing.T) types.Backend {
		return attached(t, t.TempDir())
	})
}

func TestAttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(context.Background(), types.Config{})
	assert.ErrorIs(t, err, types.ErrBackendEmpty)
}

func TestAttachCreatesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	b := attached(t, dir)
	defer b.Detach()

	for _, name := range []string{
		collProjects, collChapters, collScenes, collPanels,
		collDialogues, collCharacters, collOutfits, collLocations,
	} {
		_, err := os.Stat(jsonlPath(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestReloadAfterDetach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := attached(t, dir)
	g := storetest.SeedGraph(t, b)
	require.NoError(t, b.Panels().AssignCharacter(ctx, g.Panel.ID, g.Character.ID))
	require.NoError(t, b.Detach())

	b = attached(t, dir)
	defer b.Detach()

	character, err := b.Characters().Get(ctx, g.Character.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Character, character)

	panel, err := b.Panels().Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Panel, panel)

	scenes, err := b.Scenes().ListByParent(ctx, g.Chapter.ID)
	require.NoError(t, err, "parent index rebuilt on load")
	require.Len(t, scenes, 1)
	assert.Equal(t, g.Scene.ID, scenes[0].ID)
}

func TestLoadSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	content := `{"id":"p1","title":"kept","status":"draft","worldDetails":{},"plotStructure":{},"views":0,"likes":0,"createdAt":"2026-03-14T09:26:53.589Z","updatedAt":"2026-03-14T09:26:53.589Z"}
not json at all
{"title":"no id"}

{"id":"p2","title":"also kept","status":"draft","worldDetails":{},"plotStructure":{},"views":0,"likes":0,"createdAt":"2026-03-14T09:26:54.589Z","updatedAt":"2026-03-14T09:26:54.589Z"}
`
	require.NoError(t, os.WriteFile(jsonlPath(dir, collProjects), []byte(content), 0o644))

	b := attached(t, dir)
	defer b.Detach()

	projects, err := b.Projects().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0].ID)
	assert.Equal(t, "p2", projects[1].ID)
}

func TestCascadePersists(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := attached(t, dir)
	g := storetest.SeedGraph(t, b)
	require.NoError(t, b.Projects().Delete(ctx, g.Project.ID))
	require.NoError(t, b.Detach())

	for _, name := range []string{
		collProjects, collChapters, collScenes, collPanels,
		collDialogues, collCharacters, collOutfits, collLocations,
	} {
		records, err := readJSONL(jsonlPath(dir, name))
		require.NoError(t, err)
		assert.Empty(t, records, name)
	}
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b := attached(t, dir)
	defer b.Detach()
	g := storetest.SeedGraph(t, b)

	// Replace the data dir with a file so the next persist fails.
	require.NoError(t, os.RemoveAll(dir))
	require.NoError(t, os.WriteFile(dir, nil, 0o644))

	err := b.Projects().Delete(ctx, g.Project.ID)
	require.Error(t, err)

	project, err := b.Projects().Get(ctx, g.Project.ID)
	require.NoError(t, err, "failed commit must not be visible")
	assert.Equal(t, g.Project, project)
	_, err = b.Scenes().Get(ctx, g.Scene.ID)
	assert.NoError(t, err)
}

func TestReadsAreIsolatedFromStore(t *testing.T) {
	ctx := context.Background()
	b := attached(t, "")
	defer b.Detach()

	p := storetest.Panel("pn1", "s1", 1, storetest.At(0), "ch1")
	require.NoError(t, b.Panels().Create(ctx, p))
	p.CharacterIDs[0] = "mutated"
	p.Context.CharacterPoses["Ines"] = "mutated"

	got, err := b.Panels().Get(ctx, "pn1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1"}, got.CharacterIDs)
	assert.Equal(t, "hand on rail", got.Context.CharacterPoses["Ines"])

	got.CharacterIDs = append(got.CharacterIDs, "ch2")
	again, err := b.Panels().Get(ctx, "pn1")
	require.NoError(t, err)
	assert.Equal(t, []string{"ch1"}, again.CharacterIDs)
}

func TestDanglingParentAccepted(t *testing.T) {
	ctx := context.Background()
	b := attached(t, "")
	defer b.Detach()

	require.NoError(t, b.Scenes().Create(ctx, storetest.Scene("s1", "ghost", 1, storetest.At(0))))
	scenes, err := b.Scenes().ListByParent(ctx, "ghost")
	require.NoError(t, err)
	assert.Len(t, scenes, 1)
}

func TestCanceledContext(t *testing.T) {
	b := attached(t, "")
	defer b.Detach()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Projects().Create(ctx, storetest.Project("p1", storetest.At(0)))
	assert.ErrorIs(t, err, context.Canceled)
}
