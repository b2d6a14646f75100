package storyboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/internal/storetest"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// backendCase names a backend configuration the façade tests run against.
type backendCase struct {
	name string
	cfg  types.Config
}

// strictBackends run with every engine constraint on.
var strictBackends = []backendCase{
	{"docstore", types.Config{Backend: types.BackendDocstore}},
	{"sqlite", types.Config{Backend: types.BackendSQLite}},
}

// lenientBackends accept rows whose parent is missing, so tests can inject
// the drift the sweep repairs.
var lenientBackends = []backendCase{
	{"docstore", types.Config{Backend: types.BackendDocstore}},
	{"sqlite", types.Config{Backend: types.BackendSQLite, SQLite: types.SQLiteConfig{DisableForeignKeys: true}}},
}

func eachBackend(t *testing.T, cases []backendCase, fn func(t *testing.T, s *Service)) {
	for _, bc := range cases {
		t.Run(bc.name, func(t *testing.T) {
			fn(t, newService(t, bc.cfg))
		})
	}
}

// newService opens a service with deterministic ids and a clock that
// advances one millisecond per reading.
func newService(t *testing.T, cfg types.Config) *Service {
	t.Helper()
	s, err := Open(context.Background(), cfg,
		WithIDGenerator(SequentialIDs("id")),
		WithClock(steppingClock()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func steppingClock() func() time.Time {
	now := storetest.Base
	return func() time.Time {
		now = now.Add(time.Millisecond)
		return now
	}
}

// chain is the P1 -> C1 -> S1 -> PN1 fixture plus a character and a line.
type chain struct {
	project   *types.Project
	chapter   *types.Chapter
	scene     *types.Scene
	panel     *types.Panel
	character *types.Character
	dialogue  *types.Dialogue
}

func buildChain(t *testing.T, s *Service) chain {
	t.Helper()
	ctx := context.Background()
	var c chain
	var err error

	c.project, err = s.CreateProject(ctx, &types.Project{Title: "P1", Status: types.StatusDraft})
	require.NoError(t, err)
	c.chapter, err = s.CreateChapter(ctx, &types.Chapter{ProjectID: c.project.ID, ChapterNumber: 1, Title: "C1"})
	require.NoError(t, err)
	c.scene, err = s.CreateScene(ctx, &types.Scene{ChapterID: c.chapter.ID, Order: 1, Title: "S1"})
	require.NoError(t, err)
	c.panel, err = s.CreatePanel(ctx, &types.Panel{SceneID: c.scene.ID, Order: 1})
	require.NoError(t, err)
	c.character, err = s.CreateCharacter(ctx, &types.Character{ProjectID: c.project.ID, Name: "CH1"})
	require.NoError(t, err)
	c.dialogue, err = s.CreatePanelDialogue(ctx, &types.Dialogue{
		PanelID:   c.panel.ID,
		Order:     1,
		Content:   "Who's there?",
		Type:      types.DialogueSpeech,
		SpeakerID: c.character.ID,
	})
	require.NoError(t, err)
	return c
}
