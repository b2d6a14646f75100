package storyboard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// seedProject builds a project with n chapters, each with two scenes of two
// panels of two dialogue lines, plus a character and both templates.
func seedProject(t *testing.T, s *Service, n int) *types.Project {
	t.Helper()
	ctx := context.Background()
	project, err := s.CreateProject(ctx, &types.Project{Title: "seeded"})
	require.NoError(t, err)
	character, err := s.CreateCharacter(ctx, &types.Character{ProjectID: project.ID, Name: "lead"})
	require.NoError(t, err)
	_, err = s.CreateOutfitTemplate(ctx, &types.OutfitTemplate{ProjectID: project.ID, Name: "coat"})
	require.NoError(t, err)
	_, err = s.CreateLocationTemplate(ctx, &types.LocationTemplate{ProjectID: project.ID, Name: "pier"})
	require.NoError(t, err)

	for ci := 1; ci <= n; ci++ {
		chapter, err := s.CreateChapter(ctx, &types.Chapter{ProjectID: project.ID, ChapterNumber: ci, Title: fmt.Sprint("ch", ci)})
		require.NoError(t, err)
		for si := 1; si <= 2; si++ {
			scene, err := s.CreateScene(ctx, &types.Scene{ChapterID: chapter.ID, Order: si})
			require.NoError(t, err)
			for pi := 1; pi <= 2; pi++ {
				panel, err := s.CreatePanel(ctx, &types.Panel{SceneID: scene.ID, Order: pi, CharacterIDs: []string{character.ID}})
				require.NoError(t, err)
				for di := 1; di <= 2; di++ {
					_, err := s.CreatePanelDialogue(ctx, &types.Dialogue{PanelID: panel.ID, Order: di, Content: "...", SpeakerID: character.ID})
					require.NoError(t, err)
				}
			}
		}
	}
	return project
}

// counts returns the number of rows in each table.
func counts(t *testing.T, s *Service) map[string]int {
	t.Helper()
	ctx := context.Background()
	b := s.Backend()
	out := map[string]int{}
	n := func(name string, rows int, err error) {
		require.NoError(t, err)
		out[name] = rows
	}
	projects, err := b.Projects().ListAll(ctx)
	n("projects", len(projects), err)
	chapters, err := b.Chapters().ListAll(ctx)
	n("chapters", len(chapters), err)
	scenes, err := b.Scenes().ListAll(ctx)
	n("scenes", len(scenes), err)
	panels, err := b.Panels().ListAll(ctx)
	n("panels", len(panels), err)
	dialogues, err := b.Dialogues().ListAll(ctx)
	n("dialogues", len(dialogues), err)
	characters, err := b.Characters().ListAll(ctx)
	n("characters", len(characters), err)
	outfits, err := b.Outfits().ListAll(ctx)
	n("outfits", len(outfits), err)
	locations, err := b.Locations().ListAll(ctx)
	n("locations", len(locations), err)
	return out
}

func TestDeleteProjectRemovesSubtree(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		doomed := seedProject(t, s, 3)
		kept := seedProject(t, s, 1)

		require.NoError(t, s.DeleteProject(ctx, doomed.ID))

		assert.Equal(t, map[string]int{
			"projects": 1, "chapters": 1, "scenes": 2, "panels": 4, "dialogues": 8,
			"characters": 1, "outfits": 1, "locations": 1,
		}, counts(t, s))

		got, err := s.GetProject(ctx, kept.ID)
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

func TestDeleteChapterScenario(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)

		require.NoError(t, s.DeleteChapter(ctx, c.chapter.ID))

		chapter, err := s.GetChapterForContext(ctx, c.chapter.ID)
		require.NoError(t, err)
		assert.Nil(t, chapter)
		scene, err := s.GetSceneForContext(ctx, c.scene.ID)
		require.NoError(t, err)
		assert.Nil(t, scene)
		panel, err := s.GetPanelForContext(ctx, c.panel.ID)
		require.NoError(t, err)
		assert.Nil(t, panel)
		dialogue, err := s.GetPanelDialogueForContext(ctx, c.dialogue.ID)
		require.NoError(t, err)
		assert.Nil(t, dialogue)

		project, err := s.GetProject(ctx, c.project.ID)
		require.NoError(t, err)
		assert.NotNil(t, project)
		character, err := s.GetCharacter(ctx, c.character.ID)
		require.NoError(t, err)
		assert.NotNil(t, character, "characters survive chapter deletion")
	})
}

func TestDeleteCharacterScenario(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)

		require.NoError(t, s.AssignCharacterToPanel(ctx, c.panel.ID, c.character.ID))
		panel, err := s.GetPanelForContext(ctx, c.panel.ID)
		require.NoError(t, err)
		assert.Contains(t, panel.CharacterIDs, c.character.ID)

		require.NoError(t, s.DeleteCharacter(ctx, c.character.ID))

		panel, err = s.GetPanelForContext(ctx, c.panel.ID)
		require.NoError(t, err)
		require.NotNil(t, panel, "panel survives")
		assert.Empty(t, panel.CharacterIDs)

		dialogue, err := s.GetPanelDialogue(ctx, c.dialogue.ID)
		require.NoError(t, err)
		require.NotNil(t, dialogue, "dialogue survives")
		assert.Empty(t, dialogue.SpeakerID)
		assert.Equal(t, c.dialogue.Content, dialogue.Content)
	})
}

func TestDeleteAbortsOnFirstError(t *testing.T) {
	ctx := context.Background()
	b, err := NewBackend(types.BackendDocstore)
	require.NoError(t, err)
	fb := &flakyBackend{Backend: b}
	s := New(fb, types.Config{Backend: types.BackendDocstore}, WithIDGenerator(SequentialIDs("id")))
	defer s.Close()

	c := buildChain(t, s)
	fb.failScenes = true

	err = s.DeleteChapter(ctx, c.chapter.ID)
	require.ErrorIs(t, err, errInjected)

	chapter, err := s.GetChapter(ctx, c.chapter.ID)
	require.NoError(t, err)
	assert.NotNil(t, chapter, "parent untouched when a child delete fails")

	fb.failScenes = false
	require.NoError(t, s.DeleteChapter(ctx, c.chapter.ID), "retry completes the cascade")
	chapter, err = s.GetChapter(ctx, c.chapter.ID)
	require.NoError(t, err)
	assert.Nil(t, chapter)
}

var errInjected = errors.New("injected failure")

// flakyBackend fails scene deletes on demand.
type flakyBackend struct {
	types.Backend
	failScenes bool
}

func (f *flakyBackend) Scenes() types.ChildTable[types.Scene, types.ScenePatch] {
	return flakyScenes{ChildTable: f.Backend.Scenes(), fail: &f.failScenes}
}

type flakyScenes struct {
	types.ChildTable[types.Scene, types.ScenePatch]
	fail *bool
}

func (f flakyScenes) Delete(ctx context.Context, id string) error {
	if *f.fail {
		return errInjected
	}
	return f.ChildTable.Delete(ctx, id)
}
