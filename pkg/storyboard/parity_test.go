package storyboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/internal/storetest"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// snapshot is everything the read calls expose after a script runs.
type snapshot struct {
	Projects    []*types.Project
	Trees       []*ProjectTree
	Appearances []Appearances
}

// script performs a fixed mix of creates, updates, relation calls and
// deletes, then reads everything back.
func script(t *testing.T, s *Service) snapshot {
	t.Helper()
	ctx := context.Background()

	p1, err := s.CreateProject(ctx, storetest.Project("", storetest.Base))
	require.NoError(t, err)
	p2, err := s.CreateProject(ctx, &types.Project{Title: "Second", Status: types.StatusArchived, Tags: []string{}})
	require.NoError(t, err)

	lead, err := s.CreateCharacter(ctx, storetest.Character("", p1.ID, storetest.Base))
	require.NoError(t, err)
	rival, err := s.CreateCharacter(ctx, &types.Character{ProjectID: p1.ID, Name: "Oru"})
	require.NoError(t, err)
	_, err = s.CreateOutfitTemplate(ctx, storetest.Outfit("", p1.ID, storetest.Base))
	require.NoError(t, err)
	_, err = s.CreateLocationTemplate(ctx, storetest.Location("", p1.ID, storetest.Base))
	require.NoError(t, err)

	// Chapter numbers arrive out of order and one repeats.
	var chapters []*types.Chapter
	for _, number := range []int{2, 1, 3, 2} {
		c, err := s.CreateChapter(ctx, storetest.Chapter("", p1.ID, number, storetest.Base))
		require.NoError(t, err)
		chapters = append(chapters, c)
	}
	for _, c := range chapters[:3] {
		for _, order := range []int{2, 1} {
			scene, err := s.CreateScene(ctx, storetest.Scene("", c.ID, order, storetest.Base))
			require.NoError(t, err)
			for _, porder := range []int{1, 1, 0} {
				panel, err := s.CreatePanel(ctx, storetest.Panel("", scene.ID, porder, storetest.Base, lead.ID, lead.ID))
				require.NoError(t, err)
				_, err = s.CreatePanelDialogue(ctx, storetest.Dialogue("", panel.ID, 1, lead.ID, storetest.Base))
				require.NoError(t, err)
				_, err = s.CreatePanelDialogue(ctx, storetest.Dialogue("", panel.ID, 0, rival.ID, storetest.Base))
				require.NoError(t, err)
				require.NoError(t, s.AssignCharacterToPanel(ctx, panel.ID, rival.ID))
			}
		}
	}

	require.NoError(t, s.UpdateProject(ctx, p2.ID, types.ProjectPatch{Likes: types.Ptr(int64(7))}))
	require.NoError(t, s.UpdateChapter(ctx, chapters[2].ID, types.ChapterPatch{ChapterNumber: types.Ptr(0)}))
	require.NoError(t, s.DeleteChapter(ctx, chapters[1].ID))

	scenes, err := s.ListScenes(ctx, chapters[0].ID)
	require.NoError(t, err)
	panels, err := s.ListPanels(ctx, scenes[0].ID)
	require.NoError(t, err)
	require.NoError(t, s.RemoveCharacterFromPanel(ctx, panels[0].ID, lead.ID))
	require.NoError(t, s.UpdatePanel(ctx, panels[1].ID, types.PanelPatch{ImageURL: types.Ptr("")}))
	require.NoError(t, s.DeleteCharacter(ctx, rival.ID))
	require.NoError(t, s.DeleteProject(ctx, p2.ID))

	var snap snapshot
	snap.Projects, err = s.ListProjects(ctx)
	require.NoError(t, err)
	for _, p := range snap.Projects {
		tree, err := s.GetProjectWithRelations(ctx, p.ID)
		require.NoError(t, err)
		snap.Trees = append(snap.Trees, tree)
	}
	for _, id := range []string{lead.ID, rival.ID} {
		refs, err := s.CharacterAppearances(ctx, id)
		require.NoError(t, err)
		snap.Appearances = append(snap.Appearances, refs)
	}
	return snap
}

func TestBackendParity(t *testing.T) {
	docstore := script(t, newService(t, types.Config{Backend: types.BackendDocstore}))
	sqlite := script(t, newService(t, types.Config{Backend: types.BackendSQLite}))

	require.Len(t, docstore.Projects, 1)
	require.Len(t, docstore.Trees[0].Chapters, 3)
	assert.Equal(t, docstore, sqlite)
}

func TestBackendParityOnDisk(t *testing.T) {
	docstore := script(t, newService(t, types.Config{Backend: types.BackendDocstore, DataDir: t.TempDir()}))
	sqlite := script(t, newService(t, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	assert.Equal(t, docstore, sqlite)
}

func TestEmptyCollectionsMatchAcrossBackends(t *testing.T) {
	read := func(t *testing.T, s *Service) (*types.Character, *types.Scene) {
		t.Helper()
		ctx := context.Background()
		p, err := s.CreateProject(ctx, &types.Project{Title: "Bare"})
		require.NoError(t, err)
		c, err := s.CreateCharacter(ctx, &types.Character{
			ProjectID: p.ID,
			Name:      "Oru",
			Attributes: types.CharacterAttributes{
				Face:  types.FaceAttributes{Features: []string{}},
				Style: types.StyleGuide{Palette: []string{}},
			},
		})
		require.NoError(t, err)
		ch, err := s.CreateChapter(ctx, &types.Chapter{ProjectID: p.ID, ChapterNumber: 1})
		require.NoError(t, err)
		sc, err := s.CreateScene(ctx, &types.Scene{
			ChapterID: ch.ID,
			Context:   types.SceneContext{ConsistencyAnchors: map[string]string{}},
		})
		require.NoError(t, err)

		character, err := s.GetCharacter(ctx, c.ID)
		require.NoError(t, err)
		scene, err := s.GetScene(ctx, sc.ID)
		require.NoError(t, err)
		return character, scene
	}

	docCharacter, docScene := read(t, newService(t, types.Config{Backend: types.BackendDocstore}))
	sqlCharacter, sqlScene := read(t, newService(t, types.Config{Backend: types.BackendSQLite}))

	assert.Nil(t, docCharacter.Attributes.Face.Features)
	assert.Equal(t, docCharacter, sqlCharacter)
	assert.Nil(t, docScene.Context.ConsistencyAnchors)
	assert.Equal(t, docScene, sqlScene)
}
