// Package storetest is the conformance suite every storage backend runs.
// Both backends must behave identically through the table contract except
// where a test says otherwise.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Opener returns an attached backend with an empty store. The suite
// detaches it.
type Opener func(t *testing.T) types.Backend

// Run executes the conformance suite against backends produced by open.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, b types.Backend)
	}{
		{"Lifecycle", testLifecycle},
		{"CreateValidation", testCreateValidation},
		{"RoundTrip", testRoundTrip},
		{"EmptyCollectionsReadBackNil", testEmptyCollectionsReadBackNil},
		{"GetMissing", testGetMissing},
		{"UpdateMerges", testUpdateMerges},
		{"UpdateNoOps", testUpdateNoOps},
		{"UpdateWithoutStampKeepsUpdatedAt", testUpdateWithoutStampKeepsUpdatedAt},
		{"UpdateReparents", testUpdateReparents},
		{"ListOrdering", testListOrdering},
		{"ListEmpty", testListEmpty},
		{"DeleteSingleRow", testDeleteSingleRow},
		{"PanelMembers", testPanelMembers},
		{"RelationErrors", testRelationErrors},
		{"SpeakerClear", testSpeakerClear},
		{"NativeCascade", testNativeCascade},
		{"CharacterDeleteReleasesReferences", testCharacterDeleteReleasesReferences},
		{"DetachedCalls", testDetachedCalls},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := open(t)
			t.Cleanup(func() { _ = b.Detach() })
			tt.fn(t, b)
		})
	}
}

func testLifecycle(t *testing.T, b types.Backend) {
	ctx := context.Background()
	err := b.Attach(ctx, types.Config{Backend: b.Name()})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach must be idempotent")
}

func testCreateValidation(t *testing.T, b types.Backend) {
	ctx := context.Background()

	err := b.Projects().Create(ctx, Project("", Base))
	assert.ErrorIs(t, err, types.ErrInvalidID)

	err = b.Projects().Create(ctx, nil)
	assert.ErrorIs(t, err, types.ErrInvalidData)

	require.NoError(t, b.Projects().Create(ctx, Project("p1", Base)))
	err = b.Projects().Create(ctx, Project("p1", At(1)))
	assert.ErrorIs(t, err, types.ErrInvalidID, "duplicate id")
}

func testRoundTrip(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	project, err := b.Projects().Get(ctx, g.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Project, project)

	chapter, err := b.Chapters().Get(ctx, g.Chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Chapter, chapter)

	scene, err := b.Scenes().Get(ctx, g.Scene.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Scene, scene)

	panel, err := b.Panels().Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Panel, panel)

	dialogue, err := b.Dialogues().Get(ctx, g.Dialogue.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Dialogue, dialogue)

	character, err := b.Characters().Get(ctx, g.Character.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Character, character)

	outfit, err := b.Outfits().Get(ctx, g.Outfit.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Outfit, outfit)

	location, err := b.Locations().Get(ctx, g.Location.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Location, location)

	// Mutating a returned value must not reach the store.
	character.Attributes.Face.Features[0] = "changed"
	again, err := b.Characters().Get(ctx, g.Character.ID)
	require.NoError(t, err)
	assert.Equal(t, "scar over left brow", again.Attributes.Face.Features[0])
}

func testEmptyCollectionsReadBackNil(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	character := Character("ch-empty", g.Project.ID, At(30))
	character.Traits = []string{}
	character.Attributes.Face.Features = []string{}
	character.Attributes.Style.Palette = []string{}
	require.NoError(t, b.Characters().Create(ctx, character))

	scene := Scene("s-empty", g.Chapter.ID, 9, At(31))
	scene.Context.PresentCharacters = []string{}
	scene.Context.ConsistencyAnchors = map[string]string{}
	require.NoError(t, b.Scenes().Create(ctx, scene))

	panel := Panel("pn-empty", g.Scene.ID, 9, At(32))
	panel.Context.CharacterPoses = map[string]string{}
	panel.Context.Effects = []string{}
	require.NoError(t, b.Panels().Create(ctx, panel))

	project := Project("p-empty", At(33))
	project.Tags = []string{}
	project.PlotStructure.Acts = []types.PlotAct{}
	project.WorldDetails.Extra = map[string]string{}
	require.NoError(t, b.Projects().Create(ctx, project))

	gotCharacter, err := b.Characters().Get(ctx, character.ID)
	require.NoError(t, err)
	assert.Nil(t, gotCharacter.Traits)
	assert.Nil(t, gotCharacter.Attributes.Face.Features)
	assert.Nil(t, gotCharacter.Attributes.Style.Palette)

	gotScene, err := b.Scenes().Get(ctx, scene.ID)
	require.NoError(t, err)
	assert.Nil(t, gotScene.Context.PresentCharacters)
	assert.Nil(t, gotScene.Context.ConsistencyAnchors)

	gotPanel, err := b.Panels().Get(ctx, panel.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPanel.Context.CharacterPoses)
	assert.Nil(t, gotPanel.Context.Effects)
	assert.Nil(t, gotPanel.CharacterIDs)

	gotProject, err := b.Projects().Get(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gotProject.Tags)
	assert.Nil(t, gotProject.PlotStructure.Acts)
	assert.Nil(t, gotProject.WorldDetails.Extra)

	// Emptying a collection through a patch reads back the same way.
	require.NoError(t, b.Characters().Update(ctx, g.Character.ID, types.CharacterPatch{
		Traits:    &[]string{},
		UpdatedAt: At(34),
	}))
	updated, err := b.Characters().Get(ctx, g.Character.ID)
	require.NoError(t, err)
	assert.Nil(t, updated.Traits)
}

func testGetMissing(t *testing.T, b types.Backend) {
	ctx := context.Background()
	_, err := b.Projects().Get(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Panels().Get(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = b.Dialogues().Get(ctx, "nope")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testUpdateMerges(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)
	later := At(100)

	require.NoError(t, b.Projects().Update(ctx, g.Project.ID, types.ProjectPatch{
		Title:     types.Ptr("Tides of Salt"),
		Status:    types.Ptr(types.StatusPublished),
		Tags:      &[]string{"drama"},
		UpdatedAt: later,
	}))
	project, err := b.Projects().Get(ctx, g.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tides of Salt", project.Title)
	assert.Equal(t, types.StatusPublished, project.Status)
	assert.Equal(t, []string{"drama"}, project.Tags)
	assert.Equal(t, g.Project.Description, project.Description, "unsupplied field kept")
	assert.Equal(t, g.Project.WorldDetails, project.WorldDetails, "unsupplied nested field kept")
	assert.Equal(t, g.Project.CreatedAt, project.CreatedAt)
	assert.Equal(t, later, project.UpdatedAt)

	attrs := g.Character.Attributes
	attrs.Hair.Color = "white"
	require.NoError(t, b.Characters().Update(ctx, g.Character.ID, types.CharacterPatch{
		Attributes: &attrs,
		UpdatedAt:  later,
	}))
	character, err := b.Characters().Get(ctx, g.Character.ID)
	require.NoError(t, err)
	assert.Equal(t, "white", character.Attributes.Hair.Color)
	assert.Equal(t, g.Character.Name, character.Name)

	require.NoError(t, b.Chapters().Update(ctx, g.Chapter.ID, types.ChapterPatch{
		IsPublished: types.Ptr(true),
		Views:       types.Ptr(int64(99)),
		UpdatedAt:   later,
	}))
	chapter, err := b.Chapters().Get(ctx, g.Chapter.ID)
	require.NoError(t, err)
	assert.True(t, chapter.IsPublished)
	assert.Equal(t, int64(99), chapter.Views)
}

func testUpdateNoOps(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Scenes().Update(ctx, g.Scene.ID, types.ScenePatch{UpdatedAt: At(500)}))
	scene, err := b.Scenes().Get(ctx, g.Scene.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Scene, scene, "empty patch must not touch the row")

	require.NoError(t, b.Scenes().Update(ctx, "missing", types.ScenePatch{Title: types.Ptr("x")}))
	_, err = b.Scenes().Get(ctx, "missing")
	assert.ErrorIs(t, err, types.ErrNotFound, "update must not create")
}

func testUpdateWithoutStampKeepsUpdatedAt(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Scenes().Update(ctx, g.Scene.ID, types.ScenePatch{Title: types.Ptr("Bells")}))
	scene, err := b.Scenes().Get(ctx, g.Scene.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bells", scene.Title)
	assert.Equal(t, g.Scene.UpdatedAt, scene.UpdatedAt)

	// A members-only patch has no columns to write on the panel row itself.
	require.NoError(t, b.Panels().Update(ctx, g.Panel.ID, types.PanelPatch{CharacterIDs: &[]string{}}))
	panel, err := b.Panels().Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Nil(t, panel.CharacterIDs)
	assert.Equal(t, g.Panel.UpdatedAt, panel.UpdatedAt)

	require.NoError(t, b.Projects().Update(ctx, g.Project.ID, types.ProjectPatch{Likes: types.Ptr(int64(7))}))
	project, err := b.Projects().Get(ctx, g.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), project.Likes)
	assert.Equal(t, g.Project.UpdatedAt, project.UpdatedAt)
}

func testUpdateReparents(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)
	other := Chapter("c-other", g.Project.ID, 2, At(50))
	require.NoError(t, b.Chapters().Create(ctx, other))

	require.NoError(t, b.Scenes().Update(ctx, g.Scene.ID, types.ScenePatch{ChapterID: &other.ID, UpdatedAt: At(60)}))

	old, err := b.Scenes().ListByParent(ctx, g.Chapter.ID)
	require.NoError(t, err)
	assert.Empty(t, old)
	moved, err := b.Scenes().ListByParent(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, moved, 1)
	assert.Equal(t, g.Scene.ID, moved[0].ID)
}

func testListOrdering(t *testing.T, b types.Backend) {
	ctx := context.Background()
	require.NoError(t, b.Projects().Create(ctx, Project("p1", Base)))

	// Chapter numbers out of insertion order, with a duplicate number
	// broken by creation time and a duplicate time broken by id.
	chapters := []*types.Chapter{
		Chapter("c-b", "p1", 3, At(1)),
		Chapter("c-a", "p1", 1, At(2)),
		Chapter("c-d", "p1", 2, At(4)),
		Chapter("c-c", "p1", 2, At(3)),
		Chapter("c-f", "p1", 5, At(9)),
		Chapter("c-e", "p1", 5, At(9)),
	}
	for _, c := range chapters {
		require.NoError(t, b.Chapters().Create(ctx, c))
	}
	listed, err := b.Chapters().ListByParent(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c-a", "c-c", "c-d", "c-b", "c-e", "c-f"}, chapterIDs(listed))

	require.NoError(t, b.Scenes().Create(ctx, Scene("s-2", "c-a", 2, At(10))))
	require.NoError(t, b.Scenes().Create(ctx, Scene("s-1", "c-a", 1, At(11))))
	require.NoError(t, b.Scenes().Create(ctx, Scene("s-0", "c-a", 1, At(10))))
	scenes, err := b.Scenes().ListByParent(ctx, "c-a")
	require.NoError(t, err)
	require.Len(t, scenes, 3)
	assert.Equal(t, "s-0", scenes[0].ID)
	assert.Equal(t, "s-1", scenes[1].ID)
	assert.Equal(t, "s-2", scenes[2].ID)

	require.NoError(t, b.Characters().Create(ctx, Character("ch-2", "p1", At(20))))
	require.NoError(t, b.Characters().Create(ctx, Character("ch-1", "p1", At(21))))
	characters, err := b.Characters().ListByParent(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, characters, 2)
	assert.Equal(t, "ch-2", characters[0].ID, "characters list in creation order")

	all, err := b.Chapters().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c-b", "c-a", "c-c", "c-d", "c-e", "c-f"}, chapterIDs(all))
}

func testListEmpty(t *testing.T, b types.Backend) {
	ctx := context.Background()
	chapters, err := b.Chapters().ListByParent(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, chapters)
	assert.Empty(t, chapters)

	projects, err := b.Projects().ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func testDeleteSingleRow(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Dialogues().Delete(ctx, g.Dialogue.ID))
	_, err := b.Dialogues().Get(ctx, g.Dialogue.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = b.Panels().Get(ctx, g.Panel.ID)
	assert.NoError(t, err, "owner survives")

	require.NoError(t, b.Dialogues().Delete(ctx, g.Dialogue.ID), "second delete is a no-op")
	require.NoError(t, b.Outfits().Delete(ctx, "missing"))
}

func testPanelMembers(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)
	extra := Character("ch-extra", g.Project.ID, At(40))
	require.NoError(t, b.Characters().Create(ctx, extra))

	panels := b.Panels()
	require.NoError(t, panels.AssignCharacter(ctx, g.Panel.ID, extra.ID))
	require.NoError(t, panels.AssignCharacter(ctx, g.Panel.ID, extra.ID), "assign is idempotent")

	panel, err := panels.Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{g.Character.ID, extra.ID}, panel.CharacterIDs)
	assert.Equal(t, g.Panel.UpdatedAt, panel.UpdatedAt)

	require.NoError(t, panels.RemoveCharacter(ctx, g.Panel.ID, g.Character.ID))
	require.NoError(t, panels.RemoveCharacter(ctx, g.Panel.ID, g.Character.ID), "remove is idempotent")
	panel, err = panels.Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{extra.ID}, panel.CharacterIDs)

	require.NoError(t, panels.Update(ctx, g.Panel.ID, types.PanelPatch{
		CharacterIDs: &[]string{g.Character.ID, extra.ID, g.Character.ID},
		UpdatedAt:    At(41),
	}))
	listed, err := panels.ListByParent(ctx, g.Scene.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{g.Character.ID, extra.ID}, listed[0].CharacterIDs)
	assert.Equal(t, At(41), listed[0].UpdatedAt)

	require.NoError(t, panels.Update(ctx, g.Panel.ID, types.PanelPatch{CharacterIDs: &[]string{}, UpdatedAt: At(42)}))
	all, err := panels.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Nil(t, all[0].CharacterIDs, "no members reads back as nil")
}

func testRelationErrors(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)
	panels := b.Panels()

	assert.ErrorIs(t, panels.AssignCharacter(ctx, "missing", g.Character.ID), types.ErrPanelNotFound)
	assert.ErrorIs(t, panels.AssignCharacter(ctx, g.Panel.ID, "missing"), types.ErrCharacterNotFound)
	assert.ErrorIs(t, panels.RemoveCharacter(ctx, "missing", g.Character.ID), types.ErrPanelNotFound)
	err := panels.RemoveCharacter(ctx, g.Panel.ID, "missing")
	assert.ErrorIs(t, err, types.ErrCharacterNotFound)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func testSpeakerClear(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Dialogues().Update(ctx, g.Dialogue.ID, types.DialoguePatch{
		SpeakerID: types.Ptr(""),
		UpdatedAt: At(70),
	}))
	dialogue, err := b.Dialogues().Get(ctx, g.Dialogue.ID)
	require.NoError(t, err)
	assert.Empty(t, dialogue.SpeakerID)
	assert.Equal(t, g.Dialogue.Content, dialogue.Content)
}

func testNativeCascade(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Chapters().Delete(ctx, g.Chapter.ID))
	for _, get := range []func() error{
		func() error { _, err := b.Scenes().Get(ctx, g.Scene.ID); return err },
		func() error { _, err := b.Panels().Get(ctx, g.Panel.ID); return err },
		func() error { _, err := b.Dialogues().Get(ctx, g.Dialogue.ID); return err },
	} {
		assert.ErrorIs(t, get(), types.ErrNotFound)
	}
	_, err := b.Characters().Get(ctx, g.Character.ID)
	assert.NoError(t, err, "characters belong to the project, not the chapter")

	require.NoError(t, b.Projects().Delete(ctx, g.Project.ID))
	for _, get := range []func() error{
		func() error { _, err := b.Characters().Get(ctx, g.Character.ID); return err },
		func() error { _, err := b.Outfits().Get(ctx, g.Outfit.ID); return err },
		func() error { _, err := b.Locations().Get(ctx, g.Location.ID); return err },
	} {
		assert.ErrorIs(t, get(), types.ErrNotFound)
	}
}

func testCharacterDeleteReleasesReferences(t *testing.T, b types.Backend) {
	ctx := context.Background()
	g := SeedGraph(t, b)

	require.NoError(t, b.Characters().Delete(ctx, g.Character.ID))

	panel, err := b.Panels().Get(ctx, g.Panel.ID)
	require.NoError(t, err)
	assert.Empty(t, panel.CharacterIDs)

	dialogue, err := b.Dialogues().Get(ctx, g.Dialogue.ID)
	require.NoError(t, err)
	assert.Empty(t, dialogue.SpeakerID)
}

func testDetachedCalls(t *testing.T, b types.Backend) {
	ctx := context.Background()
	require.NoError(t, b.Detach())

	assert.ErrorIs(t, b.Projects().Create(ctx, Project("p1", Base)), types.ErrDetached)
	_, err := b.Projects().Get(ctx, "p1")
	assert.ErrorIs(t, err, types.ErrDetached)
	_, err = b.Scenes().ListByParent(ctx, "c1")
	assert.ErrorIs(t, err, types.ErrDetached)
	assert.ErrorIs(t, b.Panels().AssignCharacter(ctx, "pn1", "ch1"), types.ErrDetached)
}

func chapterIDs(chapters []*types.Chapter) []string {
	ids := make([]string, len(chapters))
	for i, c := range chapters {
		ids[i] = c.ID
	}
	return ids
}

// Graph is one fully linked project.
type Graph struct {
	Project   *types.Project
	Chapter   *types.Chapter
	Scene     *types.Scene
	Panel     *types.Panel
	Dialogue  *types.Dialogue
	Character *types.Character
	Outfit    *types.OutfitTemplate
	Location  *types.LocationTemplate
}

// SeedGraph writes one record of every kind, linked together, through the
// backend tables.
func SeedGraph(t *testing.T, b types.Backend) Graph {
	t.Helper()
	ctx := context.Background()
	g := Graph{
		Project:   Project("p1", At(0)),
		Chapter:   Chapter("c1", "p1", 1, At(1)),
		Scene:     Scene("s1", "c1", 1, At(2)),
		Character: Character("ch1", "p1", At(3)),
		Outfit:    Outfit("o1", "p1", At(6)),
		Location:  Location("l1", "p1", At(7)),
	}
	g.Panel = Panel("pn1", "s1", 1, At(4), "ch1")
	g.Dialogue = Dialogue("d1", "pn1", 1, "ch1", At(5))

	require.NoError(t, b.Projects().Create(ctx, g.Project))
	require.NoError(t, b.Chapters().Create(ctx, g.Chapter))
	require.NoError(t, b.Scenes().Create(ctx, g.Scene))
	require.NoError(t, b.Characters().Create(ctx, g.Character))
	require.NoError(t, b.Panels().Create(ctx, g.Panel))
	require.NoError(t, b.Dialogues().Create(ctx, g.Dialogue))
	require.NoError(t, b.Outfits().Create(ctx, g.Outfit))
	require.NoError(t, b.Locations().Create(ctx, g.Location))
	return g
}

