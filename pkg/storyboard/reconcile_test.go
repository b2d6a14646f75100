package storyboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/internal/storetest"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

func TestCleanOrphanedDataConverges(t *testing.T) {
	eachBackend(t, lenientBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)
		b := s.Backend()

		// A scene whose chapter is gone, with a panel and a line under it.
		require.NoError(t, b.Scenes().Create(ctx, storetest.Scene("lost-scene", "gone-chapter", 1, storetest.At(0))))
		require.NoError(t, b.Panels().Create(ctx, storetest.Panel("lost-panel", "lost-scene", 1, storetest.At(1))))
		require.NoError(t, b.Dialogues().Create(ctx, storetest.Dialogue("lost-line", "lost-panel", 1, "", storetest.At(2))))

		report, err := s.CleanOrphanedData(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Scenes)
		assert.Equal(t, 0, report.Panels, "the panel goes with its scene")
		assert.Equal(t, 1, report.Total())

		for _, id := range []string{"lost-scene"} {
			scene, err := s.GetScene(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, scene)
		}
		panel, err := s.GetPanel(ctx, "lost-panel")
		require.NoError(t, err)
		assert.Nil(t, panel)
		line, err := s.GetPanelDialogue(ctx, "lost-line")
		require.NoError(t, err)
		assert.Nil(t, line)

		live, err := s.GetScene(ctx, c.scene.ID)
		require.NoError(t, err)
		assert.NotNil(t, live, "attached rows are left alone")

		again, err := s.CleanOrphanedData(ctx)
		require.NoError(t, err)
		assert.Zero(t, again.Total(), "second run finds nothing")
	})
}

func TestCleanOrphanedDataEveryPass(t *testing.T) {
	eachBackend(t, lenientBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)
		b := s.Backend()

		require.NoError(t, b.Chapters().Create(ctx, storetest.Chapter("lost-chapter", "gone-project", 1, storetest.At(0))))
		require.NoError(t, b.Scenes().Create(ctx, storetest.Scene("scene-of-lost", "lost-chapter", 1, storetest.At(1))))
		require.NoError(t, b.Panels().Create(ctx, storetest.Panel("lost-panel", "gone-scene", 1, storetest.At(2))))
		require.NoError(t, b.Dialogues().Create(ctx, storetest.Dialogue("lost-line", "gone-panel", 1, "", storetest.At(3))))
		require.NoError(t, b.Characters().Create(ctx, storetest.Character("lost-character", "gone-project", storetest.At(4))))
		require.NoError(t, b.Outfits().Create(ctx, storetest.Outfit("lost-outfit", "gone-project", storetest.At(5))))
		require.NoError(t, b.Locations().Create(ctx, storetest.Location("lost-location", "gone-project", storetest.At(6))))

		// Stale references to a character that never existed.
		require.NoError(t, b.Panels().Update(ctx, c.panel.ID, types.PanelPatch{
			CharacterIDs: &[]string{c.character.ID, "ghost"},
		}))
		require.NoError(t, b.Dialogues().Create(ctx, storetest.Dialogue("ghost-line", c.panel.ID, 2, "ghost", storetest.At(7))))

		report, err := s.CleanOrphanedData(ctx)
		require.NoError(t, err)
		assert.Equal(t, CleanupReport{
			Chapters:          1,
			Panels:            1,
			Dialogues:         1,
			Characters:        1,
			OutfitTemplates:   1,
			LocationTemplates: 1,
			PanelLinks:        1,
			Speakers:          1,
		}, report)

		scene, err := s.GetScene(ctx, "scene-of-lost")
		require.NoError(t, err)
		assert.Nil(t, scene, "removed with its orphaned chapter")

		panel, err := s.GetPanel(ctx, c.panel.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{c.character.ID}, panel.CharacterIDs)

		line, err := s.GetPanelDialogue(ctx, "ghost-line")
		require.NoError(t, err)
		require.NotNil(t, line)
		assert.Empty(t, line.SpeakerID)

		counts := counts(t, s)
		assert.Equal(t, 1, counts["chapters"])
		assert.Equal(t, 1, counts["characters"])

		again, err := s.CleanOrphanedData(ctx)
		require.NoError(t, err)
		assert.Zero(t, again.Total())
	})
}

func TestCleanOrphanedDataOnCleanGraph(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		seedProject(t, s, 2)
		before := counts(t, s)

		report, err := s.CleanOrphanedData(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Total())
		assert.Equal(t, before, counts(t, s))
	})
}
