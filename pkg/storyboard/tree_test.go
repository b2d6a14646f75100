package storyboard

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

func TestProjectWithRelations(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		project := seedProject(t, s, 6)

		tree, err := s.GetProjectWithRelations(ctx, project.ID)
		require.NoError(t, err)
		require.NotNil(t, tree)
		assert.Equal(t, project.ID, tree.ID)
		require.Len(t, tree.Chapters, 6)
		for i, ch := range tree.Chapters {
			assert.Equal(t, i+1, ch.ChapterNumber, "chapter order preserved")
			require.Len(t, ch.Scenes, 2)
			for _, sc := range ch.Scenes {
				require.Len(t, sc.Panels, 2)
				for _, pn := range sc.Panels {
					assert.Len(t, pn.Dialogues, 2)
					assert.Len(t, pn.CharacterIDs, 1)
				}
			}
		}
		assert.Len(t, tree.Characters, 1)
		assert.Len(t, tree.OutfitTemplates, 1)
		assert.Len(t, tree.LocationTemplates, 1)

		missing, err := s.GetProjectWithRelations(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestProjectTreeJSONIsFlat(t *testing.T) {
	tree := &ProjectTree{
		Project:  &types.Project{ID: "p1", Title: "T"},
		Chapters: []*ChapterTree{{Chapter: &types.Chapter{ID: "c1", ProjectID: "p1"}, Scenes: []*SceneTree{}}},
	}
	raw, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "p1", decoded["id"])
	chapters := decoded["chapters"].([]any)
	require.Len(t, chapters, 1)
	assert.Equal(t, "p1", chapters[0].(map[string]any)["mangaProjectId"])
}
