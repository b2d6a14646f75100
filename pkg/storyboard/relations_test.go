package storyboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

func TestAssignIsIdempotent(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)
		other, err := s.CreateCharacter(ctx, &types.Character{ProjectID: c.project.ID, Name: "CH2"})
		require.NoError(t, err)

		require.NoError(t, s.AssignCharacterToPanel(ctx, c.panel.ID, c.character.ID))
		once, err := s.GetPanel(ctx, c.panel.ID)
		require.NoError(t, err)
		require.NoError(t, s.AssignCharacterToPanel(ctx, c.panel.ID, c.character.ID))
		twice, err := s.GetPanel(ctx, c.panel.ID)
		require.NoError(t, err)
		assert.Equal(t, once.CharacterIDs, twice.CharacterIDs)

		require.NoError(t, s.AssignCharacterToPanel(ctx, c.panel.ID, other.ID))
		require.NoError(t, s.RemoveCharacterFromPanel(ctx, c.panel.ID, c.character.ID))
		require.NoError(t, s.RemoveCharacterFromPanel(ctx, c.panel.ID, c.character.ID), "absent link")

		panel, err := s.GetPanel(ctx, c.panel.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{other.ID}, panel.CharacterIDs)
	})
}

func TestRelationNotFound(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)

		err := s.AssignCharacterToPanel(ctx, "missing", c.character.ID)
		assert.ErrorIs(t, err, types.ErrPanelNotFound)
		assert.ErrorIs(t, err, types.ErrNotFound)

		err = s.AssignCharacterToPanel(ctx, c.panel.ID, "missing")
		assert.ErrorIs(t, err, types.ErrCharacterNotFound)

		err = s.RemoveCharacterFromPanel(ctx, "missing", "missing")
		assert.ErrorIs(t, err, types.ErrPanelNotFound, "panel is checked first")
	})
}

func TestCharacterAppearances(t *testing.T) {
	eachBackend(t, strictBackends, func(t *testing.T, s *Service) {
		ctx := context.Background()
		c := buildChain(t, s)
		require.NoError(t, s.AssignCharacterToPanel(ctx, c.panel.ID, c.character.ID))

		refs, err := s.CharacterAppearances(ctx, c.character.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{c.panel.ID}, refs.PanelIDs)
		assert.Equal(t, []string{c.dialogue.ID}, refs.DialogueIDs)

		refs, err = s.CharacterAppearances(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, refs.PanelIDs)
		assert.Empty(t, refs.DialogueIDs)
	})
}
