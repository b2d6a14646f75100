package storyboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Appearances lists where a character is referenced.
type Appearances struct {
	CharacterID string   `json:"characterId"`
	PanelIDs    []string `json:"panelIds"`
	DialogueIDs []string `json:"dialogueIds"`
}

// AssignCharacterToPanel links a character to a panel. Assigning twice is
// a no-op. Returns ErrPanelNotFound or ErrCharacterNotFound when either
// side is missing.
func (s *Service) AssignCharacterToPanel(ctx context.Context, panelID, characterID string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	if err := checkRelationEnds(ctx, b, panelID, characterID); err != nil {
		return err
	}
	if err := b.Panels().AssignCharacter(ctx, panelID, characterID); err != nil {
		return fmt.Errorf("assigning character %s to panel %s: %w", characterID, panelID, err)
	}
	return nil
}

// RemoveCharacterFromPanel unlinks a character from a panel. Removing an
// absent link is a no-op; missing records are errors as for assign.
func (s *Service) RemoveCharacterFromPanel(ctx context.Context, panelID, characterID string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	if err := checkRelationEnds(ctx, b, panelID, characterID); err != nil {
		return err
	}
	if err := b.Panels().RemoveCharacter(ctx, panelID, characterID); err != nil {
		return fmt.Errorf("removing character %s from panel %s: %w", characterID, panelID, err)
	}
	return nil
}

// CharacterAppearances returns the panels and dialogue lines that reference
// the character. The result is derived by scanning; nothing is stored on
// the character itself.
func (s *Service) CharacterAppearances(ctx context.Context, characterID string) (Appearances, error) {
	b, err := s.store(ctx)
	if err != nil {
		return Appearances{}, err
	}
	refs, err := appearances(ctx, b, characterID)
	if err != nil {
		return Appearances{}, fmt.Errorf("finding appearances of %s: %w", characterID, err)
	}
	return refs, nil
}

func checkRelationEnds(ctx context.Context, b types.Backend, panelID, characterID string) error {
	if _, err := b.Panels().Get(ctx, panelID); errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("%w: %s", types.ErrPanelNotFound, panelID)
	} else if err != nil {
		return err
	}
	if _, err := b.Characters().Get(ctx, characterID); errors.Is(err, types.ErrNotFound) {
		return fmt.Errorf("%w: %s", types.ErrCharacterNotFound, characterID)
	} else if err != nil {
		return err
	}
	return nil
}

func appearances(ctx context.Context, b types.Backend, characterID string) (Appearances, error) {
	refs := Appearances{CharacterID: characterID, PanelIDs: []string{}, DialogueIDs: []string{}}
	if characterID == "" {
		return refs, nil
	}

	panels, err := b.Panels().ListAll(ctx)
	if err != nil {
		return refs, err
	}
	for _, p := range panels {
		if p.HasCharacter(characterID) {
			refs.PanelIDs = append(refs.PanelIDs, p.ID)
		}
	}

	dialogues, err := b.Dialogues().ListAll(ctx)
	if err != nil {
		return refs, err
	}
	for _, d := range dialogues {
		if d.SpeakerID == characterID {
			refs.DialogueIDs = append(refs.DialogueIDs, d.ID)
		}
	}
	return refs, nil
}
