package storyboard

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// UpdateProject merges the supplied fields and refreshes UpdatedAt. A missing
// id or an empty patch is a no-op.
func (s *Service) UpdateProject(ctx context.Context, id string, patch types.ProjectPatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Projects().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating project %s: %w", id, err)
	}
	return nil
}

// UpdateChapter may move the chapter to another project via ProjectID.
func (s *Service) UpdateChapter(ctx context.Context, id string, patch types.ChapterPatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Chapters().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating chapter %s: %w", id, err)
	}
	return nil
}

func (s *Service) UpdateScene(ctx context.Context, id string, patch types.ScenePatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Scenes().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating scene %s: %w", id, err)
	}
	return nil
}

// UpdatePanel replaces the member set when CharacterIDs is supplied.
func (s *Service) UpdatePanel(ctx context.Context, id string, patch types.PanelPatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Panels().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating panel %s: %w", id, err)
	}
	return nil
}

// UpdatePanelDialogue clears the speaker when SpeakerID points at "".
func (s *Service) UpdatePanelDialogue(ctx context.Context, id string, patch types.DialoguePatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Dialogues().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating dialogue %s: %w", id, err)
	}
	return nil
}

func (s *Service) UpdateCharacter(ctx context.Context, id string, patch types.CharacterPatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Characters().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating character %s: %w", id, err)
	}
	return nil
}

func (s *Service) UpdateOutfitTemplate(ctx context.Context, id string, patch types.OutfitTemplatePatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Outfits().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating outfit template %s: %w", id, err)
	}
	return nil
}

func (s *Service) UpdateLocationTemplate(ctx context.Context, id string, patch types.LocationTemplatePatch) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	patch.UpdatedAt = s.stamp()
	if err := b.Locations().Update(ctx, id, patch); err != nil {
		return fmt.Errorf("updating location template %s: %w", id, err)
	}
	return nil
}
