package storyboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// The Delete methods cascade top-down and depth-first: every child of a
// record is deleted, in listing order, before the record itself. The first
// error aborts the remainder; a partly deleted subtree is repaired by
// CleanOrphanedData. A missing id is a no-op.

// DeleteProject deletes the project's chapters, characters and templates,
// then the project.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	return s.deleteProject(ctx, b, id)
}

// DeleteChapter deletes the chapter's scenes, then the chapter. Characters
// belong to the project and are left alone.
func (s *Service) DeleteChapter(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	return s.deleteChapter(ctx, b, id)
}

// DeleteScene deletes a scene, its panels and their dialogues.
func (s *Service) DeleteScene(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	return s.deleteScene(ctx, b, id)
}

// DeletePanel deletes a panel and its dialogues.
func (s *Service) DeletePanel(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	return s.deletePanel(ctx, b, id)
}

// DeletePanelDialogue deletes one dialogue line. Dialogues own nothing.
func (s *Service) DeletePanelDialogue(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	if err := b.Dialogues().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting dialogue %s: %w", id, err)
	}
	return nil
}

// DeleteCharacter unlinks the character from every panel and dialogue that
// names it, then deletes it. Panels and dialogues survive.
func (s *Service) DeleteCharacter(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	return s.deleteCharacter(ctx, b, id)
}

// DeleteOutfitTemplate deletes one outfit template.
func (s *Service) DeleteOutfitTemplate(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	if err := b.Outfits().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting outfit template %s: %w", id, err)
	}
	return nil
}

// DeleteLocationTemplate deletes one location template.
func (s *Service) DeleteLocationTemplate(ctx context.Context, id string) error {
	b, err := s.store(ctx)
	if err != nil {
		return err
	}
	if err := b.Locations().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting location template %s: %w", id, err)
	}
	return nil
}

func (s *Service) deleteProject(ctx context.Context, b types.Backend, id string) error {
	chapters, err := b.Chapters().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	for _, c := range chapters {
		if err := s.deleteChapter(ctx, b, c.ID); err != nil {
			return err
		}
	}

	characters, err := b.Characters().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	for _, c := range characters {
		if err := s.deleteCharacter(ctx, b, c.ID); err != nil {
			return err
		}
	}

	outfits, err := b.Outfits().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	for _, o := range outfits {
		if err := b.Outfits().Delete(ctx, o.ID); err != nil {
			return fmt.Errorf("deleting outfit template %s: %w", o.ID, err)
		}
	}

	locations, err := b.Locations().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	for _, l := range locations {
		if err := b.Locations().Delete(ctx, l.ID); err != nil {
			return fmt.Errorf("deleting location template %s: %w", l.ID, err)
		}
	}

	if err := b.Projects().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	s.log.Debug("deleted project", "id", id, "chapters", len(chapters), "characters", len(characters))
	return nil
}

func (s *Service) deleteChapter(ctx context.Context, b types.Backend, id string) error {
	scenes, err := b.Scenes().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting chapter %s: %w", id, err)
	}
	for _, sc := range scenes {
		if err := s.deleteScene(ctx, b, sc.ID); err != nil {
			return err
		}
	}
	if err := b.Chapters().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting chapter %s: %w", id, err)
	}
	s.log.Debug("deleted chapter", "id", id, "scenes", len(scenes))
	return nil
}

func (s *Service) deleteScene(ctx context.Context, b types.Backend, id string) error {
	panels, err := b.Panels().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting scene %s: %w", id, err)
	}
	for _, p := range panels {
		if err := s.deletePanel(ctx, b, p.ID); err != nil {
			return err
		}
	}
	if err := b.Scenes().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting scene %s: %w", id, err)
	}
	s.log.Debug("deleted scene", "id", id, "panels", len(panels))
	return nil
}

func (s *Service) deletePanel(ctx context.Context, b types.Backend, id string) error {
	dialogues, err := b.Dialogues().ListByParent(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting panel %s: %w", id, err)
	}
	for _, d := range dialogues {
		if err := b.Dialogues().Delete(ctx, d.ID); err != nil {
			return fmt.Errorf("deleting dialogue %s: %w", d.ID, err)
		}
	}
	if err := b.Panels().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting panel %s: %w", id, err)
	}
	s.log.Debug("deleted panel", "id", id, "dialogues", len(dialogues))
	return nil
}

// deleteCharacter scans every panel and dialogue; the back-references are
// derived, not indexed.
func (s *Service) deleteCharacter(ctx context.Context, b types.Backend, id string) error {
	if _, err := b.Characters().Get(ctx, id); errors.Is(err, types.ErrNotFound) {
		return nil
	} else if err != nil {
		return fmt.Errorf("deleting character %s: %w", id, err)
	}
	refs, err := appearances(ctx, b, id)
	if err != nil {
		return fmt.Errorf("deleting character %s: %w", id, err)
	}
	for _, panelID := range refs.PanelIDs {
		if err := b.Panels().RemoveCharacter(ctx, panelID, id); err != nil {
			return fmt.Errorf("deleting character %s: unlinking panel %s: %w", id, panelID, err)
		}
	}
	for _, dialogueID := range refs.DialogueIDs {
		patch := types.DialoguePatch{SpeakerID: types.Ptr(""), UpdatedAt: s.stamp()}
		if err := b.Dialogues().Update(ctx, dialogueID, patch); err != nil {
			return fmt.Errorf("deleting character %s: clearing speaker of %s: %w", id, dialogueID, err)
		}
	}
	if err := b.Characters().Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting character %s: %w", id, err)
	}
	s.log.Debug("deleted character", "id", id, "panels", len(refs.PanelIDs), "dialogues", len(refs.DialogueIDs))
	return nil
}
