package storyboard

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// GetProject returns the record, or nil and no error when it does not exist.
func (s *Service) GetProject(ctx context.Context, id string) (*types.Project, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Projects().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetChapter(ctx context.Context, id string) (*types.Chapter, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Chapters().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting chapter %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetScene(ctx context.Context, id string) (*types.Scene, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Scenes().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting scene %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetPanel(ctx context.Context, id string) (*types.Panel, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Panels().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting panel %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetPanelDialogue(ctx context.Context, id string) (*types.Dialogue, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Dialogues().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting dialogue %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetCharacter(ctx context.Context, id string) (*types.Character, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Characters().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting character %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetOutfitTemplate(ctx context.Context, id string) (*types.OutfitTemplate, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Outfits().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting outfit template %s: %w", id, err)
	}
	return rec, nil
}

func (s *Service) GetLocationTemplate(ctx context.Context, id string) (*types.LocationTemplate, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := found(b.Locations().Get(ctx, id))
	if err != nil {
		return nil, fmt.Errorf("getting location template %s: %w", id, err)
	}
	return rec, nil
}

// The ForContext readers return the bare row without following relations,
// for callers that only need a leaf snapshot.

func (s *Service) GetProjectForContext(ctx context.Context, id string) (*types.Project, error) {
	return s.GetProject(ctx, id)
}

func (s *Service) GetChapterForContext(ctx context.Context, id string) (*types.Chapter, error) {
	return s.GetChapter(ctx, id)
}

func (s *Service) GetSceneForContext(ctx context.Context, id string) (*types.Scene, error) {
	return s.GetScene(ctx, id)
}

func (s *Service) GetPanelForContext(ctx context.Context, id string) (*types.Panel, error) {
	return s.GetPanel(ctx, id)
}

func (s *Service) GetPanelDialogueForContext(ctx context.Context, id string) (*types.Dialogue, error) {
	return s.GetPanelDialogue(ctx, id)
}

func (s *Service) GetCharacterForContext(ctx context.Context, id string) (*types.Character, error) {
	return s.GetCharacter(ctx, id)
}

func (s *Service) GetOutfitTemplateForContext(ctx context.Context, id string) (*types.OutfitTemplate, error) {
	return s.GetOutfitTemplate(ctx, id)
}

func (s *Service) GetLocationTemplateForContext(ctx context.Context, id string) (*types.LocationTemplate, error) {
	return s.GetLocationTemplate(ctx, id)
}

// ListProjects returns every project, oldest first.
func (s *Service) ListProjects(ctx context.Context) ([]*types.Project, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := b.Projects().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

// ListChapters returns a project's chapters by chapter number.
func (s *Service) ListChapters(ctx context.Context, projectID string) ([]*types.Chapter, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Chapters().ListByParent(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing chapters of %s: %w", projectID, err)
	}
	return rows, nil
}

// ListScenes returns a chapter's scenes in reading order.
func (s *Service) ListScenes(ctx context.Context, chapterID string) ([]*types.Scene, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Scenes().ListByParent(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("listing scenes of %s: %w", chapterID, err)
	}
	return rows, nil
}

func (s *Service) ListPanels(ctx context.Context, sceneID string) ([]*types.Panel, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Panels().ListByParent(ctx, sceneID)
	if err != nil {
		return nil, fmt.Errorf("listing panels of %s: %w", sceneID, err)
	}
	return rows, nil
}

func (s *Service) ListPanelDialogues(ctx context.Context, panelID string) ([]*types.Dialogue, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Dialogues().ListByParent(ctx, panelID)
	if err != nil {
		return nil, fmt.Errorf("listing dialogues of %s: %w", panelID, err)
	}
	return rows, nil
}

// ListCharacters returns a project's cast, oldest first.
func (s *Service) ListCharacters(ctx context.Context, projectID string) ([]*types.Character, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Characters().ListByParent(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing characters of %s: %w", projectID, err)
	}
	return rows, nil
}

func (s *Service) ListOutfitTemplates(ctx context.Context, projectID string) ([]*types.OutfitTemplate, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Outfits().ListByParent(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing outfit templates of %s: %w", projectID, err)
	}
	return rows, nil
}

func (s *Service) ListLocationTemplates(ctx context.Context, projectID string) ([]*types.LocationTemplate, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := b.Locations().ListByParent(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing location templates of %s: %w", projectID, err)
	}
	return rows, nil
}
