package storyboard

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// CreateProject stores a copy of in under a new id with both timestamps set
// to now, and returns the stored record. Any id or timestamps in are
// ignored.
func (s *Service) CreateProject(ctx context.Context, in *types.Project) (*types.Project, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Projects().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return rec, nil
}

// CreateChapter stores a chapter. The parent project is not checked.
func (s *Service) CreateChapter(ctx context.Context, in *types.Chapter) (*types.Chapter, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Chapters().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating chapter: %w", err)
	}
	return rec, nil
}

// CreateScene stores a scene.
func (s *Service) CreateScene(ctx context.Context, in *types.Scene) (*types.Scene, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Scenes().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating scene: %w", err)
	}
	return rec, nil
}

// CreatePanel stores a panel. CharacterIDs is de-duplicated.
func (s *Service) CreatePanel(ctx context.Context, in *types.Panel) (*types.Panel, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	rec.CharacterIDs = types.UniqueIDs(rec.CharacterIDs)
	if err := b.Panels().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating panel: %w", err)
	}
	return rec, nil
}

// CreatePanelDialogue stores a dialogue line. An empty SpeakerID means
// narration or an unattributed line.
func (s *Service) CreatePanelDialogue(ctx context.Context, in *types.Dialogue) (*types.Dialogue, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Dialogues().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating dialogue: %w", err)
	}
	return rec, nil
}

// CreateCharacter stores a character.
func (s *Service) CreateCharacter(ctx context.Context, in *types.Character) (*types.Character, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Characters().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating character: %w", err)
	}
	return rec, nil
}

func (s *Service) CreateOutfitTemplate(ctx context.Context, in *types.OutfitTemplate) (*types.OutfitTemplate, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Outfits().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating outfit template: %w", err)
	}
	return rec, nil
}

func (s *Service) CreateLocationTemplate(ctx context.Context, in *types.LocationTemplate) (*types.LocationTemplate, error) {
	if in == nil {
		return nil, types.ErrInvalidData
	}
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	id, now, err := s.identity()
	if err != nil {
		return nil, err
	}
	rec := in.Clone()
	rec.ID, rec.CreatedAt, rec.UpdatedAt = id, now, now
	if err := b.Locations().Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating location template: %w", err)
	}
	return rec, nil
}
