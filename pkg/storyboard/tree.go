package storyboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// treeConcurrency bounds how many chapters load at once.
const treeConcurrency = 4

// ProjectTree is a project with its whole subtree loaded. The embedded
// project's fields serialize at the top level.
type ProjectTree struct {
	*types.Project
	Chapters          []*ChapterTree            `json:"chapters"`
	Characters        []*types.Character        `json:"characters"`
	OutfitTemplates   []*types.OutfitTemplate   `json:"outfitTemplates"`
	LocationTemplates []*types.LocationTemplate `json:"locationTemplates"`
}

// ChapterTree is a chapter with its scenes in listing order.
type ChapterTree struct {
	*types.Chapter
	Scenes []*SceneTree `json:"scenes"`
}

// SceneTree is a scene with its panels in listing order.
type SceneTree struct {
	*types.Scene
	Panels []*PanelTree `json:"panels"`
}

// PanelTree is a panel with its dialogue lines in listing order.
type PanelTree struct {
	*types.Panel
	Dialogues []*types.Dialogue `json:"dialogues"`
}

// GetProjectWithRelations loads a project with its chapters, scenes,
// panels and dialogues, plus its characters and templates, each level in
// listing order. Returns nil and no error when the project does not exist.
func (s *Service) GetProjectWithRelations(ctx context.Context, id string) (*ProjectTree, error) {
	b, err := s.store(ctx)
	if err != nil {
		return nil, err
	}
	project, err := found(b.Projects().Get(ctx, id))
	if err != nil || project == nil {
		return nil, err
	}

	tree := &ProjectTree{Project: project}
	if tree.Characters, err = b.Characters().ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("loading characters of %s: %w", id, err)
	}
	if tree.OutfitTemplates, err = b.Outfits().ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("loading outfit templates of %s: %w", id, err)
	}
	if tree.LocationTemplates, err = b.Locations().ListByParent(ctx, id); err != nil {
		return nil, fmt.Errorf("loading location templates of %s: %w", id, err)
	}

	chapters, err := b.Chapters().ListByParent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading chapters of %s: %w", id, err)
	}
	tree.Chapters = make([]*ChapterTree, len(chapters))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(treeConcurrency)
	for i, chapter := range chapters {
		g.Go(func() error {
			ct, err := loadChapter(gctx, b, chapter)
			if err != nil {
				return err
			}
			tree.Chapters[i] = ct
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tree, nil
}

func loadChapter(ctx context.Context, b types.Backend, chapter *types.Chapter) (*ChapterTree, error) {
	scenes, err := b.Scenes().ListByParent(ctx, chapter.ID)
	if err != nil {
		return nil, fmt.Errorf("loading scenes of %s: %w", chapter.ID, err)
	}
	ct := &ChapterTree{Chapter: chapter, Scenes: make([]*SceneTree, 0, len(scenes))}
	for _, scene := range scenes {
		panels, err := b.Panels().ListByParent(ctx, scene.ID)
		if err != nil {
			return nil, fmt.Errorf("loading panels of %s: %w", scene.ID, err)
		}
		st := &SceneTree{Scene: scene, Panels: make([]*PanelTree, 0, len(panels))}
		for _, panel := range panels {
			dialogues, err := b.Dialogues().ListByParent(ctx, panel.ID)
			if err != nil {
				return nil, fmt.Errorf("loading dialogues of %s: %w", panel.ID, err)
			}
			st.Panels = append(st.Panels, &PanelTree{Panel: panel, Dialogues: dialogues})
		}
		ct.Scenes = append(ct.Scenes, st)
	}
	return ct, nil
}
