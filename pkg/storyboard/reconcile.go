package storyboard

import (
	"context"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// CleanupReport counts what one CleanOrphanedData run removed or repaired.
// Row counts cover the orphans found directly; their descendants are
// removed by the cascade and not counted again.
type CleanupReport struct {
	Chapters          int `json:"chapters"`
	Scenes            int `json:"scenes"`
	Panels            int `json:"panels"`
	Dialogues         int `json:"dialogues"`
	Characters        int `json:"characters"`
	OutfitTemplates   int `json:"outfitTemplates"`
	LocationTemplates int `json:"locationTemplates"`
	PanelLinks        int `json:"panelLinks"`
	Speakers          int `json:"speakers"`
}

// Total is the number of repairs made.
func (r CleanupReport) Total() int {
	return r.Chapters + r.Scenes + r.Panels + r.Dialogues + r.Characters +
		r.OutfitTemplates + r.LocationTemplates + r.PanelLinks + r.Speakers
}

// CleanOrphanedData removes rows whose parent no longer exists and drops
// references to deleted characters. Each pass recomputes the live parent
// set after the previous pass, since deleting an orphan may remove more
// rows. Orphans are deleted through the cascade path. A second run right
// after a successful one reports nothing.
func (s *Service) CleanOrphanedData(ctx context.Context) (CleanupReport, error) {
	var report CleanupReport
	b, err := s.store(ctx)
	if err != nil {
		return report, err
	}

	projects, err := liveIDs[types.Project, types.ProjectPatch](ctx, b.Projects(), func(p *types.Project) string { return p.ID })
	if err != nil {
		return report, fmt.Errorf("cleaning orphans: %w", err)
	}

	chapters, err := b.Chapters().ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cleaning orphaned chapters: %w", err)
	}
	for _, c := range chapters {
		if _, ok := projects[c.ProjectID]; ok {
			continue
		}
		if err := s.deleteChapter(ctx, b, c.ID); err != nil {
			return report, err
		}
		report.Chapters++
	}

	liveChapters, err := liveIDs[types.Chapter, types.ChapterPatch](ctx, b.Chapters(), func(c *types.Chapter) string { return c.ID })
	if err != nil {
		return report, fmt.Errorf("cleaning orphans: %w", err)
	}
	scenes, err := b.Scenes().ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cleaning orphaned scenes: %w", err)
	}
	for _, sc := range scenes {
		if _, ok := liveChapters[sc.ChapterID]; ok {
			continue
		}
		if err := s.deleteScene(ctx, b, sc.ID); err != nil {
			return report, err
		}
		report.Scenes++
	}

	liveScenes, err := liveIDs[types.Scene, types.ScenePatch](ctx, b.Scenes(), func(sc *types.Scene) string { return sc.ID })
	if err != nil {
		return report, fmt.Errorf("cleaning orphans: %w", err)
	}
	panels, err := b.Panels().ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cleaning orphaned panels: %w", err)
	}
	for _, p := range panels {
		if _, ok := liveScenes[p.SceneID]; ok {
			continue
		}
		if err := s.deletePanel(ctx, b, p.ID); err != nil {
			return report, err
		}
		report.Panels++
	}

	livePanels, err := liveIDs[types.Panel, types.PanelPatch](ctx, b.Panels(), func(p *types.Panel) string { return p.ID })
	if err != nil {
		return report, fmt.Errorf("cleaning orphans: %w", err)
	}
	dialogues, err := b.Dialogues().ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cleaning orphaned dialogues: %w", err)
	}
	for _, d := range dialogues {
		if _, ok := livePanels[d.PanelID]; ok {
			continue
		}
		if err := b.Dialogues().Delete(ctx, d.ID); err != nil {
			return report, fmt.Errorf("deleting dialogue %s: %w", d.ID, err)
		}
		report.Dialogues++
	}

	characters, err := b.Characters().ListAll(ctx)
	if err != nil {
		return report, fmt.Errorf("cleaning orphaned characters: %w", err)
	}
	for _, c := range characters {
		if _, ok := projects[c.ProjectID]; ok {
			continue
		}
		if err := s.deleteCharacter(ctx, b, c.ID); err != nil {
			return report, err
		}
		report.Characters++
	}

	if report.OutfitTemplates, err = cleanTemplates[types.OutfitTemplate, types.OutfitTemplatePatch](ctx, b.Outfits(), projects,
		func(o *types.OutfitTemplate) (string, string) { return o.ID, o.ProjectID }); err != nil {
		return report, fmt.Errorf("cleaning orphaned outfit templates: %w", err)
	}
	if report.LocationTemplates, err = cleanTemplates[types.LocationTemplate, types.LocationTemplatePatch](ctx, b.Locations(), projects,
		func(l *types.LocationTemplate) (string, string) { return l.ID, l.ProjectID }); err != nil {
		return report, fmt.Errorf("cleaning orphaned location templates: %w", err)
	}

	if err := s.cleanStaleLinks(ctx, b, &report); err != nil {
		return report, err
	}

	if report.Total() > 0 {
		s.log.Info("cleaned orphaned data",
			"chapters", report.Chapters, "scenes", report.Scenes, "panels", report.Panels,
			"dialogues", report.Dialogues, "characters", report.Characters,
			"outfit_templates", report.OutfitTemplates, "location_templates", report.LocationTemplates,
			"panel_links", report.PanelLinks, "speakers", report.Speakers)
	} else {
		s.log.Debug("no orphaned data")
	}
	return report, nil
}

// cleanStaleLinks drops panel members and dialogue speakers that name a
// character which no longer exists.
func (s *Service) cleanStaleLinks(ctx context.Context, b types.Backend, report *CleanupReport) error {
	live, err := liveIDs[types.Character, types.CharacterPatch](ctx, b.Characters(), func(c *types.Character) string { return c.ID })
	if err != nil {
		return fmt.Errorf("cleaning stale links: %w", err)
	}

	panels, err := b.Panels().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("cleaning stale panel links: %w", err)
	}
	for _, p := range panels {
		kept := slices.DeleteFunc(slices.Clone(p.CharacterIDs), func(id string) bool {
			_, ok := live[id]
			return !ok
		})
		if len(kept) == len(p.CharacterIDs) {
			continue
		}
		patch := types.PanelPatch{CharacterIDs: &kept, UpdatedAt: s.stamp()}
		if err := b.Panels().Update(ctx, p.ID, patch); err != nil {
			return fmt.Errorf("cleaning stale links of panel %s: %w", p.ID, err)
		}
		report.PanelLinks += len(p.CharacterIDs) - len(kept)
	}

	dialogues, err := b.Dialogues().ListAll(ctx)
	if err != nil {
		return fmt.Errorf("cleaning stale speakers: %w", err)
	}
	for _, d := range dialogues {
		if d.SpeakerID == "" {
			continue
		}
		if _, ok := live[d.SpeakerID]; ok {
			continue
		}
		patch := types.DialoguePatch{SpeakerID: types.Ptr(""), UpdatedAt: s.stamp()}
		if err := b.Dialogues().Update(ctx, d.ID, patch); err != nil {
			return fmt.Errorf("clearing stale speaker of dialogue %s: %w", d.ID, err)
		}
		report.Speakers++
	}
	return nil
}

func cleanTemplates[E any, P any](ctx context.Context, t types.ChildTable[E, P], projects map[string]struct{}, ids func(*E) (string, string)) (int, error) {
	rows, err := t.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, row := range rows {
		id, projectID := ids(row)
		if _, ok := projects[projectID]; ok {
			continue
		}
		if err := t.Delete(ctx, id); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// liveIDs scans a table into an id set.
func liveIDs[E any, P any](ctx context.Context, t types.Table[E, P], id func(*E) string) (map[string]struct{}, error) {
	rows, err := t.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		set[id(row)] = struct{}{}
	}
	return set, nil
}
