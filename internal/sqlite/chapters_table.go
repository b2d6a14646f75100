package sqlite

import (
	"context"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

type chaptersTable struct {
	rowTable[types.Chapter]
}

var _ types.ChildTable[types.Chapter, types.ChapterPatch] = (*chaptersTable)(nil)

func chapterRows(b *Backend) rowTable[types.Chapter] {
	return rowTable[types.Chapter]{
		backend:   b,
		entity:    "chapter",
		table:     "chapters",
		idCol:     "chapter_id",
		parentCol: "project_id",
		orderBy:   "chapter_number, created_at, chapter_id",
		columns: []string{
			"chapter_id", "project_id", "chapter_number", "title", "narrative", "purpose", "tone",
			"character_names", "is_published", "views", "created_at", "updated_at",
		},
		scan: scanChapter,
	}
}

func scanChapter(s scanner) (*types.Chapter, error) {
	var (
		c                   types.Chapter
		names, created, upd string
	)
	if err := s.Scan(&c.ID, &c.ProjectID, &c.ChapterNumber, &c.Title, &c.Narrative, &c.Purpose,
		&c.Tone, &names, &c.IsPublished, &c.Views, &created, &upd); err != nil {
		return nil, err
	}
	var d decoder
	d.json("character_names", names, &c.CharacterNames)
	d.time("created_at", created, &c.CreatedAt)
	d.time("updated_at", upd, &c.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return c.Clone(), nil
}

// Create inserts c as given.
func (t *chaptersTable) Create(ctx context.Context, c *types.Chapter) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if c.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("chapter_id", c.ID)
	f.set("project_id", c.ProjectID)
	f.set("chapter_number", c.ChapterNumber)
	f.set("title", c.Title)
	f.set("narrative", c.Narrative)
	f.set("purpose", c.Purpose)
	f.set("tone", c.Tone)
	f.setJSON("character_names", c.CharacterNames)
	f.set("is_published", c.IsPublished)
	f.set("views", c.Views)
	f.setTime("created_at", c.CreatedAt)
	f.setTime("updated_at", c.UpdatedAt)
	return t.insert(ctx, db, c.ID, &f)
}

// Update writes only the supplied fields.
func (t *chaptersTable) Update(ctx context.Context, id string, p types.ChapterPatch) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	if p.ProjectID != nil {
		f.set("project_id", *p.ProjectID)
	}
	if p.ChapterNumber != nil {
		f.set("chapter_number", *p.ChapterNumber)
	}
	if p.Title != nil {
		f.set("title", *p.Title)
	}
	if p.Narrative != nil {
		f.set("narrative", *p.Narrative)
	}
	if p.Purpose != nil {
		f.set("purpose", *p.Purpose)
	}
	if p.Tone != nil {
		f.set("tone", *p.Tone)
	}
	if p.CharacterNames != nil {
		f.setJSON("character_names", *p.CharacterNames)
	}
	if p.IsPublished != nil {
		f.set("is_published", *p.IsPublished)
	}
	if p.Views != nil {
		f.set("views", *p.Views)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}

