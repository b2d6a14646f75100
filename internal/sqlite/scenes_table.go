package sqlite

import (
	"context"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

type scenesTable struct {
	rowTable[types.Scene]
}

var _ types.ChildTable[types.Scene, types.ScenePatch] = (*scenesTable)(nil)

func sceneRows(b *Backend) rowTable[types.Scene] {
	return rowTable[types.Scene]{
		backend:   b,
		entity:    "scene",
		table:     "scenes",
		idCol:     "scene_id",
		parentCol: "chapter_id",
		orderBy:   "order_index, created_at, scene_id",
		columns: []string{
			"scene_id", "chapter_id", "order_index", "title", "description", "scene_context",
			"created_at", "updated_at",
		},
		scan: scanScene,
	}
}

func scanScene(s scanner) (*types.Scene, error) {
	var (
		sc                     types.Scene
		sceneCtx, created, upd string
	)
	if err := s.Scan(&sc.ID, &sc.ChapterID, &sc.Order, &sc.Title, &sc.Description, &sceneCtx,
		&created, &upd); err != nil {
		return nil, err
	}
	var d decoder
	d.json("scene_context", sceneCtx, &sc.Context)
	d.time("created_at", created, &sc.CreatedAt)
	d.time("updated_at", upd, &sc.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return sc.Clone(), nil
}

// Create inserts sc as given.
func (t *scenesTable) Create(ctx context.Context, sc *types.Scene) error {
	if sc == nil {
		return types.ErrInvalidData
	}
	if sc.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("scene_id", sc.ID)
	f.set("chapter_id", sc.ChapterID)
	f.set("order_index", sc.Order)
	f.set("title", sc.Title)
	f.set("description", sc.Description)
	f.setJSON("scene_context", sc.Context)
	f.setTime("created_at", sc.CreatedAt)
	f.setTime("updated_at", sc.UpdatedAt)
	return t.insert(ctx, db, sc.ID, &f)
}

// Update writes only the supplied fields.
func (t *scenesTable) Update(ctx context.Context, id string, p types.ScenePatch) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	if p.ChapterID != nil {
		f.set("chapter_id", *p.ChapterID)
	}
	if p.Order != nil {
		f.set("order_index", *p.Order)
	}
	if p.Title != nil {
		f.set("title", *p.Title)
	}
	if p.Description != nil {
		f.set("description", *p.Description)
	}
	if p.Context != nil {
		f.setJSON("scene_context", *p.Context)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}
