package sqlite

import (
	"context"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// charactersTable stores characters. Deleting one drops its panel links
// and nulls dialogue speakers through the foreign keys.
type charactersTable struct {
	rowTable[types.Character]
}

var _ types.ChildTable[types.Character, types.CharacterPatch] = (*charactersTable)(nil)

func characterRows(b *Backend) rowTable[types.Character] {
	return rowTable[types.Character]{
		backend:   b,
		entity:    "character",
		table:     "characters",
		idCol:     "character_id",
		parentCol: "project_id",
		orderBy:   "created_at, character_id",
		columns: []string{
			"character_id", "project_id", "name", "role", "description", "traits", "attributes",
			"reference_images", "created_at", "updated_at",
		},
		scan: scanCharacter,
	}
}

func scanCharacter(s scanner) (*types.Character, error) {
	var (
		c                                 types.Character
		traits, attrs, refs, created, upd string
	)
	if err := s.Scan(&c.ID, &c.ProjectID, &c.Name, &c.Role, &c.Description, &traits, &attrs,
		&refs, &created, &upd); err != nil {
		return nil, err
	}
	var d decoder
	d.json("traits", traits, &c.Traits)
	d.json("attributes", attrs, &c.Attributes)
	d.json("reference_images", refs, &c.ReferenceImages)
	d.time("created_at", created, &c.CreatedAt)
	d.time("updated_at", upd, &c.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return c.Clone(), nil
}

// Create inserts c as given.
func (t *charactersTable) Create(ctx context.Context, c *types.Character) error {
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
	f.set("character_id", c.ID)
	f.set("project_id", c.ProjectID)
	f.set("name", c.Name)
	f.set("role", c.Role)
	f.set("description", c.Description)
	f.setJSON("traits", c.Traits)
	f.setJSON("attributes", c.Attributes)
	f.setJSON("reference_images", c.ReferenceImages)
	f.setTime("created_at", c.CreatedAt)
	f.setTime("updated_at", c.UpdatedAt)
	return t.insert(ctx, db, c.ID, &f)
}

// Update writes only the supplied fields.
func (t *charactersTable) Update(ctx context.Context, id string, p types.CharacterPatch) error {
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
	if p.Name != nil {
		f.set("name", *p.Name)
	}
	if p.Role != nil {
		f.set("role", *p.Role)
	}
	if p.Description != nil {
		f.set("description", *p.Description)
	}
	if p.Traits != nil {
		f.setJSON("traits", *p.Traits)
	}
	if p.Attributes != nil {
		f.setJSON("attributes", *p.Attributes)
	}
	if p.ReferenceImages != nil {
		f.setJSON("reference_images", *p.ReferenceImages)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}
