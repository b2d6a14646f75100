package sqlite

import (
	"context"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

type outfitsTable struct {
	rowTable[types.OutfitTemplate]
}

var _ types.ChildTable[types.OutfitTemplate, types.OutfitTemplatePatch] = (*outfitsTable)(nil)

func outfitRows(b *Backend) rowTable[types.OutfitTemplate] {
	return rowTable[types.OutfitTemplate]{
		backend:   b,
		entity:    "outfit template",
		table:     "outfit_templates",
		idCol:     "outfit_id",
		parentCol: "project_id",
		orderBy:   "created_at, outfit_id",
		columns: []string{
			"outfit_id", "project_id", "name", "description", "category", "components", "tags",
			"created_at", "updated_at",
		},
		scan: scanOutfit,
	}
}

func scanOutfit(s scanner) (*types.OutfitTemplate, error) {
	var (
		o                              types.OutfitTemplate
		components, tags, created, upd string
	)
	if err := s.Scan(&o.ID, &o.ProjectID, &o.Name, &o.Description, &o.Category, &components,
		&tags, &created, &upd); err != nil {
		return nil, err
	}
	var d decoder
	d.json("components", components, &o.Components)
	d.json("tags", tags, &o.Tags)
	d.time("created_at", created, &o.CreatedAt)
	d.time("updated_at", upd, &o.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return o.Clone(), nil
}

// Create inserts o as given.
func (t *outfitsTable) Create(ctx context.Context, o *types.OutfitTemplate) error {
	if o == nil {
		return types.ErrInvalidData
	}
	if o.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("outfit_id", o.ID)
	f.set("project_id", o.ProjectID)
	f.set("name", o.Name)
	f.set("description", o.Description)
	f.set("category", o.Category)
	f.setJSON("components", o.Components)
	f.setJSON("tags", o.Tags)
	f.setTime("created_at", o.CreatedAt)
	f.setTime("updated_at", o.UpdatedAt)
	return t.insert(ctx, db, o.ID, &f)
}

// Update writes only the supplied fields.
func (t *outfitsTable) Update(ctx context.Context, id string, p types.OutfitTemplatePatch) error {
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
	if p.Description != nil {
		f.set("description", *p.Description)
	}
	if p.Category != nil {
		f.set("category", *p.Category)
	}
	if p.Components != nil {
		f.setJSON("components", *p.Components)
	}
	if p.Tags != nil {
		f.setJSON("tags", *p.Tags)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}

type locationsTable struct {
	rowTable[types.LocationTemplate]
}

var _ types.ChildTable[types.LocationTemplate, types.LocationTemplatePatch] = (*locationsTable)(nil)

func locationRows(b *Backend) rowTable[types.LocationTemplate] {
	return rowTable[types.LocationTemplate]{
		backend:   b,
		entity:    "location template",
		table:     "location_templates",
		idCol:     "location_id",
		parentCol: "project_id",
		orderBy:   "created_at, location_id",
		columns: []string{
			"location_id", "project_id", "name", "description", "category", "lighting", "props",
			"tags", "created_at", "updated_at",
		},
		scan: scanLocation,
	}
}

func scanLocation(s scanner) (*types.LocationTemplate, error) {
	var (
		l                         types.LocationTemplate
		props, tags, created, upd string
	)
	if err := s.Scan(&l.ID, &l.ProjectID, &l.Name, &l.Description, &l.Category, &l.Lighting,
		&props, &tags, &created, &upd); err != nil {
		return nil, err
	}
	var d decoder
	d.json("props", props, &l.Props)
	d.json("tags", tags, &l.Tags)
	d.time("created_at", created, &l.CreatedAt)
	d.time("updated_at", upd, &l.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return l.Clone(), nil
}

// Create inserts l as given.
func (t *locationsTable) Create(ctx context.Context, l *types.LocationTemplate) error {
	if l == nil {
		return types.ErrInvalidData
	}
	if l.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("location_id", l.ID)
	f.set("project_id", l.ProjectID)
	f.set("name", l.Name)
	f.set("description", l.Description)
	f.set("category", l.Category)
	f.set("lighting", l.Lighting)
	f.setJSON("props", l.Props)
	f.setJSON("tags", l.Tags)
	f.setTime("created_at", l.CreatedAt)
	f.setTime("updated_at", l.UpdatedAt)
	return t.insert(ctx, db, l.ID, &f)
}

// Update writes only the supplied fields.
func (t *locationsTable) Update(ctx context.Context, id string, p types.LocationTemplatePatch) error {
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
	if p.Description != nil {
		f.set("description", *p.Description)
	}
	if p.Category != nil {
		f.set("category", *p.Category)
	}
	if p.Lighting != nil {
		f.set("lighting", *p.Lighting)
	}
	if p.Props != nil {
		f.setJSON("props", *p.Props)
	}
	if p.Tags != nil {
		f.setJSON("tags", *p.Tags)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}
