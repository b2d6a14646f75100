package sqlite

import (
	"context"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

type projectsTable struct {
	rowTable[types.Project]
}

var _ types.Table[types.Project, types.ProjectPatch] = (*projectsTable)(nil)

func projectRows(b *Backend) rowTable[types.Project] {
	return rowTable[types.Project]{
		backend: b,
		entity:  "project",
		table:   "projects",
		idCol:   "project_id",
		columns: []string{
			"project_id", "title", "description", "status", "world_details", "plot_structure",
			"tags", "genres", "views", "likes", "created_at", "updated_at",
		},
		scan: scanProject,
	}
}

func scanProject(s scanner) (*types.Project, error) {
	var (
		p                                              types.Project
		status, world, plot, tags, genres, created, up string
	)
	if err := s.Scan(&p.ID, &p.Title, &p.Description, &status, &world, &plot,
		&tags, &genres, &p.Views, &p.Likes, &created, &up); err != nil {
		return nil, err
	}
	p.Status = types.ProjectStatus(status)

	var d decoder
	d.json("world_details", world, &p.WorldDetails)
	d.json("plot_structure", plot, &p.PlotStructure)
	d.json("tags", tags, &p.Tags)
	d.json("genres", genres, &p.Genres)
	d.time("created_at", created, &p.CreatedAt)
	d.time("updated_at", up, &p.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return p.Clone(), nil
}

// Create inserts p as given.
func (t *projectsTable) Create(ctx context.Context, p *types.Project) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("project_id", p.ID)
	f.set("title", p.Title)
	f.set("description", p.Description)
	f.set("status", string(p.Status))
	f.setJSON("world_details", p.WorldDetails)
	f.setJSON("plot_structure", p.PlotStructure)
	f.setJSON("tags", p.Tags)
	f.setJSON("genres", p.Genres)
	f.set("views", p.Views)
	f.set("likes", p.Likes)
	f.setTime("created_at", p.CreatedAt)
	f.setTime("updated_at", p.UpdatedAt)
	return t.insert(ctx, db, p.ID, &f)
}

// Update writes only the supplied fields.
func (t *projectsTable) Update(ctx context.Context, id string, p types.ProjectPatch) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	if p.Title != nil {
		f.set("title", *p.Title)
	}
	if p.Description != nil {
		f.set("description", *p.Description)
	}
	if p.Status != nil {
		f.set("status", string(*p.Status))
	}
	if p.WorldDetails != nil {
		f.setJSON("world_details", *p.WorldDetails)
	}
	if p.PlotStructure != nil {
		f.setJSON("plot_structure", *p.PlotStructure)
	}
	if p.Tags != nil {
		f.setJSON("tags", *p.Tags)
	}
	if p.Genres != nil {
		f.setJSON("genres", *p.Genres)
	}
	if p.Views != nil {
		f.set("views", *p.Views)
	}
	if p.Likes != nil {
		f.set("likes", *p.Likes)
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}
