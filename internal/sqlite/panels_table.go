package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// panelsTable stores panels and the panel_characters junction. Reads
// hydrate Panel.CharacterIDs from the junction in insertion order.
type panelsTable struct {
	rowTable[types.Panel]
}

var _ types.PanelTable = (*panelsTable)(nil)

func panelRows(b *Backend) rowTable[types.Panel] {
	return rowTable[types.Panel]{
		backend:   b,
		entity:    "panel",
		table:     "panels",
		idCol:     "panel_id",
		parentCol: "scene_id",
		orderBy:   "order_index, created_at, panel_id",
		columns: []string{
			"panel_id", "scene_id", "order_index", "panel_context", "image_url",
			"created_at", "updated_at",
		},
		scan: scanPanel,
	}
}

func scanPanel(s scanner) (*types.Panel, error) {
	var (
		p                     types.Panel
		panelCtx, created, up string
	)
	if err := s.Scan(&p.ID, &p.SceneID, &p.Order, &panelCtx, &p.ImageURL, &created, &up); err != nil {
		return nil, err
	}
	var d decoder
	d.json("panel_context", panelCtx, &p.Context)
	d.time("created_at", created, &p.CreatedAt)
	d.time("updated_at", up, &p.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return p.Clone(), nil
}

// Get returns the panel with its members.
func (t *panelsTable) Get(ctx context.Context, id string) (*types.Panel, error) {
	p, err := t.rowTable.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.hydrate(ctx, []*types.Panel{p}, "WHERE panel_id = ?", id); err != nil {
		return nil, err
	}
	return p, nil
}

// ListByParent returns the scene's panels with their members.
func (t *panelsTable) ListByParent(ctx context.Context, sceneID string) ([]*types.Panel, error) {
	panels, err := t.rowTable.ListByParent(ctx, sceneID)
	if err != nil {
		return nil, err
	}
	where := "WHERE panel_id IN (SELECT panel_id FROM panels WHERE scene_id = ?)"
	if err := t.hydrate(ctx, panels, where, sceneID); err != nil {
		return nil, err
	}
	return panels, nil
}

// ListAll returns every panel with its members.
func (t *panelsTable) ListAll(ctx context.Context) ([]*types.Panel, error) {
	panels, err := t.rowTable.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.hydrate(ctx, panels, ""); err != nil {
		return nil, err
	}
	return panels, nil
}

// hydrate fills CharacterIDs for panels from the junction rows selected by
// where.
func (t *panelsTable) hydrate(ctx context.Context, panels []*types.Panel, where string, args ...any) error {
	if len(panels) == 0 {
		return nil
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	members, err := loadMembers(ctx, db, where, args...)
	if err != nil {
		return err
	}
	for _, p := range panels {
		p.CharacterIDs = members[p.ID]
	}
	return nil
}

func loadMembers(ctx context.Context, q querier, where string, args ...any) (map[string][]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT panel_id, character_id FROM panel_characters "+where+" ORDER BY rowid", args...)
	if err != nil {
		return nil, fmt.Errorf("querying panel characters: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]string)
	for rows.Next() {
		var panelID, characterID string
		if err := rows.Scan(&panelID, &characterID); err != nil {
			return nil, fmt.Errorf("scanning panel character: %w", err)
		}
		members[panelID] = append(members[panelID], characterID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating panel characters: %w", err)
	}
	return members, nil
}

// Create inserts the panel and its member rows in one transaction.
func (t *panelsTable) Create(ctx context.Context, p *types.Panel) error {
	if p == nil {
		return types.ErrInvalidData
	}
	if p.ID == "" {
		return types.ErrInvalidID
	}
	var f fields
	f.set("panel_id", p.ID)
	f.set("scene_id", p.SceneID)
	f.set("order_index", p.Order)
	f.setJSON("panel_context", p.Context)
	f.set("image_url", p.ImageURL)
	f.setTime("created_at", p.CreatedAt)
	f.setTime("updated_at", p.UpdatedAt)

	return t.backend.withTx(ctx, func(tx *sql.Tx) error {
		if err := t.insert(ctx, tx, p.ID, &f); err != nil {
			return err
		}
		return insertMembers(ctx, tx, p.ID, types.UniqueIDs(p.CharacterIDs))
	})
}

// Update writes only the supplied fields. A supplied CharacterIDs replaces
// the member set.
func (t *panelsTable) Update(ctx context.Context, id string, p types.PanelPatch) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	var f fields
	if p.SceneID != nil {
		f.set("scene_id", *p.SceneID)
	}
	if p.Order != nil {
		f.set("order_index", *p.Order)
	}
	if p.Context != nil {
		f.setJSON("panel_context", *p.Context)
	}
	if p.ImageURL != nil {
		f.set("image_url", *p.ImageURL)
	}

	return t.backend.withTx(ctx, func(tx *sql.Tx) error {
		found, err := t.update(ctx, tx, id, &f, p.UpdatedAt)
		if err != nil || !found || p.CharacterIDs == nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM panel_characters WHERE panel_id = ?", id); err != nil {
			return fmt.Errorf("updating panel %s members: %w", id, err)
		}
		return insertMembers(ctx, tx, id, types.UniqueIDs(*p.CharacterIDs))
	})
}

func insertMembers(ctx context.Context, tx *sql.Tx, panelID string, characterIDs []string) error {
	for _, characterID := range characterIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO panel_characters (panel_id, character_id) VALUES (?, ?)",
			panelID, characterID,
		); err != nil {
			return fmt.Errorf("linking panel %s to character %s: %w", panelID, characterID, err)
		}
	}
	return nil
}

// AssignCharacter links the pair. An existing link is left as is.
func (t *panelsTable) AssignCharacter(ctx context.Context, panelID, characterID string) error {
	return t.backend.withTx(ctx, func(tx *sql.Tx) error {
		if err := t.relationEnds(ctx, tx, panelID, characterID); err != nil {
			return err
		}
		return insertMembers(ctx, tx, panelID, []string{characterID})
	})
}

// RemoveCharacter unlinks the pair. A missing link is a no-op.
func (t *panelsTable) RemoveCharacter(ctx context.Context, panelID, characterID string) error {
	return t.backend.withTx(ctx, func(tx *sql.Tx) error {
		if err := t.relationEnds(ctx, tx, panelID, characterID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM panel_characters WHERE panel_id = ? AND character_id = ?",
			panelID, characterID,
		); err != nil {
			return fmt.Errorf("unlinking panel %s from character %s: %w", panelID, characterID, err)
		}
		return nil
	})
}

func (t *panelsTable) relationEnds(ctx context.Context, tx *sql.Tx, panelID, characterID string) error {
	found, err := t.exists(ctx, tx, panelID)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrPanelNotFound
	}
	found, err = t.backend.characters.exists(ctx, tx, characterID)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrCharacterNotFound
	}
	return nil
}
