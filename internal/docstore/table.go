package docstore

import (
	"context"
	"fmt"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// patch is the constraint satisfied by every types.XxxPatch.
type patch[E any] interface {
	IsEmpty() bool
	Apply(*E)
}

// cascadeFunc removes everything a record owns, inside tx, before the
// record itself is removed.
type cascadeFunc func(tx *txn, id string)

// table is the generic collection accessor behind every entity kind.
type table[E any, P patch[E]] struct {
	backend *Backend
	k       kind[E]
	pick    func(*state) **collection[E]
	cascade cascadeFunc
}

var (
	_ types.Table[types.Project, types.ProjectPatch]                      = (*table[types.Project, types.ProjectPatch])(nil)
	_ types.ChildTable[types.Chapter, types.ChapterPatch]                 = (*table[types.Chapter, types.ChapterPatch])(nil)
	_ types.ChildTable[types.Dialogue, types.DialoguePatch]               = (*table[types.Dialogue, types.DialoguePatch])(nil)
	_ types.ChildTable[types.LocationTemplate, types.LocationTemplatePatch] = (*table[types.LocationTemplate, types.LocationTemplatePatch])(nil)
)

func newTable[E any, P patch[E]](b *Backend, k kind[E], pick func(*state) **collection[E], cascade cascadeFunc) *table[E, P] {
	return &table[E, P]{backend: b, k: k, pick: pick, cascade: cascade}
}

// Create stores a copy of e. The id must be set and unused.
func (t *table[E, P]) Create(ctx context.Context, e *E) error {
	if e == nil {
		return types.ErrInvalidData
	}
	id := t.k.id(e)
	if id == "" {
		return types.ErrInvalidID
	}
	row := t.k.clone(e)
	if t.k.norm != nil {
		t.k.norm(row)
	}
	return t.backend.update(ctx, func(tx *txn) error {
		if _, exists := (*t.pick(tx.st)).get(id); exists {
			return fmt.Errorf("create %s %s: %w: id already exists", t.k.name, id, types.ErrInvalidID)
		}
		writable(tx, t.k, t.pick(tx.st)).put(t.k, row)
		return nil
	})
}

// Update merges p into the stored record. Missing ids and empty patches
// are no-ops.
func (t *table[E, P]) Update(ctx context.Context, id string, p P) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	return t.backend.update(ctx, func(tx *txn) error {
		current, ok := (*t.pick(tx.st)).get(id)
		if !ok {
			return nil
		}
		row := t.k.clone(current)
		p.Apply(row)
		if t.k.norm != nil {
			t.k.norm(row)
		}
		writable(tx, t.k, t.pick(tx.st)).put(t.k, row)
		return nil
	})
}

// Delete removes the record after its native cascade. A missing id is a
// no-op.
func (t *table[E, P]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return t.backend.update(ctx, func(tx *txn) error {
		if _, ok := (*t.pick(tx.st)).get(id); !ok {
			return nil
		}
		if t.cascade != nil {
			t.cascade(tx, id)
		}
		writable(tx, t.k, t.pick(tx.st)).remove(t.k, id)
		return nil
	})
}

// Get returns a copy of the record or ErrNotFound.
func (t *table[E, P]) Get(ctx context.Context, id string) (*E, error) {
	var out *E
	err := t.backend.view(ctx, func(st *state) error {
		row, ok := (*t.pick(st)).get(id)
		if !ok {
			return types.ErrNotFound
		}
		out = t.k.clone(row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByParent returns copies of the records owned by parentID.
func (t *table[E, P]) ListByParent(ctx context.Context, parentID string) ([]*E, error) {
	if t.k.parent == nil {
		return nil, fmt.Errorf("list %s by parent: %w", t.k.name, types.ErrInvalidData)
	}
	out := []*E{}
	err := t.backend.view(ctx, func(st *state) error {
		c := *t.pick(st)
		for id := range c.byParent[parentID] {
			out = append(out, t.k.clone(c.rows[id]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByOrder(t.k, out)
	return out, nil
}

// ListAll returns copies of every record, oldest first.
func (t *table[E, P]) ListAll(ctx context.Context) ([]*E, error) {
	out := []*E{}
	err := t.backend.view(ctx, func(st *state) error {
		for _, row := range (*t.pick(st)).rows {
			out = append(out, t.k.clone(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByCreated(t.k, out)
	return out, nil
}

// panelTable adds the appears-in relation to the panel collection.
type panelTable struct {
	*table[types.Panel, types.PanelPatch]
}

var _ types.PanelTable = (*panelTable)(nil)

// AssignCharacter appends characterID to the panel's members. Both records
// are re-read inside the transaction.
func (pt *panelTable) AssignCharacter(ctx context.Context, panelID, characterID string) error {
	return pt.backend.update(ctx, func(tx *txn) error {
		panel, err := relationEnds(tx, panelID, characterID)
		if err != nil {
			return err
		}
		if panel.HasCharacter(characterID) {
			return nil
		}
		row := panel.Clone()
		row.CharacterIDs = append(row.CharacterIDs, characterID)
		writable(tx, panelKind, &tx.st.panels).put(panelKind, row)
		return nil
	})
}

// RemoveCharacter drops characterID from the panel's members.
func (pt *panelTable) RemoveCharacter(ctx context.Context, panelID, characterID string) error {
	return pt.backend.update(ctx, func(tx *txn) error {
		panel, err := relationEnds(tx, panelID, characterID)
		if err != nil {
			return err
		}
		if !panel.HasCharacter(characterID) {
			return nil
		}
		writable(tx, panelKind, &tx.st.panels).put(panelKind, withoutCharacter(panel, characterID))
		return nil
	})
}

// relationEnds validates both sides of a panel/character link.
func relationEnds(tx *txn, panelID, characterID string) (*types.Panel, error) {
	panel, ok := tx.st.panels.get(panelID)
	if !ok {
		return nil, types.ErrPanelNotFound
	}
	if _, ok := tx.st.characters.get(characterID); !ok {
		return nil, types.ErrCharacterNotFound
	}
	return panel, nil
}

// withoutCharacter returns a copy of panel with characterID removed.
func withoutCharacter(panel *types.Panel, characterID string) *types.Panel {
	row := panel.Clone()
	kept := row.CharacterIDs[:0]
	for _, id := range row.CharacterIDs {
		if id != characterID {
			kept = append(kept, id)
		}
	}
	row.CharacterIDs = types.UniqueIDs(kept)
	return row
}
