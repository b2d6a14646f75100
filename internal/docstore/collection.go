package docstore

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// kind describes how the store reads the fields it needs from an entity.
type kind[E any] struct {
	name    string             // collection and file stem, e.g. "chapters"
	id      func(*E) string    // primary key
	parent  func(*E) string    // owning id; nil for root kinds
	order   func(*E) int       // caller-assigned order; nil when the kind has none
	created func(*E) time.Time // creation time, used as the secondary sort key
	clone   func(*E) *E        // deep copy
	norm    func(*E)           // optional normalization before a write
}

// collection holds one entity kind: rows by id plus a parent-id index.
// A collection reachable from the committed state is never mutated; a
// transaction clones it first (see writable).
type collection[E any] struct {
	rows     map[string]*E
	byParent map[string]map[string]struct{}
}

func newCollection[E any]() *collection[E] {
	return &collection[E]{
		rows:     make(map[string]*E),
		byParent: make(map[string]map[string]struct{}),
	}
}

// clone copies the maps. Rows are shared: stored rows are immutable and a
// write always replaces the pointer.
func (c *collection[E]) clone() *collection[E] {
	out := &collection[E]{
		rows:     make(map[string]*E, len(c.rows)),
		byParent: make(map[string]map[string]struct{}, len(c.byParent)),
	}
	for id, row := range c.rows {
		out.rows[id] = row
	}
	for parent, ids := range c.byParent {
		set := make(map[string]struct{}, len(ids))
		for id := range ids {
			set[id] = struct{}{}
		}
		out.byParent[parent] = set
	}
	return out
}

func (c *collection[E]) get(id string) (*E, bool) {
	row, ok := c.rows[id]
	return row, ok
}

// put stores row, moving its index entry when the parent changed.
func (c *collection[E]) put(k kind[E], row *E) {
	id := k.id(row)
	if k.parent != nil {
		if old, ok := c.rows[id]; ok {
			c.unindex(k.parent(old), id)
		}
		parent := k.parent(row)
		set, ok := c.byParent[parent]
		if !ok {
			set = make(map[string]struct{})
			c.byParent[parent] = set
		}
		set[id] = struct{}{}
	}
	c.rows[id] = row
}

func (c *collection[E]) remove(k kind[E], id string) {
	row, ok := c.rows[id]
	if !ok {
		return
	}
	if k.parent != nil {
		c.unindex(k.parent(row), id)
	}
	delete(c.rows, id)
}

func (c *collection[E]) unindex(parent, id string) {
	set, ok := c.byParent[parent]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(c.byParent, parent)
	}
}

// children returns the ids owned by parent, sorted for deterministic
// cascades.
func (c *collection[E]) children(k kind[E], parent string) []string {
	rows := make([]*E, 0, len(c.byParent[parent]))
	for id := range c.byParent[parent] {
		rows = append(rows, c.rows[id])
	}
	sortByOrder(k, rows)
	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = k.id(row)
	}
	return ids
}

// sortByOrder sorts by order field (when present), creation time, then id.
func sortByOrder[E any](k kind[E], rows []*E) {
	slices.SortStableFunc(rows, func(a, b *E) int {
		if k.order != nil {
			if c := cmp.Compare(k.order(a), k.order(b)); c != 0 {
				return c
			}
		}
		return compareCreated(k, a, b)
	})
}

// sortByCreated sorts by creation time, then id. Used for full scans.
func sortByCreated[E any](k kind[E], rows []*E) {
	slices.SortStableFunc(rows, func(a, b *E) int {
		return compareCreated(k, a, b)
	})
}

func compareCreated[E any](k kind[E], a, b *E) int {
	if c := k.created(a).Compare(k.created(b)); c != 0 {
		return c
	}
	return strings.Compare(k.id(a), k.id(b))
}
