package types

import "context"

// Table provides CRUD for a single entity kind. Records are stored as given:
// the table never assigns ids or timestamps. Callers must not rely on a
// table to check parents or cascade deletes, though a backend may do both
// (see SQLiteConfig.DisableForeignKeys).
type Table[E any, P any] interface {
	// Create stores e. Returns ErrInvalidID when e has no id.
	Create(ctx context.Context, e *E) error

	// Update merges the supplied fields of patch into the stored record.
	// A zero patch UpdatedAt leaves the stored timestamp unchanged.
	// A missing id or an empty patch is a no-op and returns nil.
	Update(ctx context.Context, id string, patch P) error

	// Delete removes exactly the named record. A missing id is a no-op.
	Delete(ctx context.Context, id string) error

	// Get returns the record or ErrNotFound.
	Get(ctx context.Context, id string) (*E, error)

	// ListAll scans the whole table. Used by reconciliation.
	ListAll(ctx context.Context) ([]*E, error)
}

// ChildTable is a Table whose records belong to a parent record.
type ChildTable[E any, P any] interface {
	Table[E, P]

	// ListByParent returns the records owned by parentID, sorted by the
	// kind's order field, then creation time, then id.
	ListByParent(ctx context.Context, parentID string) ([]*E, error)
}

// PanelTable adds the Panel↔Character appears-in relation.
type PanelTable interface {
	ChildTable[Panel, PanelPatch]

	// AssignCharacter links characterID to panelID. Assigning an existing
	// link succeeds without change. Returns ErrPanelNotFound or
	// ErrCharacterNotFound when either side is missing.
	AssignCharacter(ctx context.Context, panelID, characterID string) error

	// RemoveCharacter unlinks characterID from panelID. Removing an absent
	// link succeeds. Returns ErrPanelNotFound or ErrCharacterNotFound when
	// either side is missing.
	RemoveCharacter(ctx context.Context, panelID, characterID string) error
}

// Backend is a storage engine implementing the storage contract. Callers
// attach it once, use the typed tables, and detach when done.
type Backend interface {
	// Name returns the backend name used in Config.Backend.
	Name() string

	// Attach opens the store described by cfg. Returns ErrAlreadyAttached
	// when called on an attached backend.
	Attach(ctx context.Context, cfg Config) error

	// Detach releases the store. Idempotent. Table calls made after Detach
	// return ErrDetached.
	Detach() error

	Projects() Table[Project, ProjectPatch]
	Chapters() ChildTable[Chapter, ChapterPatch]
	Scenes() ChildTable[Scene, ScenePatch]
	Panels() PanelTable
	Dialogues() ChildTable[Dialogue, DialoguePatch]
	Characters() ChildTable[Character, CharacterPatch]
	Outfits() ChildTable[OutfitTemplate, OutfitTemplatePatch]
	Locations() ChildTable[LocationTemplate, LocationTemplatePatch]
}
