package docstore

import (
	"time"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Collection names. Each is also the stem of the collection's JSONL file.
const (
	collProjects   = "projects"
	collChapters   = "chapters"
	collScenes     = "scenes"
	collPanels     = "panels"
	collDialogues  = "dialogues"
	collCharacters = "characters"
	collOutfits    = "outfit_templates"
	collLocations  = "location_templates"
)

var (
	projectKind = kind[types.Project]{
		name:    collProjects,
		id:      func(e *types.Project) string { return e.ID },
		created: func(e *types.Project) time.Time { return e.CreatedAt },
		clone:   (*types.Project).Clone,
	}
	chapterKind = kind[types.Chapter]{
		name:    collChapters,
		id:      func(e *types.Chapter) string { return e.ID },
		parent:  func(e *types.Chapter) string { return e.ProjectID },
		order:   func(e *types.Chapter) int { return e.ChapterNumber },
		created: func(e *types.Chapter) time.Time { return e.CreatedAt },
		clone:   (*types.Chapter).Clone,
	}
	sceneKind = kind[types.Scene]{
		name:    collScenes,
		id:      func(e *types.Scene) string { return e.ID },
		parent:  func(e *types.Scene) string { return e.ChapterID },
		order:   func(e *types.Scene) int { return e.Order },
		created: func(e *types.Scene) time.Time { return e.CreatedAt },
		clone:   (*types.Scene).Clone,
	}
	panelKind = kind[types.Panel]{
		name:    collPanels,
		id:      func(e *types.Panel) string { return e.ID },
		parent:  func(e *types.Panel) string { return e.SceneID },
		order:   func(e *types.Panel) int { return e.Order },
		created: func(e *types.Panel) time.Time { return e.CreatedAt },
		clone:   (*types.Panel).Clone,
		norm:    func(e *types.Panel) { e.CharacterIDs = types.UniqueIDs(e.CharacterIDs) },
	}
	dialogueKind = kind[types.Dialogue]{
		name:    collDialogues,
		id:      func(e *types.Dialogue) string { return e.ID },
		parent:  func(e *types.Dialogue) string { return e.PanelID },
		order:   func(e *types.Dialogue) int { return e.Order },
		created: func(e *types.Dialogue) time.Time { return e.CreatedAt },
		clone:   (*types.Dialogue).Clone,
	}
	characterKind = kind[types.Character]{
		name:    collCharacters,
		id:      func(e *types.Character) string { return e.ID },
		parent:  func(e *types.Character) string { return e.ProjectID },
		created: func(e *types.Character) time.Time { return e.CreatedAt },
		clone:   (*types.Character).Clone,
	}
	outfitKind = kind[types.OutfitTemplate]{
		name:    collOutfits,
		id:      func(e *types.OutfitTemplate) string { return e.ID },
		parent:  func(e *types.OutfitTemplate) string { return e.ProjectID },
		created: func(e *types.OutfitTemplate) time.Time { return e.CreatedAt },
		clone:   (*types.OutfitTemplate).Clone,
	}
	locationKind = kind[types.LocationTemplate]{
		name:    collLocations,
		id:      func(e *types.LocationTemplate) string { return e.ID },
		parent:  func(e *types.LocationTemplate) string { return e.ProjectID },
		created: func(e *types.LocationTemplate) time.Time { return e.CreatedAt },
		clone:   (*types.LocationTemplate).Clone,
	}
)

// state is one consistent version of every collection.
type state struct {
	projects   *collection[types.Project]
	chapters   *collection[types.Chapter]
	scenes     *collection[types.Scene]
	panels     *collection[types.Panel]
	dialogues  *collection[types.Dialogue]
	characters *collection[types.Character]
	outfits    *collection[types.OutfitTemplate]
	locations  *collection[types.LocationTemplate]
}

func newState() *state {
	return &state{
		projects:   newCollection[types.Project](),
		chapters:   newCollection[types.Chapter](),
		scenes:     newCollection[types.Scene](),
		panels:     newCollection[types.Panel](),
		dialogues:  newCollection[types.Dialogue](),
		characters: newCollection[types.Character](),
		outfits:    newCollection[types.OutfitTemplate](),
		locations:  newCollection[types.LocationTemplate](),
	}
}

// Field selectors used by the generic tables.
func pickProjects(s *state) **collection[types.Project] { return &s.projects }
func pickChapters(s *state) **collection[types.Chapter] { return &s.chapters }
func pickScenes(s *state) **collection[types.Scene] { return &s.scenes }
func pickPanels(s *state) **collection[types.Panel] { return &s.panels }
func pickDialogues(s *state) **collection[types.Dialogue] { return &s.dialogues }
func pickCharacters(s *state) **collection[types.Character] { return &s.characters }
func pickOutfits(s *state) **collection[types.OutfitTemplate] { return &s.outfits }
func pickLocations(s *state) **collection[types.LocationTemplate] { return &s.locations }

// txn is a write transaction. It works on a shallow copy of the committed
// state; collections are cloned on first write and recorded in dirty.
type txn struct {
	st    *state
	dirty map[string]bool
}

func newTxn(committed *state) *txn {
	cp := *committed
	return &txn{st: &cp, dirty: make(map[string]bool)}
}

// writable returns the transaction's private copy of a collection.
func writable[E any](tx *txn, k kind[E], field **collection[E]) *collection[E] {
	if !tx.dirty[k.name] {
		*field = (*field).clone()
		tx.dirty[k.name] = true
	}
	return *field
}
