// Package docstore implements the embedded document-store backend.
//
// Every entity kind is a collection of native Go values keyed by id, with a
// parent-id index for child kinds. Writes run in transactions that clone
// the collections they touch, persist them, and only then swap the new
// state in, so a failed write leaves the store unchanged. Deletes of
// Project, Chapter, Scene, Panel and Character cascade inside the same
// transaction.
//
// With Config.DataDir set, each collection is kept in <name>.jsonl and
// rewritten atomically on commit. An empty DataDir gives a purely
// in-memory store.
package docstore

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend as an in-process document store.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	state    *state
	files    []fileSpec

	projects   *table[types.Project, types.ProjectPatch]
	chapters   *table[types.Chapter, types.ChapterPatch]
	scenes     *table[types.Scene, types.ScenePatch]
	panels     *panelTable
	dialogues  *table[types.Dialogue, types.DialoguePatch]
	characters *table[types.Character, types.CharacterPatch]
	outfits    *table[types.OutfitTemplate, types.OutfitTemplatePatch]
	locations  *table[types.LocationTemplate, types.LocationTemplatePatch]
}

// NewBackend creates a detached document-store backend.
func NewBackend() *Backend {
	b := &Backend{}
	b.projects = newTable[types.Project, types.ProjectPatch](b, projectKind, pickProjects, cascadeProject)
	b.chapters = newTable[types.Chapter, types.ChapterPatch](b, chapterKind, pickChapters, cascadeChapter)
	b.scenes = newTable[types.Scene, types.ScenePatch](b, sceneKind, pickScenes, cascadeScene)
	b.panels = &panelTable{table: newTable[types.Panel, types.PanelPatch](b, panelKind, pickPanels, cascadePanel)}
	b.dialogues = newTable[types.Dialogue, types.DialoguePatch](b, dialogueKind, pickDialogues, nil)
	b.characters = newTable[types.Character, types.CharacterPatch](b, characterKind, pickCharacters, cascadeCharacter)
	b.outfits = newTable[types.OutfitTemplate, types.OutfitTemplatePatch](b, outfitKind, pickOutfits, nil)
	b.locations = newTable[types.LocationTemplate, types.LocationTemplatePatch](b, locationKind, pickLocations, nil)
	b.files = []fileSpec{
		specFor(projectKind, pickProjects),
		specFor(chapterKind, pickChapters),
		specFor(sceneKind, pickScenes),
		specFor(panelKind, pickPanels),
		specFor(dialogueKind, pickDialogues),
		specFor(characterKind, pickCharacters),
		specFor(outfitKind, pickOutfits),
		specFor(locationKind, pickLocations),
	}
	return b
}

// Name returns types.BackendDocstore.
func (b *Backend) Name() string { return types.BackendDocstore }

// Attach loads the collections from DataDir, creating empty files on first
// use. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, cfg types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	st := newState()
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
		for _, f := range b.files {
			if err := f.load(cfg.DataDir, st); err != nil {
				return fmt.Errorf("load %s: %w", f.name, err)
			}
		}
	}

	b.config = cfg
	b.state = st
	b.attached = true
	return nil
}

// Detach drops the in-memory state. Every commit is already on disk, so
// there is nothing to flush. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.attached = false
	b.state = nil
	return nil
}

func (b *Backend) Projects() types.Table[types.Project, types.ProjectPatch] { return b.projects }

func (b *Backend) Chapters() types.ChildTable[types.Chapter, types.ChapterPatch] {
	return b.chapters
}

func (b *Backend) Scenes() types.ChildTable[types.Scene, types.ScenePatch] { return b.scenes }

func (b *Backend) Panels() types.PanelTable { return b.panels }

func (b *Backend) Dialogues() types.ChildTable[types.Dialogue, types.DialoguePatch] {
	return b.dialogues
}

func (b *Backend) Characters() types.ChildTable[types.Character, types.CharacterPatch] {
	return b.characters
}

func (b *Backend) Outfits() types.ChildTable[types.OutfitTemplate, types.OutfitTemplatePatch] {
	return b.outfits
}

func (b *Backend) Locations() types.ChildTable[types.LocationTemplate, types.LocationTemplatePatch] {
	return b.locations
}

// update runs fn in a write transaction. Dirty collections are persisted
// before the new state becomes visible; any error discards the transaction.
func (b *Backend) update(ctx context.Context, fn func(tx *txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx := newTxn(b.state)
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.dirty) == 0 {
		return nil
	}
	if err := b.persistLocked(tx); err != nil {
		return err
	}
	b.state = tx.st
	return nil
}

// view runs fn against the committed state under a read lock. fn must not
// retain or mutate what it reads.
func (b *Backend) view(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.ErrDetached
	}
	return fn(b.state)
}

// persistLocked writes every dirty collection. The caller holds b.mu.
// A failure part-way leaves earlier files rewritten; the in-memory state
// is not swapped and the next successful commit rewrites them again.
func (b *Backend) persistLocked(tx *txn) error {
	if b.config.DataDir == "" {
		return nil
	}
	for _, f := range b.files {
		if !tx.dirty[f.name] {
			continue
		}
		if err := f.save(b.config.DataDir, tx.st); err != nil {
			return fmt.Errorf("persist %s: %w", f.name, err)
		}
	}
	return nil
}
