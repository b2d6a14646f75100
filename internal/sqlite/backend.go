package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// DatabaseFile is the file created under Config.DataDir.
const DatabaseFile = "storyboard.db"

// memoryPath opens a private in-memory database.
const memoryPath = ":memory:"

// Backend implements types.Backend on SQLite. Ownership edges are foreign
// keys with ON DELETE CASCADE, so deleting a row also removes its subtree
// when foreign keys are enabled.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	path     string

	projects   *projectsTable
	chapters   *chaptersTable
	scenes     *scenesTable
	panels     *panelsTable
	dialogues  *dialoguesTable
	characters *charactersTable
	outfits    *outfitsTable
	locations  *locationsTable
}

var _ types.Backend = (*Backend)(nil)

// NewBackend creates a detached SQLite backend.
func NewBackend() *Backend {
	b := &Backend{}
	b.projects = &projectsTable{rowTable: projectRows(b)}
	b.chapters = &chaptersTable{rowTable: chapterRows(b)}
	b.scenes = &scenesTable{rowTable: sceneRows(b)}
	b.panels = &panelsTable{rowTable: panelRows(b)}
	b.dialogues = &dialoguesTable{rowTable: dialogueRows(b)}
	b.characters = &charactersTable{rowTable: characterRows(b)}
	b.outfits = &outfitsTable{rowTable: outfitRows(b)}
	b.locations = &locationsTable{rowTable: locationRows(b)}
	return b
}

// Name returns types.BackendSQLite.
func (b *Backend) Name() string { return types.BackendSQLite }

// Attach opens the database, applies pragmas and creates the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	path := memoryPath
	if config.DataDir != "" {
		if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
			return fmt.Errorf("creating data dir: %w", err)
		}
		path = filepath.Join(config.DataDir, DatabaseFile)
	}

	db, err := openDatabase(ctx, path, config.SQLite)
	if err != nil {
		return err
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.path = path
	b.config = config
	b.attached = true
	return nil
}

// Detach closes the database. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Path returns the database path of an attached backend.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

func (b *Backend) Projects() types.Table[types.Project, types.ProjectPatch]     { return b.projects }
func (b *Backend) Chapters() types.ChildTable[types.Chapter, types.ChapterPatch] { return b.chapters }
func (b *Backend) Scenes() types.ChildTable[types.Scene, types.ScenePatch]       { return b.scenes }
func (b *Backend) Panels() types.PanelTable                                      { return b.panels }
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

// handle returns the open database or ErrDetached.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (b *Backend) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db, err := b.handle()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// openDatabase opens path with a single connection. SQLite serializes
// writers anyway; one connection also keeps a :memory: database alive for
// the life of the handle.
func openDatabase(ctx context.Context, path string, cfg types.SQLiteConfig) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	foreignKeys := "ON"
	if cfg.DisableForeignKeys {
		foreignKeys = "OFF"
	}
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.GetBusyTimeoutMS()),
		fmt.Sprintf("PRAGMA journal_mode = %s", cfg.GetJournalMode()),
		fmt.Sprintf("PRAGMA foreign_keys = %s", foreignKeys),
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying %q: %w", pragma, err)
		}
	}
	return db, nil
}

// migrate creates the schema and stamps user_version. A database stamped
// with a newer version is refused.
func migrate(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database at v%d, build supports v%d: %w", version, schemaVersion, types.ErrSchemaVersion)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning migration: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if version < schemaVersion {
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("writing schema version: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}
	return nil
}
