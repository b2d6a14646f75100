// Package sqlite implements the relational storage backend: one table per
// entity kind, foreign keys for ownership, and a junction table for the
// panel/character relation.
package sqlite

// schemaVersion is written to PRAGMA user_version. A store stamped with a
// higher value was written by a newer build and is refused.
const schemaVersion = 1

// Schema DDL. Nested values live in TEXT columns holding codec envelopes.
// Timestamps use timeLayout so that lexical order is chronological.
const (
	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    world_details TEXT NOT NULL,
    plot_structure TEXT NOT NULL,
    tags TEXT NOT NULL,
    genres TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0,
    likes INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createChapters = `CREATE TABLE IF NOT EXISTS chapters (
    chapter_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    chapter_number INTEGER NOT NULL,
    title TEXT NOT NULL,
    narrative TEXT NOT NULL DEFAULT '',
    purpose TEXT NOT NULL DEFAULT '',
    tone TEXT NOT NULL DEFAULT '',
    character_names TEXT NOT NULL,
    is_published INTEGER NOT NULL DEFAULT 0,
    views INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`

	createScenes = `CREATE TABLE IF NOT EXISTS scenes (
    scene_id TEXT PRIMARY KEY,
    chapter_id TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    scene_context TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (chapter_id) REFERENCES chapters(chapter_id) ON DELETE CASCADE
);`

	createPanels = `CREATE TABLE IF NOT EXISTS panels (
    panel_id TEXT PRIMARY KEY,
    scene_id TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    panel_context TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (scene_id) REFERENCES scenes(scene_id) ON DELETE CASCADE
);`

	createDialogues = `CREATE TABLE IF NOT EXISTS dialogues (
    dialogue_id TEXT PRIMARY KEY,
    panel_id TEXT NOT NULL,
    order_index INTEGER NOT NULL,
    content TEXT NOT NULL,
    dialogue_type TEXT NOT NULL DEFAULT '',
    style TEXT NOT NULL,
    emotion TEXT NOT NULL DEFAULT '',
    speaker_id TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (panel_id) REFERENCES panels(panel_id) ON DELETE CASCADE,
    FOREIGN KEY (speaker_id) REFERENCES characters(character_id) ON DELETE SET NULL
);`

	createCharacters = `CREATE TABLE IF NOT EXISTS characters (
    character_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    traits TEXT NOT NULL,
    attributes TEXT NOT NULL,
    reference_images TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`

	createOutfitTemplates = `CREATE TABLE IF NOT EXISTS outfit_templates (
    outfit_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    components TEXT NOT NULL,
    tags TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`

	createLocationTemplates = `CREATE TABLE IF NOT EXISTS location_templates (
    location_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    lighting TEXT NOT NULL DEFAULT '',
    props TEXT NOT NULL,
    tags TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`

	createPanelCharacters = `CREATE TABLE IF NOT EXISTS panel_characters (
    panel_id TEXT NOT NULL,
    character_id TEXT NOT NULL,
    PRIMARY KEY (panel_id, character_id),
    FOREIGN KEY (panel_id) REFERENCES panels(panel_id) ON DELETE CASCADE,
    FOREIGN KEY (character_id) REFERENCES characters(character_id) ON DELETE CASCADE
);`
)

// Index DDL for the parent lookups and the relation back-references.
const (
	indexChaptersProject   = `CREATE INDEX IF NOT EXISTS idx_chapters_project ON chapters(project_id, chapter_number)`
	indexScenesChapter     = `CREATE INDEX IF NOT EXISTS idx_scenes_chapter ON scenes(chapter_id, order_index)`
	indexPanelsScene       = `CREATE INDEX IF NOT EXISTS idx_panels_scene ON panels(scene_id, order_index)`
	indexDialoguesPanel    = `CREATE INDEX IF NOT EXISTS idx_dialogues_panel ON dialogues(panel_id, order_index)`
	indexDialoguesSpeaker  = `CREATE INDEX IF NOT EXISTS idx_dialogues_speaker ON dialogues(speaker_id)`
	indexCharactersProject = `CREATE INDEX IF NOT EXISTS idx_characters_project ON characters(project_id)`
	indexOutfitsProject    = `CREATE INDEX IF NOT EXISTS idx_outfit_templates_project ON outfit_templates(project_id)`
	indexLocationsProject  = `CREATE INDEX IF NOT EXISTS idx_location_templates_project ON location_templates(project_id)`
	indexPanelCharacters   = `CREATE INDEX IF NOT EXISTS idx_panel_characters_character ON panel_characters(character_id)`
)

// schemaStatements lists DDL in dependency order.
var schemaStatements = []string{
	createProjects,
	createChapters,
	createScenes,
	createPanels,
	createCharacters,
	createDialogues,
	createOutfitTemplates,
	createLocationTemplates,
	createPanelCharacters,
	indexChaptersProject,
	indexScenesChapter,
	indexPanelsScene,
	indexDialoguesPanel,
	indexDialoguesSpeaker,
	indexCharactersProject,
	indexOutfitsProject,
	indexLocationsProject,
	indexPanelCharacters,
}
