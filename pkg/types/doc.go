// Package types defines the storyboard entity model, the backend-agnostic
// storage contract (Backend, Table, ChildTable, PanelTable), partial-update
// patches, backend configuration, and the standard error values.
//
// Entities form a four-level ownership tree rooted at Project:
//
//	Project 1─* Chapter 1─* Scene 1─* Panel 1─* Dialogue
//	Project 1─* Character, OutfitTemplate, LocationTemplate
//	Panel   *─* Character  (Panel.CharacterIDs)
//	Dialogue *─1 Character (Dialogue.SpeakerID, optional)
//
// Backends store and return records as given, except that empty
// collections read back as nil. Identity and timestamps are assigned by the
// caller (the storyboard Service). The contract does not require parent
// existence on write or cascades on delete; the SQLite backend enforces both
// through foreign keys unless SQLiteConfig.DisableForeignKeys is set, and
// rejects a write whose parent is missing.
package types
