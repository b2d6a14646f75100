package sqlite

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

type dialoguesTable struct {
	rowTable[types.Dialogue]
}

var _ types.ChildTable[types.Dialogue, types.DialoguePatch] = (*dialoguesTable)(nil)

func dialogueRows(b *Backend) rowTable[types.Dialogue] {
	return rowTable[types.Dialogue]{
		backend:   b,
		entity:    "dialogue",
		table:     "dialogues",
		idCol:     "dialogue_id",
		parentCol: "panel_id",
		orderBy:   "order_index, created_at, dialogue_id",
		columns: []string{
			"dialogue_id", "panel_id", "order_index", "content", "dialogue_type", "style",
			"emotion", "speaker_id", "created_at", "updated_at",
		},
		scan: scanDialogue,
	}
}

func scanDialogue(s scanner) (*types.Dialogue, error) {
	var (
		dl                       types.Dialogue
		kind, style, created, up string
		speaker                  sql.NullString
	)
	if err := s.Scan(&dl.ID, &dl.PanelID, &dl.Order, &dl.Content, &kind, &style,
		&dl.Emotion, &speaker, &created, &up); err != nil {
		return nil, err
	}
	dl.Type = types.DialogueType(kind)
	dl.SpeakerID = speaker.String

	var d decoder
	d.json("style", style, &dl.Style)
	d.time("created_at", created, &dl.CreatedAt)
	d.time("updated_at", up, &dl.UpdatedAt)
	if d.err != nil {
		return nil, d.err
	}
	return dl.Clone(), nil
}

// Create inserts dl as given. An empty SpeakerID is stored as NULL.
func (t *dialoguesTable) Create(ctx context.Context, dl *types.Dialogue) error {
	if dl == nil {
		return types.ErrInvalidData
	}
	if dl.ID == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	f.set("dialogue_id", dl.ID)
	f.set("panel_id", dl.PanelID)
	f.set("order_index", dl.Order)
	f.set("content", dl.Content)
	f.set("dialogue_type", string(dl.Type))
	f.setJSON("style", dl.Style)
	f.set("emotion", dl.Emotion)
	f.set("speaker_id", nullString(dl.SpeakerID))
	f.setTime("created_at", dl.CreatedAt)
	f.setTime("updated_at", dl.UpdatedAt)
	return t.insert(ctx, db, dl.ID, &f)
}

// Update writes only the supplied fields. A supplied empty SpeakerID
// clears the speaker.
func (t *dialoguesTable) Update(ctx context.Context, id string, p types.DialoguePatch) error {
	if id == "" || p.IsEmpty() {
		return nil
	}
	db, err := t.backend.handle()
	if err != nil {
		return err
	}
	var f fields
	if p.PanelID != nil {
		f.set("panel_id", *p.PanelID)
	}
	if p.Order != nil {
		f.set("order_index", *p.Order)
	}
	if p.Content != nil {
		f.set("content", *p.Content)
	}
	if p.Type != nil {
		f.set("dialogue_type", string(*p.Type))
	}
	if p.Style != nil {
		f.setJSON("style", *p.Style)
	}
	if p.Emotion != nil {
		f.set("emotion", *p.Emotion)
	}
	if p.SpeakerID != nil {
		f.set("speaker_id", nullString(*p.SpeakerID))
	}
	_, err = t.update(ctx, db, id, &f, p.UpdatedAt)
	return err
}
