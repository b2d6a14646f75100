package types

import "time"

// DialogueType classifies a line of dialogue.
type DialogueType string

// Dialogue types.
const (
	DialogueSpeech    DialogueType = "speech"
	DialogueThought   DialogueType = "thought"
	DialogueNarration DialogueType = "narration"
	DialogueSFX       DialogueType = "sfx"
)

// Dialogue is an ordered line inside a Panel. SpeakerID optionally names a
// Character; the empty string means no speaker. Removing the Character
// clears SpeakerID and never deletes the Dialogue.
type Dialogue struct {
	ID        string        `json:"id"`
	PanelID   string        `json:"panelId"`
	Order     int           `json:"order"`
	Content   string        `json:"content"`
	Type      DialogueType  `json:"type,omitempty"`
	Style     DialogueStyle `json:"style"`
	Emotion   string        `json:"emotion,omitempty"`
	SpeakerID string        `json:"speakerId,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// DialogueStyle controls how a line is lettered.
type DialogueStyle struct {
	BubbleStyle string `json:"bubbleStyle,omitempty"`
	FontSize    int    `json:"fontSize,omitempty"`
	Emphasis    bool   `json:"emphasis,omitempty"`
	Position    string `json:"position,omitempty"`
}

// Clone returns a copy of d.
func (d *Dialogue) Clone() *Dialogue {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

// DialoguePatch carries a partial Dialogue update. A SpeakerID pointing at
// the empty string clears the speaker.
type DialoguePatch struct {
	PanelID   *string        `json:"panelId,omitempty"`
	Order     *int           `json:"order,omitempty"`
	Content   *string        `json:"content,omitempty"`
	Type      *DialogueType  `json:"type,omitempty"`
	Style     *DialogueStyle `json:"style,omitempty"`
	Emotion   *string        `json:"emotion,omitempty"`
	SpeakerID *string        `json:"speakerId,omitempty"`
	UpdatedAt time.Time      `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p DialoguePatch) IsEmpty() bool {
	return p.PanelID == nil && p.Order == nil && p.Content == nil &&
		p.Type == nil && p.Style == nil && p.Emotion == nil && p.SpeakerID == nil
}

// Apply merges the supplied fields into e.
func (p DialoguePatch) Apply(e *Dialogue) {
	if p.PanelID != nil {
		e.PanelID = *p.PanelID
	}
	if p.Order != nil {
		e.Order = *p.Order
	}
	if p.Content != nil {
		e.Content = *p.Content
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Style != nil {
		e.Style = *p.Style
	}
	if p.Emotion != nil {
		e.Emotion = *p.Emotion
	}
	if p.SpeakerID != nil {
		e.SpeakerID = *p.SpeakerID
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
