package types

import "time"

// Character belongs to a Project and outlives the Chapters it appears in.
// Panels and Dialogues refer to it by id; those references are cleared,
// never cascaded, when the Character is deleted.
type Character struct {
	ID              string              `json:"id"`
	ProjectID       string              `json:"mangaProjectId"`
	Name            string              `json:"name"`
	Role            string              `json:"role,omitempty"`
	Description     string              `json:"description,omitempty"`
	Traits          []string            `json:"traits,omitempty"`
	Attributes      CharacterAttributes `json:"attributes"`
	ReferenceImages []string            `json:"referenceImages,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// CharacterAttributes is the descriptive bundle used to keep a character
// visually consistent across panels.
type CharacterAttributes struct {
	Body  BodyAttributes `json:"body"`
	Face  FaceAttributes `json:"face"`
	Hair  HairAttributes `json:"hair"`
	Style StyleGuide     `json:"style"`
}

// BodyAttributes describes build and proportions.
type BodyAttributes struct {
	Build    string `json:"build,omitempty"`
	Height   string `json:"height,omitempty"`
	SkinTone string `json:"skinTone,omitempty"`
	Age      int    `json:"age,omitempty"`
}

// FaceAttributes describes facial features.
type FaceAttributes struct {
	Shape    string   `json:"shape,omitempty"`
	EyeColor string   `json:"eyeColor,omitempty"`
	EyeShape string   `json:"eyeShape,omitempty"`
	Features []string `json:"features,omitempty"`
}

// HairAttributes describes hair.
type HairAttributes struct {
	Color  string `json:"color,omitempty"`
	Style  string `json:"style,omitempty"`
	Length string `json:"length,omitempty"`
}

// StyleGuide holds rendering notes for the character.
type StyleGuide struct {
	ArtStyle string   `json:"artStyle,omitempty"`
	Palette  []string `json:"palette,omitempty"`
	Outfit   string   `json:"outfit,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Clone returns a deep copy of a.
func (a CharacterAttributes) Clone() CharacterAttributes {
	a.Face.Features = cloneStrings(a.Face.Features)
	a.Style.Palette = cloneStrings(a.Style.Palette)
	return a
}

// Clone returns a deep copy of c.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}
	out := *c
	out.Traits = cloneStrings(c.Traits)
	out.Attributes = c.Attributes.Clone()
	out.ReferenceImages = cloneStrings(c.ReferenceImages)
	return &out
}

// CharacterPatch carries a partial Character update.
type CharacterPatch struct {
	ProjectID       *string              `json:"mangaProjectId,omitempty"`
	Name            *string              `json:"name,omitempty"`
	Role            *string              `json:"role,omitempty"`
	Description     *string              `json:"description,omitempty"`
	Traits          *[]string            `json:"traits,omitempty"`
	Attributes      *CharacterAttributes `json:"attributes,omitempty"`
	ReferenceImages *[]string            `json:"referenceImages,omitempty"`
	UpdatedAt       time.Time            `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p CharacterPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Name == nil && p.Role == nil &&
		p.Description == nil && p.Traits == nil && p.Attributes == nil &&
		p.ReferenceImages == nil
}

// Apply merges the supplied fields into e.
func (p CharacterPatch) Apply(e *Character) {
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Role != nil {
		e.Role = *p.Role
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Traits != nil {
		e.Traits = cloneStrings(*p.Traits)
	}
	if p.Attributes != nil {
		e.Attributes = p.Attributes.Clone()
	}
	if p.ReferenceImages != nil {
		e.ReferenceImages = cloneStrings(*p.ReferenceImages)
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
