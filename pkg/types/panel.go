package types

import "time"

// Panel is an ordered part of a Scene. CharacterIDs is the Panel side of
// the many-to-many appears-in relation with Character.
type Panel struct {
	ID           string       `json:"id"`
	SceneID      string       `json:"sceneId"`
	Order        int          `json:"order"`
	Context      PanelContext `json:"panelContext"`
	ImageURL     string       `json:"imageUrl,omitempty"`
	CharacterIDs []string     `json:"characterIds,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PanelContext describes what a panel shows and how it is framed.
type PanelContext struct {
	Action         string            `json:"action,omitempty"`
	ShotType       string            `json:"shotType,omitempty"`
	CameraAngle    string            `json:"cameraAngle,omitempty"`
	Composition    string            `json:"composition,omitempty"`
	Lighting       string            `json:"lighting,omitempty"`
	CharacterPoses map[string]string `json:"characterPoses,omitempty"`
	Effects        []string          `json:"effects,omitempty"`
}

// Clone returns a deep copy of c.
func (c PanelContext) Clone() PanelContext {
	c.CharacterPoses = cloneStringMap(c.CharacterPoses)
	c.Effects = cloneStrings(c.Effects)
	return c
}

// Clone returns a deep copy of p.
func (p *Panel) Clone() *Panel {
	if p == nil {
		return nil
	}
	out := *p
	out.Context = p.Context.Clone()
	out.CharacterIDs = cloneStrings(p.CharacterIDs)
	return &out
}

// HasCharacter reports whether characterID appears in the panel.
func (p *Panel) HasCharacter(characterID string) bool {
	for _, id := range p.CharacterIDs {
		if id == characterID {
			return true
		}
	}
	return false
}

// PanelPatch carries a partial Panel update. CharacterIDs replaces the
// whole membership set.
type PanelPatch struct {
	SceneID      *string       `json:"sceneId,omitempty"`
	Order        *int          `json:"order,omitempty"`
	Context      *PanelContext `json:"panelContext,omitempty"`
	ImageURL     *string       `json:"imageUrl,omitempty"`
	CharacterIDs *[]string     `json:"characterIds,omitempty"`
	UpdatedAt    time.Time     `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p PanelPatch) IsEmpty() bool {
	return p.SceneID == nil && p.Order == nil && p.Context == nil &&
		p.ImageURL == nil && p.CharacterIDs == nil
}

// Apply merges the supplied fields into e.
func (p PanelPatch) Apply(e *Panel) {
	if p.SceneID != nil {
		e.SceneID = *p.SceneID
	}
	if p.Order != nil {
		e.Order = *p.Order
	}
	if p.Context != nil {
		e.Context = p.Context.Clone()
	}
	if p.ImageURL != nil {
		e.ImageURL = *p.ImageURL
	}
	if p.CharacterIDs != nil {
		e.CharacterIDs = UniqueIDs(*p.CharacterIDs)
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
