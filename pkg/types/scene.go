package types

import "time"

// Scene is an ordered part of a Chapter.
type Scene struct {
	ID          string       `json:"id"`
	ChapterID   string       `json:"chapterId"`
	Order       int          `json:"order"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Context     SceneContext `json:"sceneContext"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// SceneContext is stored as one opaque structured value; none of its
// fields are indexed.
type SceneContext struct {
	Setting            string            `json:"setting,omitempty"`
	Mood               string            `json:"mood,omitempty"`
	TimeOfDay          string            `json:"timeOfDay,omitempty"`
	Weather            string            `json:"weather,omitempty"`
	PresentCharacters  []string          `json:"presentCharacters,omitempty"`
	ConsistencyAnchors map[string]string `json:"consistencyAnchors,omitempty"`
}

// Clone returns a deep copy of c.
func (c SceneContext) Clone() SceneContext {
	c.PresentCharacters = cloneStrings(c.PresentCharacters)
	c.ConsistencyAnchors = cloneStringMap(c.ConsistencyAnchors)
	return c
}

// Clone returns a deep copy of s.
func (s *Scene) Clone() *Scene {
	if s == nil {
		return nil
	}
	out := *s
	out.Context = s.Context.Clone()
	return &out
}

// ScenePatch carries a partial Scene update.
type ScenePatch struct {
	ChapterID   *string       `json:"chapterId,omitempty"`
	Order       *int          `json:"order,omitempty"`
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Context     *SceneContext `json:"sceneContext,omitempty"`
	UpdatedAt   time.Time     `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p ScenePatch) IsEmpty() bool {
	return p.ChapterID == nil && p.Order == nil && p.Title == nil &&
		p.Description == nil && p.Context == nil
}

// Apply merges the supplied fields into e.
func (p ScenePatch) Apply(e *Scene) {
	if p.ChapterID != nil {
		e.ChapterID = *p.ChapterID
	}
	if p.Order != nil {
		e.Order = *p.Order
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Context != nil {
		e.Context = p.Context.Clone()
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
