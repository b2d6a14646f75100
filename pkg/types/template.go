package types

import "time"

// OutfitTemplate is a reusable costume description owned by a Project.
type OutfitTemplate struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"mangaProjectId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Components  []string  `json:"components,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of o.
func (o *OutfitTemplate) Clone() *OutfitTemplate {
	if o == nil {
		return nil
	}
	out := *o
	out.Components = cloneStrings(o.Components)
	out.Tags = cloneStrings(o.Tags)
	return &out
}

// OutfitTemplatePatch carries a partial OutfitTemplate update.
type OutfitTemplatePatch struct {
	ProjectID   *string   `json:"mangaProjectId,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Components  *[]string `json:"components,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	UpdatedAt   time.Time `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p OutfitTemplatePatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Name == nil && p.Description == nil &&
		p.Category == nil && p.Components == nil && p.Tags == nil
}

// Apply merges the supplied fields into e.
func (p OutfitTemplatePatch) Apply(e *OutfitTemplate) {
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Components != nil {
		e.Components = cloneStrings(*p.Components)
	}
	if p.Tags != nil {
		e.Tags = cloneStrings(*p.Tags)
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}

// LocationTemplate is a reusable setting description owned by a Project.
type LocationTemplate struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"mangaProjectId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Lighting    string    `json:"lighting,omitempty"`
	Props       []string  `json:"props,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of l.
func (l *LocationTemplate) Clone() *LocationTemplate {
	if l == nil {
		return nil
	}
	out := *l
	out.Props = cloneStrings(l.Props)
	out.Tags = cloneStrings(l.Tags)
	return &out
}

// LocationTemplatePatch carries a partial LocationTemplate update.
type LocationTemplatePatch struct {
	ProjectID   *string   `json:"mangaProjectId,omitempty"`
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Lighting    *string   `json:"lighting,omitempty"`
	Props       *[]string `json:"props,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	UpdatedAt   time.Time `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p LocationTemplatePatch) IsEmpty() bool {
	return p.ProjectID == nil && p.Name == nil && p.Description == nil &&
		p.Category == nil && p.Lighting == nil && p.Props == nil && p.Tags == nil
}

// Apply merges the supplied fields into e.
func (p LocationTemplatePatch) Apply(e *LocationTemplate) {
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Lighting != nil {
		e.Lighting = *p.Lighting
	}
	if p.Props != nil {
		e.Props = cloneStrings(*p.Props)
	}
	if p.Tags != nil {
		e.Tags = cloneStrings(*p.Tags)
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
