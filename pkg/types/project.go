package types

import "time"

// ProjectStatus is the lifecycle status of a Project.
type ProjectStatus string

// Project statuses.
const (
	StatusDraft     ProjectStatus = "draft"
	StatusPublished ProjectStatus = "published"
	StatusArchived  ProjectStatus = "archived"
)

// Valid reports whether s is a recognized status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Project is the root aggregate. It owns Chapters, Characters and
// templates.
type Project struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	Status        ProjectStatus `json:"status"`
	WorldDetails  WorldDetails  `json:"worldDetails"`
	PlotStructure PlotStructure `json:"plotStructure"`
	Tags          []string      `json:"tags,omitempty"`
	Genres        []string      `json:"genres,omitempty"`
	Views         int64         `json:"views"`
	Likes         int64         `json:"likes"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// WorldDetails describes the story world.
type WorldDetails struct {
	Setting    string            `json:"setting,omitempty"`
	Era        string            `json:"era,omitempty"`
	Technology string            `json:"technology,omitempty"`
	Rules      []string          `json:"rules,omitempty"`
	Factions   []string          `json:"factions,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// PlotStructure is the narrative outline of a Project.
type PlotStructure struct {
	Premise string    `json:"premise,omitempty"`
	Acts    []PlotAct `json:"acts,omitempty"`
	Themes  []string  `json:"themes,omitempty"`
	Ending  string    `json:"ending,omitempty"`
}

// PlotAct is one act of a PlotStructure.
type PlotAct struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary,omitempty"`
	Beats   []string `json:"beats,omitempty"`
}

// Clone returns a deep copy of w.
func (w WorldDetails) Clone() WorldDetails {
	w.Rules = cloneStrings(w.Rules)
	w.Factions = cloneStrings(w.Factions)
	w.Extra = cloneStringMap(w.Extra)
	return w
}

// Clone returns a deep copy of p.
func (p PlotStructure) Clone() PlotStructure {
	if len(p.Acts) == 0 {
		p.Acts = nil
	} else {
		acts := make([]PlotAct, len(p.Acts))
		for i, a := range p.Acts {
			a.Beats = cloneStrings(a.Beats)
			acts[i] = a
		}
		p.Acts = acts
	}
	p.Themes = cloneStrings(p.Themes)
	return p
}

// Clone returns a deep copy of p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.WorldDetails = p.WorldDetails.Clone()
	c.PlotStructure = p.PlotStructure.Clone()
	c.Tags = cloneStrings(p.Tags)
	c.Genres = cloneStrings(p.Genres)
	return &c
}

// ProjectPatch carries a partial Project update. Nil fields are left alone.
type ProjectPatch struct {
	Title         *string        `json:"title,omitempty"`
	Description   *string        `json:"description,omitempty"`
	Status        *ProjectStatus `json:"status,omitempty"`
	WorldDetails  *WorldDetails  `json:"worldDetails,omitempty"`
	PlotStructure *PlotStructure `json:"plotStructure,omitempty"`
	Tags          *[]string      `json:"tags,omitempty"`
	Genres        *[]string      `json:"genres,omitempty"`
	Views         *int64         `json:"views,omitempty"`
	Likes         *int64         `json:"likes,omitempty"`

	// UpdatedAt is stamped by the Service. A zero value leaves the stored
	// timestamp unchanged.
	UpdatedAt time.Time `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p ProjectPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.WorldDetails == nil && p.PlotStructure == nil && p.Tags == nil &&
		p.Genres == nil && p.Views == nil && p.Likes == nil
}

// Apply merges the supplied fields into e.
func (p ProjectPatch) Apply(e *Project) {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.WorldDetails != nil {
		e.WorldDetails = p.WorldDetails.Clone()
	}
	if p.PlotStructure != nil {
		e.PlotStructure = p.PlotStructure.Clone()
	}
	if p.Tags != nil {
		e.Tags = cloneStrings(*p.Tags)
	}
	if p.Genres != nil {
		e.Genres = cloneStrings(*p.Genres)
	}
	if p.Views != nil {
		e.Views = *p.Views
	}
	if p.Likes != nil {
		e.Likes = *p.Likes
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
