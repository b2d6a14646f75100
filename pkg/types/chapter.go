package types

import "time"

// Chapter is an ordered part of a Project. CharacterNames is a denormalized
// list of soft references; it is never checked against Characters.
type Chapter struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"mangaProjectId"`
	ChapterNumber  int       `json:"chapterNumber"`
	Title          string    `json:"title"`
	Narrative      string    `json:"narrative,omitempty"`
	Purpose        string    `json:"purpose,omitempty"`
	Tone           string    `json:"tone,omitempty"`
	CharacterNames []string  `json:"characterNames,omitempty"`
	IsPublished    bool      `json:"isPublished"`
	Views          int64     `json:"views"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of c.
func (c *Chapter) Clone() *Chapter {
	if c == nil {
		return nil
	}
	out := *c
	out.CharacterNames = cloneStrings(c.CharacterNames)
	return &out
}

// ChapterPatch carries a partial Chapter update.
type ChapterPatch struct {
	ProjectID      *string   `json:"mangaProjectId,omitempty"`
	ChapterNumber  *int      `json:"chapterNumber,omitempty"`
	Title          *string   `json:"title,omitempty"`
	Narrative      *string   `json:"narrative,omitempty"`
	Purpose        *string   `json:"purpose,omitempty"`
	Tone           *string   `json:"tone,omitempty"`
	CharacterNames *[]string `json:"characterNames,omitempty"`
	IsPublished    *bool     `json:"isPublished,omitempty"`
	Views          *int64    `json:"views,omitempty"`
	UpdatedAt      time.Time `json:"-"`
}

// IsEmpty reports whether no field is supplied.
func (p ChapterPatch) IsEmpty() bool {
	return p.ProjectID == nil && p.ChapterNumber == nil && p.Title == nil &&
		p.Narrative == nil && p.Purpose == nil && p.Tone == nil &&
		p.CharacterNames == nil && p.IsPublished == nil && p.Views == nil
}

// Apply merges the supplied fields into e.
func (p ChapterPatch) Apply(e *Chapter) {
	if p.ProjectID != nil {
		e.ProjectID = *p.ProjectID
	}
	if p.ChapterNumber != nil {
		e.ChapterNumber = *p.ChapterNumber
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Narrative != nil {
		e.Narrative = *p.Narrative
	}
	if p.Purpose != nil {
		e.Purpose = *p.Purpose
	}
	if p.Tone != nil {
		e.Tone = *p.Tone
	}
	if p.CharacterNames != nil {
		e.CharacterNames = cloneStrings(*p.CharacterNames)
	}
	if p.IsPublished != nil {
		e.IsPublished = *p.IsPublished
	}
	if p.Views != nil {
		e.Views = *p.Views
	}
	if !p.UpdatedAt.IsZero() {
		e.UpdatedAt = p.UpdatedAt
	}
}
