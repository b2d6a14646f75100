package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStatusValid(t *testing.T) {
	for _, s := range []ProjectStatus{StatusDraft, StatusPublished, StatusArchived} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ProjectStatus("deleted").Valid())
	assert.False(t, ProjectStatus("").Valid())
}

func TestUniqueIDs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"empty becomes nil", []string{}, nil},
		{"only blanks become nil", []string{"", ""}, nil},
		{"keeps first-seen order", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniqueIDs(tt.in))
		})
	}
}

func TestCharacterCloneIsDeep(t *testing.T) {
	orig := &Character{
		ID:     "c1",
		Name:   "Aiko",
		Traits: []string{"brave"},
		Attributes: CharacterAttributes{
			Face:  FaceAttributes{Features: []string{"scar"}},
			Style: StyleGuide{Palette: []string{"#fff"}},
		},
	}
	cp := orig.Clone()
	require.Equal(t, orig, cp)

	cp.Traits[0] = "timid"
	cp.Attributes.Face.Features[0] = "freckles"
	cp.Attributes.Style.Palette[0] = "#000"

	assert.Equal(t, "brave", orig.Traits[0])
	assert.Equal(t, "scar", orig.Attributes.Face.Features[0])
	assert.Equal(t, "#fff", orig.Attributes.Style.Palette[0])
}

func TestProjectCloneIsDeep(t *testing.T) {
	orig := &Project{
		ID: "p1",
		WorldDetails: WorldDetails{
			Rules: []string{"no magic"},
			Extra: map[string]string{"moons": "2"},
		},
		PlotStructure: PlotStructure{
			Acts: []PlotAct{{Title: "Setup", Beats: []string{"meet"}}},
		},
	}
	cp := orig.Clone()
	cp.WorldDetails.Rules[0] = "magic"
	cp.WorldDetails.Extra["moons"] = "3"
	cp.PlotStructure.Acts[0].Beats[0] = "part"

	assert.Equal(t, "no magic", orig.WorldDetails.Rules[0])
	assert.Equal(t, "2", orig.WorldDetails.Extra["moons"])
	assert.Equal(t, "meet", orig.PlotStructure.Acts[0].Beats[0])
}

func TestChapterPatchApply(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ch := &Chapter{ID: "c1", Title: "Old", Tone: "grim", ChapterNumber: 1, CreatedAt: created, UpdatedAt: created}

	stamp := created.Add(time.Hour)
	ChapterPatch{Title: Ptr("New"), UpdatedAt: stamp}.Apply(ch)

	assert.Equal(t, "New", ch.Title)
	assert.Equal(t, "grim", ch.Tone, "unsupplied fields keep their value")
	assert.Equal(t, 1, ch.ChapterNumber)
	assert.Equal(t, created, ch.CreatedAt)
	assert.Equal(t, stamp, ch.UpdatedAt)
}

func TestPatchApplyKeepsUpdatedAtWhenZero(t *testing.T) {
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	sc := &Scene{ID: "s1", UpdatedAt: old}
	ScenePatch{Order: Ptr(3)}.Apply(sc)
	assert.Equal(t, 3, sc.Order)
	assert.Equal(t, old, sc.UpdatedAt)

	p := &Project{ID: "p1", UpdatedAt: old}
	ProjectPatch{Likes: Ptr(int64(2))}.Apply(p)
	assert.Equal(t, old, p.UpdatedAt)
}

func TestCloneNilsEmptyCollections(t *testing.T) {
	c := &Character{
		Traits: []string{},
		Attributes: CharacterAttributes{
			Face:  FaceAttributes{Features: []string{}},
			Style: StyleGuide{Palette: []string{}},
		},
	}
	got := c.Clone()
	assert.Nil(t, got.Traits)
	assert.Nil(t, got.Attributes.Face.Features)
	assert.Nil(t, got.Attributes.Style.Palette)

	sc := (&Scene{Context: SceneContext{
		PresentCharacters:  []string{},
		ConsistencyAnchors: map[string]string{},
	}}).Clone()
	assert.Nil(t, sc.Context.PresentCharacters)
	assert.Nil(t, sc.Context.ConsistencyAnchors)

	pn := (&Panel{Context: PanelContext{
		CharacterPoses: map[string]string{},
		Effects:        []string{},
	}}).Clone()
	assert.Nil(t, pn.Context.CharacterPoses)
	assert.Nil(t, pn.Context.Effects)

	pr := (&Project{PlotStructure: PlotStructure{
		Acts: []PlotAct{{Title: "One", Beats: []string{}}},
	}}).Clone()
	require.Len(t, pr.PlotStructure.Acts, 1)
	assert.Nil(t, pr.PlotStructure.Acts[0].Beats)
	assert.Nil(t, (&Project{PlotStructure: PlotStructure{Acts: []PlotAct{}}}).Clone().PlotStructure.Acts)

	// Populated collections are still copied, not shared.
	src := &Panel{Context: PanelContext{Effects: []string{"rain"}}}
	cp := src.Clone()
	cp.Context.Effects[0] = "snow"
	assert.Equal(t, "rain", src.Context.Effects[0])
}

func TestPatchIsEmpty(t *testing.T) {
	now := time.Now()
	assert.True(t, ProjectPatch{UpdatedAt: now}.IsEmpty(), "UpdatedAt alone is not a supplied field")
	assert.True(t, ChapterPatch{}.IsEmpty())
	assert.True(t, ScenePatch{}.IsEmpty())
	assert.True(t, PanelPatch{}.IsEmpty())
	assert.True(t, DialoguePatch{}.IsEmpty())
	assert.True(t, CharacterPatch{}.IsEmpty())
	assert.True(t, OutfitTemplatePatch{}.IsEmpty())
	assert.True(t, LocationTemplatePatch{}.IsEmpty())

	assert.False(t, DialoguePatch{SpeakerID: Ptr("")}.IsEmpty(), "clearing the speaker is a supplied field")
	assert.False(t, PanelPatch{CharacterIDs: &[]string{}}.IsEmpty())
}

func TestPanelPatchNormalizesMembers(t *testing.T) {
	p := &Panel{ID: "pn1"}
	PanelPatch{CharacterIDs: &[]string{"a", "a", "", "b"}}.Apply(p)
	assert.Equal(t, []string{"a", "b"}, p.CharacterIDs)
	assert.True(t, p.HasCharacter("b"))
	assert.False(t, p.HasCharacter("c"))
}

func TestDialoguePatchClearsSpeaker(t *testing.T) {
	d := &Dialogue{ID: "d1", SpeakerID: "ch1"}
	DialoguePatch{SpeakerID: Ptr("")}.Apply(d)
	assert.Empty(t, d.SpeakerID)
}
