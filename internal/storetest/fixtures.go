package storetest

import (
	"time"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Base is the timestamp fixtures are stamped relative to.
var Base = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

// At returns Base plus n seconds.
func At(n int) time.Time {
	return Base.Add(time.Duration(n) * time.Second)
}

// Project returns a fully populated project.
func Project(id string, created time.Time) *types.Project {
	return &types.Project{
		ID:          id,
		Title:       "Tides of Ash",
		Description: "A lighthouse keeper and a drowned city.",
		Status:      types.StatusDraft,
		WorldDetails: types.WorldDetails{
			Setting:    "Coastal archipelago",
			Era:        "Post-collapse",
			Technology: "Salvaged steam",
			Rules:      []string{"The sea keeps what it takes"},
			Factions:   []string{"Keepers", "Divers"},
			Extra:      map[string]string{"currency": "brass tokens"},
		},
		PlotStructure: types.PlotStructure{
			Premise: "A keeper hears bells under the water.",
			Acts: []types.PlotAct{
				{Title: "Signal", Summary: "The bells start.", Beats: []string{"storm", "bell"}},
				{Title: "Descent"},
			},
			Themes: []string{"memory", "duty"},
			Ending: "open",
		},
		Tags:      []string{"drama", "mystery"},
		Genres:    []string{"seinen"},
		Views:     12,
		Likes:     3,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Chapter returns a chapter of projectID.
func Chapter(id, projectID string, number int, created time.Time) *types.Chapter {
	return &types.Chapter{
		ID:             id,
		ProjectID:      projectID,
		ChapterNumber:  number,
		Title:          "Chapter " + id,
		Narrative:      "The keeper climbs the stairs.",
		Purpose:        "setup",
		Tone:           "quiet",
		CharacterNames: []string{"Ines", "Oru"},
		IsPublished:    number%2 == 0,
		Views:          int64(number),
		CreatedAt:      created,
		UpdatedAt:      created,
	}
}

// Scene returns a scene of chapterID.
func Scene(id, chapterID string, order int, created time.Time) *types.Scene {
	return &types.Scene{
		ID:          id,
		ChapterID:   chapterID,
		Order:       order,
		Title:       "Scene " + id,
		Description: "Lamp room at dusk.",
		Context: types.SceneContext{
			Setting:            "lamp room",
			Mood:               "tense",
			TimeOfDay:          "dusk",
			Weather:            "squall",
			PresentCharacters:  []string{"Ines"},
			ConsistencyAnchors: map[string]string{"lamp": "cracked lens"},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Panel returns a panel of sceneID listing characterIDs.
func Panel(id, sceneID string, order int, created time.Time, characterIDs ...string) *types.Panel {
	return &types.Panel{
		ID:      id,
		SceneID: sceneID,
		Order:   order,
		Context: types.PanelContext{
			Action:         "Ines turns toward the window",
			ShotType:       "medium",
			CameraAngle:    "low",
			Composition:    "rule of thirds",
			Lighting:       "backlit",
			CharacterPoses: map[string]string{"Ines": "hand on rail"},
			Effects:        []string{"rain streaks"},
		},
		ImageURL:     "https://img.example/" + id + ".png",
		CharacterIDs: characterIDs,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

// Dialogue returns a dialogue of panelID spoken by speakerID.
func Dialogue(id, panelID string, order int, speakerID string, created time.Time) *types.Dialogue {
	return &types.Dialogue{
		ID:      id,
		PanelID: panelID,
		Order:   order,
		Content: "Did you hear that?",
		Type:    types.DialogueSpeech,
		Style: types.DialogueStyle{
			BubbleStyle: "jagged",
			FontSize:    14,
			Emphasis:    true,
			Position:    "top-left",
		},
		Emotion:   "fear",
		SpeakerID: speakerID,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// Character returns a character of projectID with every nested attribute set.
func Character(id, projectID string, created time.Time) *types.Character {
	return &types.Character{
		ID:          id,
		ProjectID:   projectID,
		Name:        "Ines " + id,
		Role:        "protagonist",
		Description: "Last keeper of the north light.",
		Traits:      []string{"stubborn", "kind"},
		Attributes: types.CharacterAttributes{
			Body: types.BodyAttributes{Build: "wiry", Height: "170cm", SkinTone: "olive", Age: 34},
			Face: types.FaceAttributes{
				Shape:    "long",
				EyeColor: "grey",
				EyeShape: "hooded",
				Features: []string{"scar over left brow"},
			},
			Hair: types.HairAttributes{Color: "black", Style: "braided", Length: "long"},
			Style: types.StyleGuide{
				ArtStyle: "ink wash",
				Palette:  []string{"#1b2a34", "#d9c9a3"},
				Outfit:   "oilskin coat",
				Notes:    "always barefoot indoors",
			},
		},
		ReferenceImages: []string{"https://img.example/ines-ref.png"},
		CreatedAt:       created,
		UpdatedAt:       created,
	}
}

// Outfit returns an outfit template of projectID.
func Outfit(id, projectID string, created time.Time) *types.OutfitTemplate {
	return &types.OutfitTemplate{
		ID:          id,
		ProjectID:   projectID,
		Name:        "Oilskin",
		Description: "Foul weather gear.",
		Category:    "work",
		Components:  []string{"coat", "boots"},
		Tags:        []string{"rain"},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

// Location returns a location template of projectID.
func Location(id, projectID string, created time.Time) *types.LocationTemplate {
	return &types.LocationTemplate{
		ID:          id,
		ProjectID:   projectID,
		Name:        "Lamp room",
		Description: "Top of the lighthouse.",
		Category:    "interior",
		Lighting:    "rotating beam",
		Props:       []string{"lens", "logbook"},
		Tags:        []string{"lighthouse"},
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}
