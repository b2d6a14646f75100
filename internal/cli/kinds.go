package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/storyboard/pkg/storyboard"
	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// kind binds one entity kind to its Service calls. Payloads are JSON using
// the entity's field names; update payloads name only the fields to change.
type kind struct {
	name   string
	parent string

	create func(ctx context.Context, s *storyboard.Service, payload []byte) (any, error)
	get    func(ctx context.Context, s *storyboard.Service, id string) (any, error)
	list   func(ctx context.Context, s *storyboard.Service, parentID string) (any, error)
	update func(ctx context.Context, s *storyboard.Service, id string, payload []byte) error
	remove func(ctx context.Context, s *storyboard.Service, id string) error
}

// newKind adapts the typed Service methods for one entity kind.
func newKind[E, P any](
	name, parent string,
	create func(*storyboard.Service, context.Context, *E) (*E, error),
	get func(*storyboard.Service, context.Context, string) (*E, error),
	list func(*storyboard.Service, context.Context, string) ([]*E, error),
	update func(*storyboard.Service, context.Context, string, P) error,
	remove func(*storyboard.Service, context.Context, string) error,
) kind {
	return kind{
		name:   name,
		parent: parent,
		create: func(ctx context.Context, s *storyboard.Service, payload []byte) (any, error) {
			in := new(E)
			if err := decodePayload(payload, in); err != nil {
				return nil, err
			}
			return create(s, ctx, in)
		},
		get: func(ctx context.Context, s *storyboard.Service, id string) (any, error) {
			e, err := get(s, ctx, id)
			if err != nil || e == nil {
				return nil, err
			}
			return e, nil
		},
		list: func(ctx context.Context, s *storyboard.Service, parentID string) (any, error) {
			return list(s, ctx, parentID)
		},
		update: func(ctx context.Context, s *storyboard.Service, id string, payload []byte) error {
			var patch P
			if err := decodePayload(payload, &patch); err != nil {
				return err
			}
			return update(s, ctx, id, patch)
		},
		remove: func(ctx context.Context, s *storyboard.Service, id string) error {
			return remove(s, ctx, id)
		},
	}
}

// decodePayload decodes one JSON object strictly.
func decodePayload(payload []byte, into any) error {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return userError(fmt.Errorf("%w: %v", types.ErrInvalidData, err))
	}
	return nil
}

func listProjects(s *storyboard.Service, ctx context.Context, _ string) ([]*types.Project, error) {
	return s.ListProjects(ctx)
}

var kinds = map[string]kind{}

func register(k kind) { kinds[k.name] = k }

func init() {
	type svc = storyboard.Service
	register(newKind("project", "",
		(*svc).CreateProject, (*svc).GetProject, listProjects, (*svc).UpdateProject, (*svc).DeleteProject))
	register(newKind("chapter", "project",
		(*svc).CreateChapter, (*svc).GetChapter, (*svc).ListChapters, (*svc).UpdateChapter, (*svc).DeleteChapter))
	register(newKind("scene", "chapter",
		(*svc).CreateScene, (*svc).GetScene, (*svc).ListScenes, (*svc).UpdateScene, (*svc).DeleteScene))
	register(newKind("panel", "scene",
		(*svc).CreatePanel, (*svc).GetPanel, (*svc).ListPanels, (*svc).UpdatePanel, (*svc).DeletePanel))
	register(newKind("dialogue", "panel",
		(*svc).CreatePanelDialogue, (*svc).GetPanelDialogue, (*svc).ListPanelDialogues, (*svc).UpdatePanelDialogue, (*svc).DeletePanelDialogue))
	register(newKind("character", "project",
		(*svc).CreateCharacter, (*svc).GetCharacter, (*svc).ListCharacters, (*svc).UpdateCharacter, (*svc).DeleteCharacter))
	register(newKind("outfit", "project",
		(*svc).CreateOutfitTemplate, (*svc).GetOutfitTemplate, (*svc).ListOutfitTemplates, (*svc).UpdateOutfitTemplate, (*svc).DeleteOutfitTemplate))
	register(newKind("location", "project",
		(*svc).CreateLocationTemplate, (*svc).GetLocationTemplate, (*svc).ListLocationTemplates, (*svc).UpdateLocationTemplate, (*svc).DeleteLocationTemplate))
}

// kindNames returns the registered kind names, sorted.
func kindNames() string {
	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// lookupKind returns the kind named name or a user error listing the valid ones.
func lookupKind(name string) (kind, error) {
	k, ok := kinds[strings.ToLower(name)]
	if !ok {
		return kind{}, userError(fmt.Errorf("unknown kind %q (valid: %s)", name, kindNames()))
	}
	return k, nil
}
