package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// readPayload returns the JSON argument, or stdin when the argument is "-".
func readPayload(cmd *cobra.Command, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, sysError(fmt.Errorf("read stdin: %w", err))
	}
	return data, nil
}

func newCreateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "create <kind> <json|->",
		Short: "Create an entity and print it with its assigned id",
		Example: `  storyboard create project '{"title":"Tidewater"}'
  storyboard create chapter '{"mangaProjectId":"<id>","chapterNumber":1}'
  cat panel.json | storyboard create panel -`,
		Args: argsError(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(cmd, args[1])
			if err != nil {
				return err
			}
			return flags.withSession(cmd, func(s *session) error {
				created, err := k.create(cmd.Context(), s.Service, payload)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), created)
			})
		},
	}
}

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <kind> <id>",
		Short: "Print one entity",
		Args:  argsError(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			return flags.withSession(cmd, func(s *session) error {
				entity, err := k.get(cmd.Context(), s.Service, args[1])
				if err != nil {
					return err
				}
				if entity == nil {
					return userError(fmt.Errorf("%s %q: %w", k.name, args[1], types.ErrNotFound))
				}
				return printJSON(cmd.OutOrStdout(), entity)
			})
		},
	}
}

func newListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind> [parent-id]",
		Short: "List entities in reading order",
		Long: "list prints every project, or the children of one parent for the\n" +
			"other kinds: chapters, characters, outfits and locations of a project,\n" +
			"scenes of a chapter, panels of a scene, dialogue of a panel.",
		Args: argsError(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			var parentID string
			switch {
			case k.parent == "" && len(args) == 2:
				return userError(fmt.Errorf("%s has no parent; list takes no id", k.name))
			case k.parent != "" && len(args) == 1:
				return userError(fmt.Errorf("list %s needs a %s id", k.name, k.parent))
			case len(args) == 2:
				parentID = args[1]
			}
			return flags.withSession(cmd, func(s *session) error {
				listed, err := k.list(cmd.Context(), s.Service, parentID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), listed)
			})
		},
	}
}

func newUpdateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "update <kind> <id> <json|->",
		Short: "Change the named fields of an entity",
		Example: `  storyboard update chapter <id> '{"title":"Low Tide","isPublished":true}'
  storyboard update panel <id> '{"characterIds":[]}'`,
		Args: argsError(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			payload, err := readPayload(cmd, args[2])
			if err != nil {
				return err
			}
			return flags.withSession(cmd, func(s *session) error {
				if err := k.update(cmd.Context(), s.Service, args[1], payload); err != nil {
					return err
				}
				updated, err := k.get(cmd.Context(), s.Service, args[1])
				if err != nil {
					return err
				}
				if updated == nil {
					return userError(fmt.Errorf("%s %q: %w", k.name, args[1], types.ErrNotFound))
				}
				return printJSON(cmd.OutOrStdout(), updated)
			})
		},
	}
}

func newDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete an entity and everything beneath it",
		Args:  argsError(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := lookupKind(args[0])
			if err != nil {
				return err
			}
			return flags.withSession(cmd, func(s *session) error {
				if err := k.remove(cmd.Context(), s.Service, args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s %s\n", k.name, args[1])
				return nil
			})
		},
	}
}
