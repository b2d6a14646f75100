package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

func newAssignCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <panel-id> <character-id>",
		Short: "Add a character to a panel",
		Args:  argsError(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				if err := s.AssignCharacterToPanel(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "assigned %s to %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func newUnassignCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <panel-id> <character-id>",
		Short: "Remove a character from a panel",
		Args:  argsError(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				if err := s.RemoveCharacterFromPanel(cmd.Context(), args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s from %s\n", args[1], args[0])
				return nil
			})
		},
	}
}

func newAppearancesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "appearances <character-id>",
		Short: "List the panels and dialogue lines that reference a character",
		Args:  argsError(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				refs, err := s.CharacterAppearances(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), refs)
			})
		},
	}
}

func newTreeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <project-id>",
		Short: "Print a project with its whole subtree",
		Args:  argsError(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				tree, err := s.GetProjectWithRelations(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if tree == nil {
					return userError(fmt.Errorf("project %q: %w", args[0], types.ErrNotFound))
				}
				return printJSON(cmd.OutOrStdout(), tree)
			})
		},
	}
}

func newCleanCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete rows whose parent is gone and drop stale references",
		Args:  argsError(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				report, err := s.CleanOrphanedData(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), report)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "made %d repairs\n", report.Total())
				fmt.Fprintf(out, "  chapters:    %d\n", report.Chapters)
				fmt.Fprintf(out, "  scenes:      %d\n", report.Scenes)
				fmt.Fprintf(out, "  panels:      %d\n", report.Panels)
				fmt.Fprintf(out, "  dialogue:    %d\n", report.Dialogues)
				fmt.Fprintf(out, "  characters:  %d\n", report.Characters)
				fmt.Fprintf(out, "  outfits:     %d\n", report.OutfitTemplates)
				fmt.Fprintf(out, "  locations:   %d\n", report.LocationTemplates)
				fmt.Fprintf(out, "  panel links: %d\n", report.PanelLinks)
				fmt.Fprintf(out, "  speakers:    %d\n", report.Speakers)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}
