package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories and the store",
		Long: "init writes a default config.yaml if none exists, then attaches the\n" +
			"configured backend once so its data directory and schema exist.",
		Args: argsError(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return flags.withSession(cmd, func(s *session) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "storyboard initialized")
				fmt.Fprintln(out, "  backend:", s.settings.backend.Backend)
				fmt.Fprintln(out, "  config: ", s.settings.configDir)
				fmt.Fprintln(out, "  data:   ", s.settings.backend.DataDir)
				return nil
			})
		},
	}
}
