package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storyboard/pkg/storyboard"
)

const modulePath = "github.com/mesh-intelligence/storyboard"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the storyboard version",
		Args:  argsError(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "storyboard v%s\nmodule: %s\nbackends: %v\n",
				storyboard.Version, modulePath, storyboard.Backends())
			return nil
		},
	}
}
