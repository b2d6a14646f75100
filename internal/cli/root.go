// Package cli implements the storyboard command-line tool, a maintenance
// and inspection surface over the storyboard Service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds the global flag values for one command tree.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	logMode   string
	global    bool
}

// NewRootCmd creates the "storyboard" command with its global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "storyboard",
		Short: "Inspect and maintain a manga storyboard content graph",
		Long: "storyboard manages projects, chapters, scenes, panels, dialogue,\n" +
			"characters and templates stored in a docstore or sqlite backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return userError(err) })

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&flags.dataDir, "data-dir", "", "data directory (default: ./.storyboard)")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: docstore or sqlite")
	pf.StringVar(&flags.logMode, "log-mode", "", "log mode: dev, prod or quiet")
	pf.BoolVar(&flags.global, "global", false, "use the platform data directory instead of ./.storyboard")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(flags),
		newCreateCmd(flags),
		newGetCmd(flags),
		newListCmd(flags),
		newUpdateCmd(flags),
		newDeleteCmd(flags),
		newAssignCmd(flags),
		newUnassignCmd(flags),
		newAppearancesCmd(flags),
		newTreeCmd(flags),
		newCleanCmd(flags),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "storyboard:", err)
	}
	return exitCode(err)
}

// Main is the entry point used by cmd/storyboard.
func Main() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// exitError carries the exit code for an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// userErrors are sentinel errors caused by the caller's input.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	types.ErrJournalModeUnknown,
	types.ErrBusyTimeoutInvalid,
}

// exitCode maps err to a process exit code. Errors that were not
// classified explicitly are user errors when they wrap an input sentinel
// and system errors otherwise.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	if isUsageError(err) {
		return exitUserError
	}
	return exitSysError
}

// isUsageError matches the command lookup errors cobra returns unwrapped.
func isUsageError(err error) bool {
	return strings.HasPrefix(err.Error(), "unknown command")
}

// argsError wraps a cobra positional args validator so that its failures
// exit as user errors.
func argsError(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}
