package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an event",
		Long: `Remove an event from the calendar. Removing an id that is not
present succeeds without changing anything.

Example:
  almanac remove 1757203200000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, rawID string, cmd *cobra.Command) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid event id %q", rawID), err)
	}

	st, _, _, closeFn, err := openStore(opts)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := st.Delete(id); err != nil {
		return WrapExitError(ExitCommandError, "failed to remove event", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(map[string]any{"id": id})
	}
	return formatter.Success(fmt.Sprintf("removed event %d", id))
}
