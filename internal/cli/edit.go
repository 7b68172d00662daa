package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/event"
)

// EditOptions holds flags for the edit command.
type EditOptions struct {
	*RootOptions
	Title string
	Desc  string
	Date  string
}

// NewEditCommand creates the edit command.
func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing event",
		Long: `Edit an existing event in place. Only the given flags change;
omitted fields keep their stored values.

Example:
  almanac edit 1757203200000 --title "Moved standup" --date 2026-09-16`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "new title")
	cmd.Flags().StringVar(&opts.Desc, "desc", "", "new description")
	cmd.Flags().StringVar(&opts.Date, "date", "", "new day as YYYY-MM-DD")

	return cmd
}

func runEdit(opts *EditOptions, rawID string, cmd *cobra.Command) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid event id %q", rawID), err)
	}

	st, _, _, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	current, ok := st.Get(id)
	if !ok {
		return NewExitError(ExitFailure, fmt.Sprintf("no event with id %d", id))
	}

	if cmd.Flags().Changed("title") {
		current.Title = opts.Title
	}
	if cmd.Flags().Changed("desc") {
		current.Desc = opts.Desc
	}
	if cmd.Flags().Changed("date") {
		date, err := time.Parse(dayLayout, opts.Date)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --date %q, want YYYY-MM-DD", opts.Date), err)
		}
		current.Date = date
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if err := st.Update(current); err != nil {
		if event.IsValidationError(err) {
			_ = formatter.Error("E_VALIDATION", err.Error())
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to update event", err)
	}

	if opts.Format == "json" {
		return formatter.Success(eventPayload(current))
	}
	return formatter.Success(fmt.Sprintf("updated event %d", id))
}
