package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/event"
	"github.com/roach88/almanac/internal/grid"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Day string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long: `List the stored events in collection order.

Example:
  almanac list
  almanac list --day 2026-09-15`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Day, "day", "", "only events on this day (YYYY-MM-DD)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	st, _, _, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	var events []event.Event
	if opts.Day != "" {
		day, err := time.Parse(dayLayout, opts.Day)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --day %q, want YYYY-MM-DD", opts.Day), err)
		}
		events = st.EventsOnDay(day)
	} else {
		events = st.Events()
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		payload := make([]map[string]any, 0, len(events))
		for _, ev := range events {
			payload = append(payload, eventPayload(ev))
		}
		return formatter.Success(payload)
	}

	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no events")
		return nil
	}
	for _, ev := range events {
		day := "(no date)"
		if ev.HasDate() {
			day = grid.DayKey(ev.Date)
		}
		line := fmt.Sprintf("%-15d %s  %s", ev.ID, day, ev.Title)
		if ev.Desc != "" {
			line += "  - " + ev.Desc
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
