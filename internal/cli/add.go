package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/event"
)

const dayLayout = "2006-01-02"

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Date string
	Desc string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event to the calendar",
		Long: `Add an event to the calendar and persist it.

Example:
  almanac add "Team sync" --date 2026-09-15 --desc "weekly planning"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Date, "date", "", "event day as YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&opts.Desc, "desc", "", "event description")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runAdd(opts *AddOptions, title string, cmd *cobra.Command) error {
	date, err := time.Parse(dayLayout, opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --date %q, want YYYY-MM-DD", opts.Date), err)
	}

	st, _, _, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	added, err := st.Add(event.NewEventInput{Title: title, Desc: opts.Desc, Date: date})
	if err != nil {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
		if event.IsValidationError(err) {
			_ = formatter.Error("E_VALIDATION", err.Error())
			return NewExitError(ExitFailure, err.Error())
		}
		return WrapExitError(ExitCommandError, "failed to add event", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return formatter.Success(eventPayload(added))
	}
	return formatter.Success(fmt.Sprintf("added event %d on %s: %s", added.ID, added.Date.Format(dayLayout), added.Title))
}

// eventPayload is the JSON shape events take in CLI output.
func eventPayload(ev event.Event) map[string]any {
	out := map[string]any{
		"id":    ev.ID,
		"title": ev.Title,
		"desc":  ev.Desc,
	}
	if ev.HasDate() {
		out["date"] = ev.Date.UTC().Format(dayLayout)
	}
	return out
}
