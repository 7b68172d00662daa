package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/controller"
	"github.com/roach88/almanac/internal/grid"
)

const monthLayout = "2006-01"

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Ref string

	// now is overridable for tests.
	now func() time.Time
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts, now: time.Now}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the month grid",
		Long: `Render the month grid with event markers, followed by the
events of that month.

Example:
  almanac show
  almanac show --ref 2026-10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Ref, "ref", "", "month to show as YYYY-MM (default: current month)")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	st, _, _, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	today := opts.now().UTC()
	ctrl := controller.New(st, today)
	if opts.Ref != "" {
		ref, err := time.Parse(monthLayout, opts.Ref)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --ref %q, want YYYY-MM", opts.Ref), err)
		}
		ctrl.JumpTo(ref)
	}

	renderMonth(cmd.OutOrStdout(), ctrl.MonthLabel(), ctrl.RenderableDays())
	return nil
}

const cellWidth = 5

// renderMonth writes a Monday-first week grid. Days carrying events are
// marked with an asterisk, the selected day with brackets. Below the grid,
// each event of the month is listed with its title aligned by display
// width so wide characters keep columns straight.
func renderMonth(w io.Writer, label string, days []controller.DayView) {
	fmt.Fprintln(w, label)
	var header strings.Builder
	for _, name := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		header.WriteString(runewidth.FillRight(name, cellWidth))
	}
	fmt.Fprintln(w, strings.TrimRight(header.String(), " "))

	var row strings.Builder
	pad := mondayIndex(days[0].Date.Weekday())
	for i := 0; i < pad; i++ {
		row.WriteString(strings.Repeat(" ", cellWidth))
	}

	for _, day := range days {
		cell := fmt.Sprintf("%d", day.Date.Day())
		if len(day.Events) > 0 {
			cell += "*"
		}
		if day.Selected {
			cell = "[" + cell + "]"
		}
		row.WriteString(runewidth.FillRight(cell, cellWidth))

		if mondayIndex(day.Date.Weekday()) == 6 {
			fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(row.String(), " "))
	}

	var lines []string
	titleWidth := 0
	for _, day := range days {
		for _, ev := range day.Events {
			if tw := runewidth.StringWidth(ev.Title); tw > titleWidth {
				titleWidth = tw
			}
		}
	}
	for _, day := range days {
		for _, ev := range day.Events {
			line := fmt.Sprintf("  %s  %s", grid.DayKey(day.Date), runewidth.FillRight(ev.Title, titleWidth))
			if ev.Desc != "" {
				line += "  " + ev.Desc
			}
			lines = append(lines, strings.TrimRight(line, " "))
		}
	}
	if len(lines) > 0 {
		fmt.Fprintln(w)
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
}

// mondayIndex maps time.Weekday (Sunday=0) onto a Monday-first column index.
func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
