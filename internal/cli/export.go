package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/ics"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the calendar as ICS",
		Long: `Write the whole event collection as an iCalendar document.

Example:
  almanac export -o calendar.ics
  almanac export > calendar.ics`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to file instead of stdout")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	st, cfg, _, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	w := cmd.OutOrStdout()
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to create output file", err)
		}
		defer f.Close()
		w = f
	}

	if err := ics.Export(w, st.Events(), cfg.CalendarName, time.Now()); err != nil {
		return WrapExitError(ExitCommandError, "export failed", err)
	}
	return nil
}
