package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/almanac/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Listen string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar over HTTP",
		Long: `Start the HTTP server: the month grid and event CRUD as a JSON
API, plus ICS export. When the config carries auth credentials the API
requires Basic Auth; when it carries a backup schedule, periodic snapshots
of the persisted collection are written alongside it.

Example:
  almanac serve
  almanac serve --listen 0.0.0.0:9090`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions, cmd *cobra.Command) error {
	st, cfg, b, closeFn, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeFn()

	listen := cfg.Listen
	if opts.Listen != "" {
		listen = opts.Listen
	}

	srv := server.New(st,
		server.WithAuth(cfg.Auth),
		server.WithCalendarName(cfg.CalendarName),
		server.WithLogger(slog.Default()),
	)

	if cfg.BackupCron != "" {
		// Snapshots go through the store's own bridge so they serialize
		// with saves and see the same data on every backend.
		backup := server.NewBackup(b, slog.Default())
		if err := backup.Start(cfg.BackupCron); err != nil {
			return WrapExitError(ExitCommandError, "failed to start backup schedule", err)
		}
		defer backup.Stop()
	}

	httpSrv := &http.Server{
		Addr:    listen,
		Handler: srv.Handler(),
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		slog.Info("server starting", "listen", listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s. Press Ctrl-C to stop.\n", listen)

	select {
	case err := <-errChan:
		return WrapExitError(ExitCommandError, "server error", err)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return WrapExitError(ExitCommandError, "shutdown error", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
