package server

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/roach88/almanac/internal/bridge"
)

// backupKeyLayout names snapshot keys so they sort chronologically.
const backupKeyLayout = "20060102T150405Z"

// Backup periodically copies the persisted collection to a timestamped key
// in the same bridge, so a corrupted save can be recovered by hand.
type Backup struct {
	bridge bridge.Bridge
	logger *slog.Logger
	now    func() time.Time
	cron   *cron.Cron
}

// NewBackup creates a backup scheduler over the given bridge.
func NewBackup(b bridge.Bridge, logger *slog.Logger) *Backup {
	return &Backup{
		bridge: b,
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules snapshots on the given cron spec and begins running them.
func (b *Backup) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if err := b.Snapshot(); err != nil {
			b.logger.Error("backup snapshot failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("invalid backup schedule %q: %w", spec, err)
	}
	b.cron = c
	c.Start()
	b.logger.Info("backup schedule started", "spec", spec)
	return nil
}

// Stop halts the schedule. Safe to call when never started.
func (b *Backup) Stop() {
	if b.cron != nil {
		b.cron.Stop()
	}
}

// Snapshot copies the current events payload to a timestamped backup key.
// An absent payload (nothing ever saved) is a no-op.
func (b *Backup) Snapshot() error {
	value, ok, err := b.bridge.Get(bridge.EventsKey)
	if err != nil {
		return fmt.Errorf("read events payload: %w", err)
	}
	if !ok {
		return nil
	}

	key := BackupKey(b.now())
	if err := b.bridge.Set(key, value); err != nil {
		return fmt.Errorf("write backup %s: %w", key, err)
	}
	b.logger.Info("backup written", "key", key, "bytes", len(value))
	return nil
}

// BackupKey returns the bridge key a snapshot taken at t is stored under.
func BackupKey(t time.Time) string {
	return "backup/" + t.UTC().Format(backupKeyLayout)
}
