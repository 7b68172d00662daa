package cli

import (
	"fmt"

	"github.com/roach88/almanac/internal/bridge"
	"github.com/roach88/almanac/internal/config"
	"github.com/roach88/almanac/internal/store"
)

// openStore loads the config, opens the configured bridge, and returns a
// loaded store with autosave armed. The bridge is returned alongside the
// store so callers that persist outside it (backup snapshots) share the
// same instance and serialize with its saves. The returned close func
// releases backend resources and is safe to call for every backend.
func openStore(opts *RootOptions) (*store.Store, *config.Config, bridge.Bridge, func() error, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	b, closeFn, err := openBridge(cfg)
	if err != nil {
		return nil, nil, nil, nil, WrapExitError(ExitCommandError, "failed to open storage", err)
	}

	st := store.New(b)
	if err := st.Load(); err != nil {
		closeFn()
		return nil, nil, nil, nil, WrapExitError(ExitCommandError, "failed to load events", err)
	}
	st.EnableAutosave()
	return st, cfg, b, closeFn, nil
}

func openBridge(cfg *config.Config) (bridge.Bridge, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return bridge.NewMemory(), noop, nil
	case config.BackendFile:
		return bridge.NewFile(cfg.Storage.Path), noop, nil
	case config.BackendSQLite:
		db, err := bridge.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
