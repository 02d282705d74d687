// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"

	"github.com/safepass/safepass/internal/config"
	"github.com/safepass/safepass/internal/keystore"
	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/internal/service"
	"github.com/safepass/safepass/internal/store"
	"github.com/safepass/safepass/internal/tui"
	"github.com/safepass/safepass/internal/workers"
)

// App owns the full process lifecycle: storage, key material, vault
// services, the worker pool and the terminal UI.
type App struct {
	db     *store.DB
	pool   *workers.Pool
	ui     *tui.TUI
	logger *logger.Logger
}

func NewApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	db, err := store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connect storage: %w", err)
	}

	if err = db.Migrate(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	keys := keystore.NewManager(keystore.Config{
		KeysetPath:     cfg.App.KeysetPath,
		KeyringService: cfg.App.KeyringService,
	}, log)
	if err = keys.Init(ctx); err != nil {
		return nil, fmt.Errorf("init keystore: %w", err)
	}

	repos := store.NewRepositories(db, log)
	services := service.NewServices(repos, keys, log)
	pool := workers.NewPool(cfg.Workers, log)

	ui, err := tui.New(services, pool, cfg.Generator, keys.Recovered(), log)
	if err != nil {
		return nil, fmt.Errorf("create ui: %w", err)
	}

	return &App{db: db, pool: pool, ui: ui, logger: log}, nil
}

// Run starts the worker pool and blocks on the terminal UI until the user
// exits. Workers and storage are released on the way out.
func (a *App) Run(ctx context.Context) error {
	a.pool.Start(ctx)
	defer a.pool.Stop()
	defer a.db.Close()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	a.logger.Info().Msg("vault session closed")
	return nil
}
