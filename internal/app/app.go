package app

import (
	"context"
	"fmt"
	"net/http"

	"arenadb/pkg/arena"
	"arenadb/pkg/backup"
	"arenadb/pkg/banner"
	"arenadb/pkg/config"
	"arenadb/pkg/logger"
	"arenadb/pkg/store"
)

// App encapsulates the server components and lifecycle.
type App struct {
	cfg     *config.Config
	version string

	st        *store.Store
	forwarder *backup.Forwarder
	scheduler *backup.Scheduler
	srv       *http.Server
}

// New opens the store and wires components. It does not start the HTTP
// server; call Run to start it and block until shutdown.
func New(cfg *config.Config, version string) (*App, error) {
	port, err := store.OpenPebble(cfg.Server.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %s: %w", cfg.Server.DBPath, err)
	}
	st, err := store.Open(port)
	if err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("failed to load arena state: %w", err)
	}

	a := &App{cfg: cfg, version: version, st: st}
	if cfg.Backup.WebhookURL != "" {
		a.forwarder = &backup.Forwarder{URL: cfg.Backup.WebhookURL}
		if cfg.Backup.Enabled {
			a.scheduler = &backup.Scheduler{Store: st, Forwarder: a.forwarder, Cron: cfg.Backup.Cron}
		}
	} else {
		a.forwarder = &backup.Forwarder{}
	}
	return a, nil
}

// Run starts the backup scheduler and the HTTP server, and blocks until ctx
// is canceled or a fatal server error occurs.
func (a *App) Run(ctx context.Context) error {
	banner.Print(a.cfg, a.version)

	if a.scheduler != nil {
		cancel, err := a.scheduler.Start(ctx)
		if err != nil {
			return err
		}
		defer cancel()
	}

	errCh := a.startHTTP(arena.New())

	select {
	case <-ctx.Done():
		a.stopHTTP()
		return a.close()
	case err := <-errCh:
		_ = a.close()
		return err
	}
}

func (a *App) close() error {
	if a.st == nil {
		return nil
	}
	if err := a.st.Close(); err != nil {
		logger.Error("store_close_failed", "error", err)
		return err
	}
	return nil
}
