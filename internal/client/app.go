// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package client

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/service"
	"github.com/voltgrid/battsync/internal/workers"
)

// App is the sync agent process: background workers plus a signal-driven
// shutdown that tears the sync manager down cleanly.
type App struct {
	services *service.ClientServices
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp assembles the agent from its wired services.
func NewApp(services *service.ClientServices, log *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client app: nil services")
	}

	syncWorkers := workers.NewWorkers(
		workers.NewPeriodicSyncWorker(services.SyncManager, log),
	)

	return &App{
		services: services,
		workers:  syncWorkers,
		logger:   log,
	}, nil
}

// Run starts the background workers and blocks until SIGINT or SIGTERM,
// then destroys the sync manager so no further passes can start.
func (a *App) Run() error {
	a.workers.Run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	a.logger.Info().Str("signal", sig.String()).Msg("shutting down sync agent")
	a.services.SyncManager.Destroy()

	return nil
}
