// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package workers

import (
	"context"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/service"
)

// periodicSyncWorker runs one catch-up sync pass at startup and then hands
// the schedule over to the sync manager's periodic timer.
type periodicSyncWorker struct {
	manager service.SyncManager
	logger  *logger.Logger
}

// NewPeriodicSyncWorker returns the worker that boots the sync loop.
func NewPeriodicSyncWorker(manager service.SyncManager, log *logger.Logger) Worker {
	return &periodicSyncWorker{manager: manager, logger: log}
}

func (w *periodicSyncWorker) Run() {
	w.logger.Info().Msg("starting periodic sync worker")

	go func() {
		if err := w.manager.ForceSyncNow(context.Background()); err != nil {
			w.logger.Err(err).Msg("initial sync pass failed")
		}
	}()
	w.manager.StartPeriodicSync()
}
