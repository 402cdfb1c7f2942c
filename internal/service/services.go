// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"github.com/voltgrid/battsync/internal/adapter"
	"github.com/voltgrid/battsync/internal/config"
	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/internal/store"
)

// ClientServices bundles every service the client binary uses.
type ClientServices struct {
	SyncManager SyncManager
	Readings    ReadingsService
}

// NewClientServices wires the sync manager and the readings service on top
// of the local cache and the HTTP transport.
func NewClientServices(storages *store.ClientStorages, transport adapter.Transport, cfg *config.ClientConfig, log *logger.Logger) *ClientServices {
	manager := NewSyncManager(
		storages.Cache,
		transport,
		cfg.Sync.Collections,
		cfg.Workers.SyncInterval,
		log,
	)

	return &ClientServices{
		SyncManager: manager,
		Readings:    NewReadingsService(storages.Cache, manager, log),
	}
}
