// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package config

// validate checks that the final [ClientConfig] satisfies all invariants
// required before the client runtime can start.
//
// Returns nil if the configuration is valid, or one of the sentinel errors
// from errors.go otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if len(cfg.Sync.Collections) == 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
