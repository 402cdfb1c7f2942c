// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

// Package store implements the local offline cache backing the sync engine.
//
// The cache is an SQLite database holding one row per (collection, id) pair.
// Records written by the hosting application carry sync_status "pending"
// until a push succeeds; records written from the server side arrive as
// "synced". Schema is owned by the embedded goose migrations in the
// top-level migrations package.
package store

import (
	"context"

	"github.com/voltgrid/battsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_mock.go -package=mock

// Cache is the local-replica collaborator consumed by the sync manager.
// All mutations of the local replica go through this interface; the sync
// core itself never executes SQL.
type Cache interface {
	// GetMetadata summarises one collection: record count and the most
	// recent updated_at instant (nil when the collection has never been
	// written).
	GetMetadata(ctx context.Context, collection string) (models.CollectionMetadata, error)

	// GetPendingItems returns every record with sync_status "pending",
	// grouped by collection. Collections without pending records are absent
	// from the map.
	GetPendingItems(ctx context.Context) (map[string][]models.Record, error)

	// GetRecords returns the full local record set for one collection.
	GetRecords(ctx context.Context, collection string) ([]models.Record, error)

	// BulkPut upserts a batch of records into the collection inside a
	// single transaction. Records absent from the batch are left in place;
	// deletions propagate via server tombstones, not via BulkPut.
	BulkPut(ctx context.Context, collection string, records []models.Record) error

	// MarkAsSynced flips sync_status to "synced" for the given ids.
	// Unknown ids are ignored.
	MarkAsSynced(ctx context.Context, collection string, ids []string) error

	// SaveLocal stores a record captured by the hosting application with
	// sync_status "pending", stamping UpdatedAt when the caller left it nil.
	SaveLocal(ctx context.Context, collection string, record models.Record) error
}
