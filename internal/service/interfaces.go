// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"context"

	"github.com/voltgrid/battsync/models"
)

// DecisionEngine compares local and server collection metadata and decides
// what the sync pass should do. Implementations must be pure: no IO, no
// clock reads, no mutation of the inputs.
type DecisionEngine interface {
	Decide(local models.CollectionMetadata, server models.CollectionMetadata) models.SyncDecision
}

// Reconciler merges a full local and server snapshot of one collection into
// a single record set, honoring server-side tombstones.
type Reconciler interface {
	Reconcile(ctx context.Context, local []models.Record, server []models.Record, deletedIDs []string) (models.ReconcileResult, error)
}

// SyncManager owns the periodic sync lifecycle for the whole local cache.
// All methods are safe for concurrent use.
type SyncManager interface {
	StartPeriodicSync()
	StopPeriodicSync()
	ResetPeriodicTimer()
	ForceSyncNow(ctx context.Context) error
	Status() models.SyncStatus
	Destroy()
}

// ReadingsService persists battery readings locally and nudges the sync
// machinery so the new data reaches the server promptly.
type ReadingsService interface {
	RecordReading(ctx context.Context, reading models.BatteryReading) (models.Record, error)
}
