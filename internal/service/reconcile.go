// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package service

import (
	"context"
	"time"

	"github.com/voltgrid/battsync/models"
)

type reconciler struct{}

// NewReconciler returns the last-write-wins record merger.
func NewReconciler() Reconciler {
	return reconciler{}
}

// Reconcile merges two full snapshots of a collection. Server tombstones
// dominate everything: a deleted ID is dropped even when the local copy has
// a later UpdatedAt. Records present on only one side pass through as-is.
// Records present on both sides resolve to the copy with the strictly later
// UpdatedAt (millisecond precision); divergent pairs are reported as
// conflicts so the caller can log them.
//
// The inputs are never mutated and the merged order is deterministic:
// server order first, then local-only records in local order.
func (reconciler) Reconcile(ctx context.Context, local, server []models.Record, deletedIDs []string) (models.ReconcileResult, error) {
	result := models.ReconcileResult{
		Merged:    make([]models.Record, 0, len(local)+len(server)),
		Conflicts: make([]models.Conflict, 0),
	}

	deleted := make(map[string]struct{}, len(deletedIDs))
	for _, id := range deletedIDs {
		deleted[id] = struct{}{}
	}

	localIndex := make(map[string]models.Record, len(local))
	for _, record := range local {
		localIndex[record.ID] = record
	}
	serverIDs := make(map[string]struct{}, len(server))
	for _, record := range server {
		serverIDs[record.ID] = struct{}{}
	}

	for _, serverRecord := range server {
		if err := ctx.Err(); err != nil {
			return models.ReconcileResult{}, err
		}
		if _, gone := deleted[serverRecord.ID]; gone {
			continue
		}
		localRecord, onLocal := localIndex[serverRecord.ID]
		if !onLocal {
			result.Merged = append(result.Merged, serverRecord)
			continue
		}
		winner, conflict := resolvePair(localRecord, serverRecord)
		result.Merged = append(result.Merged, winner)
		if conflict != nil {
			result.Conflicts = append(result.Conflicts, *conflict)
		}
	}

	for _, localRecord := range local {
		if err := ctx.Err(); err != nil {
			return models.ReconcileResult{}, err
		}
		if _, gone := deleted[localRecord.ID]; gone {
			continue
		}
		if _, onServer := serverIDs[localRecord.ID]; onServer {
			continue
		}
		result.Merged = append(result.Merged, localRecord)
	}

	return result, nil
}

// resolvePair picks between two copies of the same record. A missing
// UpdatedAt loses to a timestamped one; when both are missing or the
// truncated instants are equal the server copy wins without raising a
// conflict, so repeated reconciles converge.
func resolvePair(local, server models.Record) (models.Record, *models.Conflict) {
	switch {
	case local.UpdatedAt == nil && server.UpdatedAt == nil:
		return server, nil
	case local.UpdatedAt == nil:
		return server, nil
	case server.UpdatedAt == nil:
		return local, nil
	}

	localTS := local.UpdatedAt.Truncate(time.Millisecond)
	serverTS := server.UpdatedAt.Truncate(time.Millisecond)

	switch {
	case serverTS.After(localTS):
		return server, &models.Conflict{
			ID:              server.ID,
			Resolution:      models.ResolutionServerWon,
			LocalUpdatedAt:  local.UpdatedAt,
			ServerUpdatedAt: server.UpdatedAt,
		}
	case localTS.After(serverTS):
		return local, &models.Conflict{
			ID:              local.ID,
			Resolution:      models.ResolutionLocalWon,
			LocalUpdatedAt:  local.UpdatedAt,
			ServerUpdatedAt: server.UpdatedAt,
		}
	default:
		return server, nil
	}
}
