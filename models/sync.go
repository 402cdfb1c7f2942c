// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package models

import "time"

// SyncAction is the kind of work the sync manager performs for one
// collection after comparing local and remote metadata.
type SyncAction string

const (
	// ActionPull replaces the local replica of the collection with the
	// server's full record set.
	ActionPull SyncAction = "pull"

	// ActionPush uploads the collection's pending local records to the
	// server.
	ActionPush SyncAction = "push"

	// ActionSkip performs no I/O; the replicas are already consistent.
	ActionSkip SyncAction = "skip"

	// ActionReconcile fetches both full record sets plus the server's
	// tombstone list and merges them field by field. Produced by the sync
	// manager when metadata alone cannot disambiguate (both sides carry
	// independent writes), never by the decision engine itself.
	ActionReconcile SyncAction = "reconcile"
)

// CollectionMetadata summarises one logical collection on one replica.
// The decision engine compares a local and a remote value for the same
// collection; it never inspects individual records.
type CollectionMetadata struct {
	// Collection is the stable identifier of the logical dataset
	// (e.g. "readings", "alerts").
	Collection string `json:"collection"`

	// RecordCount is the number of records currently held. Zero means the
	// collection is semantically empty regardless of LastModified.
	RecordCount int `json:"record_count"`

	// LastModified is the instant of the most recent mutation, or nil when
	// the replica has never been written (or provenance is unknown).
	LastModified *time.Time `json:"last_modified,omitempty"`

	// ServerTime is the authority's clock reading at response time. Only
	// present on remote metadata and only used for logging; decisions
	// compare LastModified values, never wall-clock skew.
	ServerTime *time.Time `json:"server_time,omitempty"`
}

// SyncDecision is the decision engine's verdict for one collection. It is
// never mutated once produced. Reason strings are a stable contract that
// tests and telemetry match on.
type SyncDecision struct {
	Action SyncAction `json:"action"`
	Reason string     `json:"reason"`

	// Echoed inputs, kept for observability.
	LocalCount      int        `json:"local_count"`
	ServerCount     int        `json:"server_count"`
	LocalTimestamp  *time.Time `json:"local_timestamp,omitempty"`
	ServerTimestamp *time.Time `json:"server_timestamp,omitempty"`
}

// Next-tick indicators reported by SyncStatus.NextSyncIn. The value is
// qualitative: it tells whether a tick is currently scheduled, not when.
const (
	NextSyncPending = "pending"
	NextSyncStopped = "stopped"
)

// SyncStatus is a point-in-time snapshot of the sync manager's state,
// exposed so the hosting application can render a non-blocking banner or
// poll for errors.
type SyncStatus struct {
	// IsSyncing is true only while a sync pass is in flight.
	IsSyncing bool `json:"is_syncing"`

	// LastSyncTime maps each collection to the completion instant of its
	// last successful sync.
	LastSyncTime map[string]time.Time `json:"last_sync_time"`

	// SyncError is the most recent pass error. Cleared when a pass
	// completes with every collection succeeding.
	SyncError string `json:"sync_error,omitempty"`

	// NextSyncIn is NextSyncPending when a tick is scheduled and
	// NextSyncStopped otherwise.
	NextSyncIn string `json:"next_sync_in"`
}
