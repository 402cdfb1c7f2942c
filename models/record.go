// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package models

import (
	"encoding/json"
	"time"
)

// Record sync statuses, owned by the local cache. The sync core only reads
// the field: "pending" records are uploaded on the next push, "synced"
// records are known to the server.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
)

// Record is one synchronizable item of a collection. The payload is opaque
// to the sync core; only ID and UpdatedAt participate in reconciliation.
type Record struct {
	// ID is unique and stable within its collection.
	ID string `json:"id"`

	// Data is the opaque payload. The core never inspects it.
	Data json.RawMessage `json:"data"`

	// UpdatedAt is the instant of the record's last mutation. Mandatory for
	// any record entering reconciliation; nil marks a malformed record,
	// which conservatively loses against any timestamped counterpart.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// SyncStatus is SyncStatusPending or SyncStatusSynced. Set by the local
	// cache, read-only to the sync core.
	SyncStatus string `json:"sync_status"`
}

// Conflict resolutions. The resolution names the side whose record survived.
const (
	ResolutionServerWon = "server-won"
	ResolutionLocalWon  = "local-won"
)

// Conflict is emitted when the same id exists on both replicas with
// materially different UpdatedAt instants. Conflicts are telemetry, not
// errors: the merge already picked a winner.
type Conflict struct {
	ID         string `json:"id"`
	Resolution string `json:"resolution"`

	LocalUpdatedAt  *time.Time `json:"local_updated_at,omitempty"`
	ServerUpdatedAt *time.Time `json:"server_updated_at,omitempty"`
}

// ReconcileResult is the reconciler's output: exactly one record per
// distinct id surviving tombstone removal, plus every conflict detected.
// Merge order is not significant.
type ReconcileResult struct {
	Merged    []Record   `json:"merged"`
	Conflicts []Conflict `json:"conflicts"`
}
