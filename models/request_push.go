// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package models

// PushRequest uploads a batch of pending local records for one collection.
type PushRequest struct {
	// Collection identifies the logical dataset the records belong to.
	Collection string `json:"collection"`

	// Records is the batch of pending local records being uploaded.
	Records []Record `json:"records"`

	// Length is the number of entries in Records. Provided so the server
	// can validate the payload without iterating it.
	Length int `json:"length"`

	// Hash is the HMAC-SHA256 transport integrity hash computed over
	// Records. Filled in by the adapter, never by callers.
	Hash string `json:"hash,omitempty"`
}

// PushResponse reports which uploaded records the server accepted. Records
// absent from Accepted stay pending locally and are retried on a later push.
type PushResponse struct {
	Accepted []string `json:"accepted"`
}

// DeletedIDsResponse carries the server's tombstone list for one collection.
// Any id present here must be suppressed everywhere it propagates.
type DeletedIDsResponse struct {
	DeletedIDs []string `json:"deleted_ids"`
}
