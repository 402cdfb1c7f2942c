// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

// Package adapter provides transport-layer abstractions for communicating
// with the remote fleet store.
//
// The primary abstraction is [Transport], which decouples the sync core from
// the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPTransport]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/voltgrid/battsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/transport_mock.go -package=mock

// Transport defines transport-agnostic communication with the remote fleet
// store. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
//
// Request timeouts are the implementation's concern: every method must
// eventually return when the server never responds.
type Transport interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests. The hosting application obtains the token from
	// its own authentication flow.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// GetRemoteMetadata fetches the authority's summary metadata for one
	// collection. The returned value carries ServerTime, the authority's
	// clock reading, which is used for logging only.
	GetRemoteMetadata(ctx context.Context, collection string) (models.CollectionMetadata, error)

	// Pull retrieves the full remote record set for the collection.
	Pull(ctx context.Context, collection string) ([]models.Record, error)

	// Push uploads a batch of pending local records. A transport integrity
	// hash covering the payload is computed and attached automatically.
	// The response lists the ids the server accepted; records left out stay
	// pending locally.
	Push(ctx context.Context, collection string, records []models.Record) (models.PushResponse, error)

	// GetDeletedIDs fetches the server's tombstone list for the collection.
	// A non-nil since narrows the list to deletions after that instant.
	GetDeletedIDs(ctx context.Context, collection string, since *time.Time) ([]string, error)
}
