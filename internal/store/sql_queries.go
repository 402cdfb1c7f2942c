// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VoltGrid Labs

package store

const (
	getCollectionMetadata = `
		SELECT
			COUNT(*),
			MAX(updated_at)
		FROM records
		WHERE collection = $1;`

	getPendingRecords = `
		SELECT
			collection,
			id,
			data,
			updated_at,
			sync_status
		FROM records
		WHERE sync_status = 'pending'
		ORDER BY collection, id;`

	getCollectionRecords = `
		SELECT
			id,
			data,
			updated_at,
			sync_status
		FROM records
		WHERE collection = $1
		ORDER BY id;`

	upsertRecord = `
		INSERT INTO records (
			collection,
			id,
			data,
			updated_at,
			sync_status
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (collection, id) DO UPDATE SET
			data        = excluded.data,
			updated_at  = excluded.updated_at,
			sync_status = excluded.sync_status;`
)
