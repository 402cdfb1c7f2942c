package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/models"
)

type cacheRepository struct {
	*DB
	logger *logger.Logger
}

// NewCacheRepository constructs the SQLite-backed [Cache] implementation on
// top of an open database connection.
func NewCacheRepository(db *DB, logger *logger.Logger) Cache {
	return &cacheRepository{
		DB:     db,
		logger: logger,
	}
}

// GetMetadata implements [Cache]. MAX(updated_at) over an empty collection
// scans as NULL, which maps to a nil LastModified.
func (c *cacheRepository) GetMetadata(ctx context.Context, collection string) (models.CollectionMetadata, error) {
	var (
		count        int
		lastModified sql.NullTime
	)

	row := c.DB.QueryRowContext(ctx, getCollectionMetadata, collection)
	if err := row.Scan(&count, &lastModified); err != nil {
		c.logger.Err(err).
			Str("func", "cacheRepository.GetMetadata").
			Str("collection", collection).
			Msg("failed to scan collection metadata")
		return models.CollectionMetadata{}, fmt.Errorf("failed to read metadata for %s: %w", collection, err)
	}

	meta := models.CollectionMetadata{
		Collection:  collection,
		RecordCount: count,
	}
	if lastModified.Valid {
		ts := lastModified.Time.UTC()
		meta.LastModified = &ts
	}

	return meta, nil
}

// GetPendingItems implements [Cache].
func (c *cacheRepository) GetPendingItems(ctx context.Context) (map[string][]models.Record, error) {
	rows, err := c.DB.QueryContext(ctx, getPendingRecords)
	if err != nil {
		c.logger.Err(err).
			Str("func", "cacheRepository.GetPendingItems").
			Msg("failed to query pending records")
		return nil, fmt.Errorf("failed to query pending records: %w", err)
	}
	defer rows.Close()

	pending := make(map[string][]models.Record)
	for rows.Next() {
		var (
			collection string
			record     models.Record
			updatedAt  sql.NullTime
		)
		if err = rows.Scan(&collection, &record.ID, &record.Data, &updatedAt, &record.SyncStatus); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if updatedAt.Valid {
			ts := updatedAt.Time.UTC()
			record.UpdatedAt = &ts
		}
		pending[collection] = append(pending[collection], record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return pending, nil
}

// GetRecords implements [Cache].
func (c *cacheRepository) GetRecords(ctx context.Context, collection string) ([]models.Record, error) {
	rows, err := c.DB.QueryContext(ctx, getCollectionRecords, collection)
	if err != nil {
		c.logger.Err(err).
			Str("func", "cacheRepository.GetRecords").
			Str("collection", collection).
			Msg("failed to query collection records")
		return nil, fmt.Errorf("failed to query records for %s: %w", collection, err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var (
			record    models.Record
			updatedAt sql.NullTime
		)
		if err = rows.Scan(&record.ID, &record.Data, &updatedAt, &record.SyncStatus); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if updatedAt.Valid {
			ts := updatedAt.Time.UTC()
			record.UpdatedAt = &ts
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// BulkPut implements [Cache]. The whole batch is applied inside one
// transaction; a failed upsert rolls back everything. Records arriving
// without a sync status are stored as "synced" (server-sourced writes).
func (c *cacheRepository) BulkPut(ctx context.Context, collection string, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, record := range records {
		status := record.SyncStatus
		if status == "" {
			status = models.SyncStatusSynced
		}

		var updatedAt any
		if record.UpdatedAt != nil {
			updatedAt = record.UpdatedAt.UTC()
		}

		if _, err = tx.ExecContext(ctx, upsertRecord,
			collection,
			record.ID,
			[]byte(record.Data),
			updatedAt,
			status,
		); err != nil {
			c.logger.Err(err).
				Str("func", "cacheRepository.BulkPut").
				Str("collection", collection).
				Str("id", record.ID).
				Msg("failed to upsert record")
			return fmt.Errorf("%w: record %s: %w", ErrExecutingStatement, record.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// MarkAsSynced implements [Cache]. The update is built with squirrel because
// the id list length varies per call.
func (c *cacheRepository) MarkAsSynced(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Update("records").
		Set("sync_status", models.SyncStatusSynced).
		Where(sq.Eq{"collection": collection, "id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		c.logger.Err(err).
			Str("func", "cacheRepository.MarkAsSynced").
			Str("collection", collection).
			Int("ids", len(ids)).
			Msg("failed to mark records as synced")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// SaveLocal implements [Cache]. Locally captured records always enter the
// cache as pending so that the next push picks them up.
func (c *cacheRepository) SaveLocal(ctx context.Context, collection string, record models.Record) error {
	if record.UpdatedAt == nil {
		now := time.Now().UTC()
		record.UpdatedAt = &now
	}

	if _, err := c.DB.ExecContext(ctx, upsertRecord,
		collection,
		record.ID,
		[]byte(record.Data),
		record.UpdatedAt.UTC(),
		models.SyncStatusPending,
	); err != nil {
		c.logger.Err(err).
			Str("func", "cacheRepository.SaveLocal").
			Str("collection", collection).
			Str("id", record.ID).
			Msg("failed to save local record")
		return fmt.Errorf("%w: record %s: %w", ErrExecutingStatement, record.ID, err)
	}

	return nil
}
