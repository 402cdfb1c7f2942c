package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/models"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newTestCache(t *testing.T, db *sql.DB) Cache {
	t.Helper()
	storeDB := &DB{DB: db, logger: logger.Nop()}
	return NewCacheRepository(storeDB, logger.Nop())
}

var recordColumns = []string{"id", "data", "updated_at", "sync_status"}

// ── GetMetadata ──────────────────────────────────────────────────────────────

func TestGetMetadata_PopulatedCollection(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)
	lastModified := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("readings").
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(42, lastModified))

	got, err := cache.GetMetadata(context.Background(), "readings")

	require.NoError(t, err)
	assert.Equal(t, "readings", got.Collection)
	assert.Equal(t, 42, got.RecordCount)
	require.NotNil(t, got.LastModified)
	assert.True(t, got.LastModified.Equal(lastModified))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMetadata_EmptyCollection_NilLastModified(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("alerts").
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(0, nil))

	got, err := cache.GetMetadata(context.Background(), "alerts")

	require.NoError(t, err)
	assert.Zero(t, got.RecordCount)
	assert.Nil(t, got.LastModified)
}

func TestGetMetadata_QueryError(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := cache.GetMetadata(context.Background(), "readings")

	assert.Error(t, err)
}

// ── GetPendingItems ──────────────────────────────────────────────────────────

func TestGetPendingItems_GroupsByCollection(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"collection", "id", "data", "updated_at", "sync_status"}).
		AddRow("alerts", "a-1", []byte(`{"level":"warn"}`), ts, models.SyncStatusPending).
		AddRow("readings", "r-1", []byte(`{"soc":80}`), ts, models.SyncStatusPending).
		AddRow("readings", "r-2", []byte(`{"soc":81}`), ts, models.SyncStatusPending)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).WillReturnRows(rows)

	got, err := cache.GetPendingItems(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got["readings"], 2)
	assert.Len(t, got["alerts"], 1)
	assert.Equal(t, "r-1", got["readings"][0].ID)
	assert.Equal(t, models.SyncStatusPending, got["readings"][0].SyncStatus)
}

func TestGetPendingItems_Empty(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WillReturnRows(sqlmock.NewRows([]string{"collection", "id", "data", "updated_at", "sync_status"}))

	got, err := cache.GetPendingItems(context.Background())

	require.NoError(t, err)
	assert.Empty(t, got)
}

// ── GetRecords ───────────────────────────────────────────────────────────────

func TestGetRecords_ReturnsFullSet(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("r-1", []byte(`{"soc":80}`), ts, models.SyncStatusSynced).
		AddRow("r-2", []byte(`{"soc":81}`), nil, models.SyncStatusPending)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("readings").
		WillReturnRows(rows)

	got, err := cache.GetRecords(context.Background(), "readings")

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].UpdatedAt)
	assert.Nil(t, got[1].UpdatedAt, "NULL updated_at must map to nil")
}

// ── BulkPut ──────────────────────────────────────────────────────────────────

func TestBulkPut_UpsertsInsideTransaction(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	records := []models.Record{
		{ID: "r-1", Data: []byte(`{"soc":80}`), UpdatedAt: &ts, SyncStatus: models.SyncStatusSynced},
		{ID: "r-2", Data: []byte(`{"soc":81}`), UpdatedAt: &ts}, // empty status defaults to synced
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("readings", "r-1", []byte(`{"soc":80}`), ts, models.SyncStatusSynced).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("readings", "r-2", []byte(`{"soc":81}`), ts, models.SyncStatusSynced).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, cache.BulkPut(context.Background(), "readings", records))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkPut_EmptyBatchIsNoop(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	require.NoError(t, cache.BulkPut(context.Background(), "readings", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkPut_RollsBackOnFailure(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := cache.BulkPut(context.Background(), "readings", []models.Record{{ID: "r-1", Data: []byte(`{}`)}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── MarkAsSynced ─────────────────────────────────────────────────────────────

func TestMarkAsSynced_UpdatesGivenIDs(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	// squirrel generates IN (?,?) for a slice.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE records SET sync_status = ? WHERE collection = ? AND id IN (?,?)")).
		WithArgs(models.SyncStatusSynced, "readings", "r-1", "r-2").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := cache.MarkAsSynced(context.Background(), "readings", []string{"r-1", "r-2"})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAsSynced_EmptyIDsIsNoop(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	require.NoError(t, cache.MarkAsSynced(context.Background(), "readings", nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

// ── SaveLocal ────────────────────────────────────────────────────────────────

func TestSaveLocal_AlwaysPending(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("readings", "r-1", []byte(`{"soc":80}`), ts, models.SyncStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	record := models.Record{ID: "r-1", Data: []byte(`{"soc":80}`), UpdatedAt: &ts, SyncStatus: models.SyncStatusSynced}
	err := cache.SaveLocal(context.Background(), "readings", record)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveLocal_StampsUpdatedAtWhenMissing(t *testing.T) {
	db, mock := newTestDB(t)
	cache := newTestCache(t, db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO records")).
		WithArgs("readings", "r-1", []byte(`{}`), sqlmock.AnyArg(), models.SyncStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := cache.SaveLocal(context.Background(), "readings", models.Record{ID: "r-1", Data: []byte(`{}`)})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
