package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_CreatesSchema runs the embedded migrations against a fresh
// SQLite file and verifies the records table is usable afterwards.
func TestMigrate_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))

	_, err = db.Exec(
		`INSERT INTO records (collection, id, data, sync_status) VALUES (?, ?, ?, ?)`,
		"readings", "r-1", `{"soc":80}`, "pending",
	)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&count))
	assert.Equal(t, 1, count)
}

// TestMigrate_Idempotent verifies that running migrations twice is a no-op.
func TestMigrate_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}
