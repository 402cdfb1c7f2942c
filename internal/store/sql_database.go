package store

import (
	"database/sql"

	"github.com/voltgrid/battsync/internal/logger"
	"github.com/voltgrid/battsync/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
