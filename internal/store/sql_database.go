package store

import (
	"database/sql"

	"intelplatform/internal/logger"
	"intelplatform/migrations"
)

// DB wraps the shared *sql.DB handle used by all repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies all pending schema migrations to the underlying database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
