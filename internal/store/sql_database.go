package store

import (
	"database/sql"

	"github.com/safepass/safepass/internal/logger"
	"github.com/safepass/safepass/migrations"
)

// DB wraps the raw database handle shared by all credential repositories.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations to the wrapped database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
