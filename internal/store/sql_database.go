package store

import (
	"database/sql"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/migrations"
)

// DB wraps the shared *sql.DB connection together with the error classifier
// and a logger. All repositories execute their queries through this handle.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies all pending schema migrations embedded in the migrations
// package to the wrapped database.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
