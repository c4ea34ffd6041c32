package store

import "github.com/MKhiriev/go-note-keeper/internal/logger"

// Repositories bundles every repository implementation behind its interface.
type Repositories struct {
	UserRepository    UserRepository
	NoteRepository    NoteRepository
	SessionRepository SessionRepository
}

// NewRepositories constructs all repositories over the shared database
// connection.
func NewRepositories(db *DB, logger *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db, logger),
		NoteRepository:    NewNoteRepository(db, logger),
		SessionRepository: NewSessionRepository(db, logger),
	}
}
