package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// NoteRepository persists notes. Every method that targets an existing note
// filters by both note ID and owner ID, so a note that exists but belongs to
// another user is indistinguishable from a missing one.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	FindNoteByID(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	FindNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	SearchNotes(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, ownerID int64, noteID int64) error
	ToggleStar(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	TogglePin(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
}

// SessionRepository persists browser sessions and their flash messages.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)
	FindSessionByID(ctx context.Context, sessionID string) (models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
	AddFlash(ctx context.Context, sessionID string, flash models.Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
