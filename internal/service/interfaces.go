package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// AuthService owns user credentials and the session lifecycle behind the
// cookie token. Login reports unknown emails and wrong passwords with the
// same ErrInvalidCredentials, so callers cannot probe which accounts exist.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User, password string) (models.User, error)
	Login(ctx context.Context, email string, password string) (models.User, error)

	CreateSession(ctx context.Context, userID int64) (models.Session, models.Token, error)
	ResolveSession(ctx context.Context, tokenString string) (models.Session, models.User, error)
	Logout(ctx context.Context, sessionID string) error

	AddFlash(ctx context.Context, sessionID string, flash models.Flash) error
	PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error)
}

type NoteService interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	SearchNotes(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) (models.Note, error)
	DeleteNote(ctx context.Context, ownerID int64, noteID int64) error
	ToggleStar(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	TogglePin(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
