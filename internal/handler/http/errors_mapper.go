package http

import (
	"errors"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// errorMessageMap pairs well-known service and store errors with the notice
// flashed for them. Every error without an entry falls back to the generic
// message, so an internal failure never leaks its cause to the page.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided: app.MsgAllFieldsRequired,
	service.ErrInvalidCredentials:  app.MsgInvalidEmailPassword,
	store.ErrEmailAlreadyTaken:     app.MsgEmailAlreadyTaken,
	store.ErrNoteNotFound:          app.MsgNoteNotFound,
}

// flashFromError converts err into the error notice shown to the user.
func flashFromError(err error) models.Flash {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return errorFlash(message)
		}
	}
	return errorFlash(app.MsgSomethingWentWrong)
}

func errorFlash(message string) models.Flash {
	return models.Flash{Kind: models.FlashError, Message: message}
}

func successFlash(message string) models.Flash {
	return models.Flash{Kind: models.FlashSuccess, Message: message}
}
