package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) getRegister(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register", nil)
}

func (h *Handler) postRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.flashAndRedirect(w, r, errorFlash(app.MsgAllFieldsRequired), "/register")
		return
	}

	user := models.User{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
	}
	password := r.PostFormValue("password")

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, user, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Warn().Err(err).Msg("invalid registration data provided")
			h.flashAndRedirect(w, r, errorFlash(app.MsgAllFieldsRequired), "/register")
			return
		case errors.Is(err, store.ErrEmailAlreadyTaken):
			log.Warn().Err(err).Str("email", user.Email).Msg("email already taken")
			h.flashAndRedirect(w, r, errorFlash(app.MsgEmailAlreadyTaken), "/register")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			h.flashAndRedirect(w, r, errorFlash(app.MsgSomethingWentWrong), "/register")
			return
		}
	}

	log.Info().Int64("id", registeredUser.UserID).Str("email", registeredUser.Email).Msg("user registered")

	h.flashAndRedirect(w, r, models.Flash{Kind: models.FlashSuccess, Message: app.MsgAccountCreated}, "/login")
}

func (h *Handler) getLogin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login", nil)
}

func (h *Handler) postLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.flashAndRedirect(w, r, errorFlash(app.MsgInvalidEmailPassword), "/login")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	foundUser, err := h.services.AuthService.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			log.Warn().Str("email", email).Msg("failed login attempt")
			h.flashAndRedirect(w, r, errorFlash(app.MsgInvalidEmailPassword), "/login")
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			h.flashAndRedirect(w, r, errorFlash(app.MsgSomethingWentWrong), "/login")
			return
		}
	}

	log.Debug().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("user successfully logged in")

	// The pre-login session (if any) is replaced, not reused, so the old
	// cookie token dies with its row.
	if session, found := utils.GetSessionFromContext(ctx); found {
		if err := h.services.AuthService.Logout(ctx, session.SessionID); err != nil {
			log.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to drop pre-login session")
		}
	}

	session, token, err := h.services.AuthService.CreateSession(ctx, foundUser.UserID)
	if err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("creation of session failed")
		h.flashAndRedirect(w, r, errorFlash(app.MsgSomethingWentWrong), "/login")
		return
	}

	h.setSessionCookie(w, token, session.ExpiresAt)

	welcome := models.Flash{Kind: models.FlashSuccess, Message: fmt.Sprintf("Welcome back, %s.", foundUser.Username)}
	if err := h.services.AuthService.AddFlash(ctx, session.SessionID, welcome); err != nil {
		log.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to queue flash message")
	}

	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, found := utils.GetSessionFromContext(ctx)
	if found {
		if err := h.services.AuthService.Logout(ctx, session.SessionID); err != nil {
			log.Err(err).Str("session_id", session.SessionID).Msg("unexpected error occurred during logout")
			h.flashAndRedirect(w, r, errorFlash(app.MsgSomethingWentWrong), "/notes")
			return
		}
	}

	clearSessionCookie(w)

	// The farewell notice rides a fresh anonymous session: the old row is
	// gone, so flash falls through to creating one.
	h.flashAndRedirect(w, r, models.Flash{Kind: models.FlashInfo, Message: app.MsgLoggedOut}, "/login")
}
