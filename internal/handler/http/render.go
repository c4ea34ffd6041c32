package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/internal/web"
	"github.com/MKhiriev/go-note-keeper/models"
)

// render executes the named page template with the request's identity and
// pending flash messages attached.
//
// The signed-in user (if any) comes from the request context placed there by
// the session middleware. Flash messages queued on the session are popped —
// read and cleared in one operation — so each notice is shown exactly once.
// Extra flashes are appended after the popped ones; they let a handler show
// a notice on the page it renders itself without a round trip through the
// session row (used for failures that would otherwise redirect in a loop).
//
// A template fault is logged and answered with a plain 500; by that point
// nothing has been written to w yet, because pages are buffered before being
// sent.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any, extra ...models.Flash) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	pageData := web.PageData{Data: data}

	if user, found := utils.GetUserFromContext(ctx); found {
		pageData.User = &user
	}

	if session, found := utils.GetSessionFromContext(ctx); found {
		flashes, err := h.services.AuthService.PopFlashes(ctx, session.SessionID)
		if err != nil {
			// lost notices are not fatal, the page itself still renders
			log.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to pop flash messages")
		} else {
			pageData.Flashes = flashes
		}
	}
	pageData.Flashes = append(pageData.Flashes, extra...)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, pageData); err != nil {
		log.Err(err).Str("page", page).Msg("page rendering failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// flash queues a one-shot notice to be shown on the next rendered page.
//
// The notice is appended to the flash queue of the request's session. An
// anonymous visitor without a session row — or one whose row just vanished,
// e.g. right after logout — gets a fresh anonymous session created on
// demand, with its cookie set on w, so the notice survives the redirect.
//
// Flash delivery is best-effort: a queueing failure is logged and the
// request carries on without the notice.
func (h *Handler) flash(w http.ResponseWriter, r *http.Request, flash models.Flash) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if session, found := utils.GetSessionFromContext(ctx); found {
		err := h.services.AuthService.AddFlash(ctx, session.SessionID, flash)
		if err == nil {
			return
		}

		if !errors.Is(err, store.ErrSessionNotFound) {
			log.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to queue flash message")
			return
		}
		// session row is gone: fall through to a fresh anonymous session
	}

	session, token, err := h.services.AuthService.CreateSession(ctx, 0)
	if err != nil {
		log.Warn().Err(err).Msg("failed to create session for flash message")
		return
	}

	h.setSessionCookie(w, token, session.ExpiresAt)

	if err := h.services.AuthService.AddFlash(ctx, session.SessionID, flash); err != nil {
		log.Warn().Err(err).Str("session_id", session.SessionID).Msg("failed to queue flash message")
	}
}

// flashAndRedirect queues the notice and answers with a See Other redirect —
// the response every form post ends with, success or failure.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, flash models.Flash, location string) {
	h.flash(w, r, flash)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
