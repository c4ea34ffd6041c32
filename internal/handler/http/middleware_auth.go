package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// sessionCookieName is the cookie that carries the signed session token.
// The cookie value is an opaque signed reference to a row in the sessions
// table; the user it maps to is resolved server-side on every request.
const sessionCookieName = "session_token"

// withSession is an HTTP middleware that resolves the session cookie into a
// request-scoped identity.
//
// It reads the session cookie, validates the signed token it carries via
// [service.AuthService.ResolveSession], and — on success — stores the session
// under [utils.SessionCtxKey] and, for a session bound to a user, the user
// under [utils.UserCtxKey] before delegating to the next handler.
//
// The middleware never rejects a request. Every failure mode degrades to an
// anonymous request:
//   - No cookie at all — the visitor has no session yet.
//   - The token fails validation (bad signature, wrong issuer, expired).
//   - The session row is missing, expired, or cannot be loaded.
//
// A cookie that failed to resolve is useless on every future request too, so
// it is expired on the response before delegating.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		cookie, err := r.Cookie(sessionCookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		session, user, err := h.services.AuthService.ResolveSession(ctx, cookie.Value)
		if err != nil {
			log.Warn().Err(err).Msg("session cookie did not resolve")
			clearSessionCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		// Store the resolved session (and its owner, when bound to one) in
		// the context so that downstream handlers can retrieve them without
		// re-parsing the token.
		ctx = context.WithValue(ctx, utils.SessionCtxKey, session)
		if !session.IsAnonymous() {
			ctx = context.WithValue(ctx, utils.UserCtxKey, user)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth is the authentication gate for routes that list or mutate
// notes. It applies uniformly to every gated route.
//
// An anonymous request — no session, or a session not bound to a user — is
// sent to the login page with a one-shot notice; the requested handler never
// runs. Authenticated requests pass through untouched.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, found := utils.GetUserFromContext(r.Context()); !found {
			h.flashAndRedirect(w, r, models.Flash{Kind: models.FlashInfo, Message: app.MsgLoginRequired}, "/login")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// setSessionCookie stores the signed session token on the response. The
// cookie lives exactly as long as the session row it references.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie on the response.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
