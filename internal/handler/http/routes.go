package http

import (
	"github.com/MKhiriev/go-note-keeper/internal/web"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	router.Use(h.withSession)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.landing)
		r.Get("/register", h.getRegister)
		r.Post("/register", h.postRegister)
		r.Get("/login", h.getLogin)
		r.Post("/login", h.postLogin)
		r.Get("/health", h.health)
		r.Handle("/static/*", web.StaticHandler())
	})

	// routes behind the auth gate
	router.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/logout", h.logout)
		r.Get("/notes", h.getNotes)
		r.Get("/search-notes", h.searchNotes)
		r.Post("/add-note", h.addNote)
		r.Get("/edit-note/{noteID}", h.getEditNote)
		r.Post("/update-note/{noteID}", h.updateNote)
		r.Post("/delete-note/{noteID}", h.deleteNote)
		r.Post("/toggle-star/{noteID}", h.toggleStar)
		r.Post("/toggle-pin/{noteID}", h.togglePin)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
