// Package web holds the application's embedded HTML templates and static
// assets and renders pages from them.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/models"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pages lists every renderable page. Each page file defines the "title" and
// "content" blocks inserted into the shared layout.
var pages = []string{
	"landing",
	"register",
	"login",
	"notes",
	"search",
	"edit_note",
}

// PageData is the payload every render receives. The layout reads User and
// Flashes; the page's content block reads Data.
type PageData struct {
	// User is the signed-in user, or nil for an anonymous visitor.
	User *models.User

	// Flashes are the one-shot notices to show on this render.
	Flashes []models.Flash

	// Data carries the page-specific payload (one of the *Data types below).
	Data any
}

// NotesData is the page payload for the notes listing.
type NotesData struct {
	Notes []models.Note

	// Filter echoes the active quick filter ("starred", "pinned" or empty).
	Filter string

	// StartDate and EndDate echo the raw date inputs so the filter form
	// keeps its state across renders.
	StartDate string
	EndDate   string
}

// SearchData is the page payload for keyword search results.
type SearchData struct {
	Notes []models.Note

	// Query echoes the submitted search text.
	Query string
}

// EditNoteData is the page payload for the edit form.
type EditNoteData struct {
	Note models.Note
}

// funcs is the function map available inside all templates.
//
// "raw" is the single place where note content crosses from text to
// unescaped markup: notes are stored and rendered verbatim.
var funcs = template.FuncMap{
	"raw": func(s string) template.HTML {
		return template.HTML(s)
	},
}

// Templates renders the application's pages from the embedded template set.
type Templates struct {
	pages map[string]*template.Template
}

// NewTemplates parses every page template against the shared layout.
func NewTemplates() (*Templates, error) {
	parsed := make(map[string]*template.Template, len(pages))

	for _, page := range pages {
		t, err := template.New(page).
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.gohtml", "templates/"+page+".gohtml")
		if err != nil {
			return nil, fmt.Errorf("parsing page %q: %w", page, err)
		}
		parsed[page] = t
	}

	return &Templates{pages: parsed}, nil
}

// Render executes the named page into w.
//
// The page is rendered into a buffer first, so a template fault surfaces as
// an error before anything has been written to w.
func (t *Templates) Render(w io.Writer, page string, data PageData) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("rendering page %q: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded static assets. Files live under the
// static/ directory of the embedded tree, which matches the /static/ URL
// prefix, so no path rewriting is needed.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}
