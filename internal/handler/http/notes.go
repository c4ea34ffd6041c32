package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/internal/web"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
)

// Query parameter values recognised by the notes listing.
const (
	filterStarred = "starred"
	filterPinned  = "pinned"
)

// dateLayout is the wire format of the startDate and endDate parameters,
// matching the value format of an HTML date input.
const dateLayout = "2006-01-02"

// endOfDayOffset moves a parsed start-of-day instant to the last represented
// millisecond of the same day, 23:59:59.999, making the endDate bound
// inclusive of the whole calendar day.
const endOfDayOffset = 24*time.Hour - time.Millisecond

// noteFilterFromRequest translates the listing query parameters into a
// [models.NoteFilter] scoped to ownerID.
//
// filter=starred and filter=pinned switch on the matching flag; any other
// value leaves both off. startDate and endDate must be calendar days in
// YYYY-MM-DD form, interpreted as UTC; startDate becomes an at-or-after
// bound on the start of that day and endDate an at-or-before bound on its
// last millisecond. A bound that fails to parse is dropped, never an error.
func noteFilterFromRequest(r *http.Request, ownerID int64) models.NoteFilter {
	filter := models.NoteFilter{OwnerID: ownerID}
	params := r.URL.Query()

	switch params.Get("filter") {
	case filterStarred:
		filter.Starred = true
	case filterPinned:
		filter.Pinned = true
	}

	if raw := params.Get("startDate"); raw != "" {
		if day, err := time.Parse(dateLayout, raw); err == nil {
			filter.CreatedFrom = day
		}
	}

	if raw := params.Get("endDate"); raw != "" {
		if day, err := time.Parse(dateLayout, raw); err == nil {
			filter.CreatedTo = day.Add(endOfDayOffset)
		}
	}

	return filter
}

// noteIDFromRequest parses the {noteID} URL parameter. Handlers treat a
// malformed value the same way as a note that does not exist.
func noteIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
}

func (h *Handler) getNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)
	filter := noteFilterFromRequest(r, user.UserID)

	data := web.NotesData{
		Filter:    r.URL.Query().Get("filter"),
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	notes, err := h.services.NoteService.ListNotes(ctx, filter)
	if err != nil {
		// rendering the empty page with a notice instead of redirecting:
		// a redirect back to /notes would loop for as long as the store
		// is down
		log.Err(err).Int64("owner_id", user.UserID).Msg("error listing notes")
		h.render(w, r, "notes", data, errorFlash(app.MsgSomethingWentWrong))
		return
	}

	data.Notes = notes
	h.render(w, r, "notes", data)
}

func (h *Handler) searchNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	data := web.SearchData{Query: query}

	notes, err := h.services.NoteService.SearchNotes(ctx, user.UserID, query)
	if err != nil {
		log.Err(err).Int64("owner_id", user.UserID).Msg("error searching notes")
		h.render(w, r, "search", data, errorFlash(app.MsgSomethingWentWrong))
		return
	}

	data.Notes = notes
	h.render(w, r, "search", data)
}

func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.flashAndRedirect(w, r, errorFlash(app.MsgAllFieldsRequired), "/notes")
		return
	}

	user, _ := utils.GetUserFromContext(ctx)
	note := models.Note{
		OwnerID: user.UserID,
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	createdNote, err := h.services.NoteService.CreateNote(ctx, note)
	if err != nil {
		log.Err(err).Int64("owner_id", user.UserID).Msg("error creating note")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	log.Debug().Int64("note_id", createdNote.NoteID).Int64("owner_id", user.UserID).Msg("note created")

	h.flashAndRedirect(w, r, successFlash(app.MsgNoteAdded), "/notes")
}

func (h *Handler) getEditNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		log.Warn().Str("note_id", chi.URLParam(r, "noteID")).Msg("malformed note id")
		h.flashAndRedirect(w, r, errorFlash(app.MsgNoteNotFound), "/notes")
		return
	}

	note, err := h.services.NoteService.GetNote(ctx, user.UserID, noteID)
	if err != nil {
		log.Warn().Err(err).Int64("note_id", noteID).Int64("owner_id", user.UserID).Msg("error fetching note")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	h.render(w, r, "edit_note", web.EditNoteData{Note: note})
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		log.Warn().Str("note_id", chi.URLParam(r, "noteID")).Msg("malformed note id")
		h.flashAndRedirect(w, r, errorFlash(app.MsgNoteNotFound), "/notes")
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		h.flashAndRedirect(w, r, errorFlash(app.MsgAllFieldsRequired), "/notes")
		return
	}

	note := models.Note{
		NoteID:  noteID,
		OwnerID: user.UserID,
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}

	if _, err := h.services.NoteService.UpdateNote(ctx, note); err != nil {
		log.Warn().Err(err).Int64("note_id", noteID).Int64("owner_id", user.UserID).Msg("error updating note")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	h.flashAndRedirect(w, r, successFlash(app.MsgNoteUpdated), "/notes")
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		log.Warn().Str("note_id", chi.URLParam(r, "noteID")).Msg("malformed note id")
		h.flashAndRedirect(w, r, errorFlash(app.MsgNoteNotFound), "/notes")
		return
	}

	if err := h.services.NoteService.DeleteNote(ctx, user.UserID, noteID); err != nil {
		log.Warn().Err(err).Int64("note_id", noteID).Int64("owner_id", user.UserID).Msg("error deleting note")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	h.flashAndRedirect(w, r, successFlash(app.MsgNoteDeleted), "/notes")
}

func (h *Handler) toggleStar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		log.Warn().Str("note_id", chi.URLParam(r, "noteID")).Msg("malformed note id")
		h.flashAndRedirect(w, r, errorFlash(app.MsgNoteNotFound), "/notes")
		return
	}

	note, err := h.services.NoteService.ToggleStar(ctx, user.UserID, noteID)
	if err != nil {
		log.Warn().Err(err).Int64("note_id", noteID).Int64("owner_id", user.UserID).Msg("error toggling star")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	// the notice names the state the note ended up in
	message := app.MsgNoteUnstarred
	if note.IsStarred {
		message = app.MsgNoteStarred
	}

	h.flashAndRedirect(w, r, successFlash(message), "/notes")
}

func (h *Handler) togglePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, _ := utils.GetUserFromContext(ctx)

	noteID, err := noteIDFromRequest(r)
	if err != nil {
		log.Warn().Str("note_id", chi.URLParam(r, "noteID")).Msg("malformed note id")
		h.flashAndRedirect(w, r, errorFlash(app.MsgNoteNotFound), "/notes")
		return
	}

	note, err := h.services.NoteService.TogglePin(ctx, user.UserID, noteID)
	if err != nil {
		log.Warn().Err(err).Int64("note_id", noteID).Int64("owner_id", user.UserID).Msg("error toggling pin")
		h.flashAndRedirect(w, r, flashFromError(err), "/notes")
		return
	}

	message := app.MsgNoteUnpinned
	if note.IsPinned {
		message = app.MsgNotePinned
	}

	h.flashAndRedirect(w, r, successFlash(message), "/notes")
}
