package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock NoteService
// ─────────────────────────────────────────────

// mockNoteService implements service.NoteService for unit tests. Methods
// whose function field is left nil return zero values.
type mockNoteService struct {
	createNoteFn  func(ctx context.Context, note models.Note) (models.Note, error)
	getNoteFn     func(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	listNotesFn   func(ctx context.Context, filter models.NoteFilter) ([]models.Note, error)
	searchNotesFn func(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error)
	updateNoteFn  func(ctx context.Context, note models.Note) (models.Note, error)
	deleteNoteFn  func(ctx context.Context, ownerID int64, noteID int64) error
	toggleStarFn  func(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
	togglePinFn   func(ctx context.Context, ownerID int64, noteID int64) (models.Note, error)
}

func (m *mockNoteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.createNoteFn == nil {
		return models.Note{}, nil
	}
	return m.createNoteFn(ctx, note)
}

func (m *mockNoteService) GetNote(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	if m.getNoteFn == nil {
		return models.Note{}, nil
	}
	return m.getNoteFn(ctx, ownerID, noteID)
}

func (m *mockNoteService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	if m.listNotesFn == nil {
		return []models.Note{}, nil
	}
	return m.listNotesFn(ctx, filter)
}

func (m *mockNoteService) SearchNotes(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error) {
	if m.searchNotesFn == nil {
		return []models.Note{}, nil
	}
	return m.searchNotesFn(ctx, ownerID, searchText)
}

func (m *mockNoteService) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	if m.updateNoteFn == nil {
		return models.Note{}, nil
	}
	return m.updateNoteFn(ctx, note)
}

func (m *mockNoteService) DeleteNote(ctx context.Context, ownerID int64, noteID int64) error {
	if m.deleteNoteFn == nil {
		return nil
	}
	return m.deleteNoteFn(ctx, ownerID, noteID)
}

func (m *mockNoteService) ToggleStar(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	if m.toggleStarFn == nil {
		return models.Note{}, nil
	}
	return m.toggleStarFn(ctx, ownerID, noteID)
}

func (m *mockNoteService) TogglePin(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	if m.togglePinFn == nil {
		return models.Note{}, nil
	}
	return m.togglePinFn(ctx, ownerID, noteID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newHandlerWithNotes builds a Handler around the given NoteService mock and
// returns it together with the flashes its AuthService mock records.
func newHandlerWithNotes(t *testing.T, notes service.NoteService) (*Handler, *[]models.Flash) {
	t.Helper()
	auth := &mockAuthService{}
	flashes := recordedFlashes(auth)
	svcs := &service.Services{
		AuthService:    auth,
		NoteService:    notes,
		AppInfoService: &mockAppInfoService{version: "test"},
	}
	return NewHandler(svcs, newTestTemplates(t), logger.Nop()), flashes
}

// authedRequest builds a request carrying the session and user the session
// middleware would have resolved for a signed-in visitor.
func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	session := models.Session{SessionID: "sess-1", UserID: 7}
	user := models.User{UserID: 7, Username: "alice", Email: "alice@example.com"}
	return withUserContext(req, session, user)
}

// withNoteID attaches the {noteID} URL parameter the router would have
// extracted from the request path.
func withNoteID(req *http.Request, noteID string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("noteID", noteID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

// authedForm builds an authenticated form-encoded POST request.
func authedForm(target string, form url.Values) *http.Request {
	req := formRequest(target, form)
	session := models.Session{SessionID: "sess-1", UserID: 7}
	user := models.User{UserID: 7, Username: "alice"}
	return withUserContext(req, session, user)
}

// noteNotFound mirrors how the service layer reports a missing or foreign
// note to the handler.
func noteNotFound() error {
	return fmt.Errorf("note fetch ended with error: %w", store.ErrNoteNotFound)
}

// ─────────────────────────────────────────────
// noteFilterFromRequest
// ─────────────────────────────────────────────

func TestNoteFilterFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  models.NoteFilter
	}{
		{
			name:  "no parameters",
			query: "",
			want:  models.NoteFilter{OwnerID: 7},
		},
		{
			name:  "starred filter",
			query: "filter=starred",
			want:  models.NoteFilter{OwnerID: 7, Starred: true},
		},
		{
			name:  "pinned filter",
			query: "filter=pinned",
			want:  models.NoteFilter{OwnerID: 7, Pinned: true},
		},
		{
			name:  "unknown filter value is ignored",
			query: "filter=archived",
			want:  models.NoteFilter{OwnerID: 7},
		},
		{
			name:  "start date bounds the start of the day",
			query: "startDate=2026-08-20",
			want: models.NoteFilter{
				OwnerID:     7,
				CreatedFrom: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			name:  "end date covers the whole day",
			query: "endDate=2026-08-20",
			want: models.NoteFilter{
				OwnerID:   7,
				CreatedTo: time.Date(2026, 8, 20, 23, 59, 59, int(999*time.Millisecond), time.UTC),
			},
		},
		{
			name:  "malformed start date is dropped",
			query: "startDate=yesterday",
			want:  models.NoteFilter{OwnerID: 7},
		},
		{
			name:  "malformed end date is dropped",
			query: "endDate=20-08-2026",
			want:  models.NoteFilter{OwnerID: 7},
		},
		{
			name:  "flag and date range combine",
			query: "filter=starred&startDate=2026-08-01&endDate=2026-08-31",
			want: models.NoteFilter{
				OwnerID:     7,
				Starred:     true,
				CreatedFrom: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				CreatedTo:   time.Date(2026, 8, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/notes?"+test.query, nil)

			got := noteFilterFromRequest(req, 7)

			assert.Equal(t, test.want, got)
		})
	}
}

// ─────────────────────────────────────────────
// getNotes
// ─────────────────────────────────────────────

func TestGetNotes_RendersNotes(t *testing.T) {
	var gotFilter models.NoteFilter
	notes := &mockNoteService{
		listNotesFn: func(_ context.Context, filter models.NoteFilter) ([]models.Note, error) {
			gotFilter = filter
			return []models.Note{
				{NoteID: 1, OwnerID: 7, Title: "Groceries", Content: "milk", CreatedAt: time.Now()},
				{NoteID: 2, OwnerID: 7, Title: "Ideas", Content: "garden", CreatedAt: time.Now()},
			}, nil
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.getNotes(rec, authedRequest(http.MethodGet, "/notes"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotFilter.OwnerID, "listing must be scoped to the signed-in user")
	assert.Contains(t, rec.Body.String(), "Groceries")
	assert.Contains(t, rec.Body.String(), "Ideas")
}

func TestGetNotes_PassesQueryFilter(t *testing.T) {
	var gotFilter models.NoteFilter
	notes := &mockNoteService{
		listNotesFn: func(_ context.Context, filter models.NoteFilter) ([]models.Note, error) {
			gotFilter = filter
			return []models.Note{}, nil
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.getNotes(rec, authedRequest(http.MethodGet, "/notes?filter=pinned&startDate=2026-08-01"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotFilter.Pinned)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), gotFilter.CreatedFrom)
}

// TestGetNotes_ListFailure verifies that a listing failure renders the page
// with a notice instead of redirecting, which would loop back to itself.
func TestGetNotes_ListFailure(t *testing.T) {
	notes := &mockNoteService{
		listNotesFn: func(_ context.Context, _ models.NoteFilter) ([]models.Note, error) {
			return nil, errors.New("connection refused")
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.getNotes(rec, authedRequest(http.MethodGet, "/notes"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Location"))
	assert.Contains(t, rec.Body.String(), app.MsgSomethingWentWrong)
}

// ─────────────────────────────────────────────
// searchNotes
// ─────────────────────────────────────────────

func TestSearchNotes_TrimsQueryAndRendersMatches(t *testing.T) {
	var gotOwnerID int64
	var gotQuery string
	notes := &mockNoteService{
		searchNotesFn: func(_ context.Context, ownerID int64, searchText string) ([]models.Note, error) {
			gotOwnerID, gotQuery = ownerID, searchText
			return []models.Note{
				{NoteID: 1, OwnerID: 7, Title: "Groceries", Content: "buy milk", CreatedAt: time.Now()},
			}, nil
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.searchNotes(rec, authedRequest(http.MethodGet, "/search-notes?query=+milk+"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotOwnerID)
	assert.Equal(t, "milk", gotQuery)
	assert.Contains(t, rec.Body.String(), "Groceries")
}

func TestSearchNotes_Failure(t *testing.T) {
	notes := &mockNoteService{
		searchNotesFn: func(_ context.Context, _ int64, _ string) ([]models.Note, error) {
			return nil, errors.New("connection refused")
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.searchNotes(rec, authedRequest(http.MethodGet, "/search-notes?query=milk"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), app.MsgSomethingWentWrong)
}

// ─────────────────────────────────────────────
// addNote
// ─────────────────────────────────────────────

// TestAddNote_OwnerComesFromSession verifies that the created note belongs
// to the signed-in user regardless of what the form carries.
func TestAddNote_OwnerComesFromSession(t *testing.T) {
	var gotNote models.Note
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, note models.Note) (models.Note, error) {
			gotNote = note
			note.NoteID = 42
			return note, nil
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	form := url.Values{
		"title":   {"Groceries"},
		"content": {"milk, eggs"},
		"ownerID": {"999"}, // forged field, must be ignored
	}
	rec := httptest.NewRecorder()

	h.addNote(rec, authedForm("/add-note", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))

	assert.Equal(t, int64(7), gotNote.OwnerID)
	assert.Equal(t, "Groceries", gotNote.Title)
	assert.Equal(t, "milk, eggs", gotNote.Content)

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteAdded, (*flashes)[0].Message)
	assert.Equal(t, models.FlashSuccess, (*flashes)[0].Kind)
}

func TestAddNote_InvalidData(t *testing.T) {
	notes := &mockNoteService{
		createNoteFn: func(_ context.Context, _ models.Note) (models.Note, error) {
			return models.Note{}, service.ErrInvalidDataProvided
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	rec := httptest.NewRecorder()

	h.addNote(rec, authedForm("/add-note", url.Values{}))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgAllFieldsRequired, (*flashes)[0].Message)
}

// ─────────────────────────────────────────────
// getEditNote
// ─────────────────────────────────────────────

func TestGetEditNote_RendersNote(t *testing.T) {
	var gotOwnerID, gotNoteID int64
	notes := &mockNoteService{
		getNoteFn: func(_ context.Context, ownerID int64, noteID int64) (models.Note, error) {
			gotOwnerID, gotNoteID = ownerID, noteID
			return models.Note{NoteID: noteID, OwnerID: ownerID, Title: "Groceries", Content: "milk", CreatedAt: time.Now()}, nil
		},
	}

	h, _ := newHandlerWithNotes(t, notes)
	req := withNoteID(authedRequest(http.MethodGet, "/edit-note/42"), "42")
	rec := httptest.NewRecorder()

	h.getEditNote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotOwnerID)
	assert.Equal(t, int64(42), gotNoteID)
	assert.Contains(t, rec.Body.String(), "Groceries")
}

// TestGetEditNote_NotFound covers both a genuinely missing note and a note
// owned by someone else: the service reports them identically.
func TestGetEditNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		getNoteFn: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			return models.Note{}, noteNotFound()
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedRequest(http.MethodGet, "/edit-note/42"), "42")
	rec := httptest.NewRecorder()

	h.getEditNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}

func TestGetEditNote_MalformedID(t *testing.T) {
	serviceCalled := false
	notes := &mockNoteService{
		getNoteFn: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			serviceCalled = true
			return models.Note{}, nil
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedRequest(http.MethodGet, "/edit-note/abc"), "abc")
	rec := httptest.NewRecorder()

	h.getEditNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))
	assert.False(t, serviceCalled, "a malformed id must not reach the service")

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}

// ─────────────────────────────────────────────
// updateNote
// ─────────────────────────────────────────────

func TestUpdateNote_Success(t *testing.T) {
	var gotNote models.Note
	notes := &mockNoteService{
		updateNoteFn: func(_ context.Context, note models.Note) (models.Note, error) {
			gotNote = note
			return note, nil
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	form := url.Values{
		"title":   {"Groceries v2"},
		"content": {"milk, eggs, bread"},
	}
	req := withNoteID(authedForm("/update-note/42", form), "42")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))

	assert.Equal(t, int64(42), gotNote.NoteID)
	assert.Equal(t, int64(7), gotNote.OwnerID)
	assert.Equal(t, "Groceries v2", gotNote.Title)
	assert.Equal(t, "milk, eggs, bread", gotNote.Content)

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteUpdated, (*flashes)[0].Message)
}

func TestUpdateNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		updateNoteFn: func(_ context.Context, _ models.Note) (models.Note, error) {
			return models.Note{}, noteNotFound()
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	form := url.Values{"title": {"x"}, "content": {"y"}}
	req := withNoteID(authedForm("/update-note/42", form), "42")
	rec := httptest.NewRecorder()

	h.updateNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}

// ─────────────────────────────────────────────
// deleteNote
// ─────────────────────────────────────────────

func TestDeleteNote_Success(t *testing.T) {
	var gotOwnerID, gotNoteID int64
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, ownerID int64, noteID int64) error {
			gotOwnerID, gotNoteID = ownerID, noteID
			return nil
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedForm("/delete-note/42", url.Values{}), "42")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/notes", rec.Header().Get("Location"))
	assert.Equal(t, int64(7), gotOwnerID)
	assert.Equal(t, int64(42), gotNoteID)

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteDeleted, (*flashes)[0].Message)
}

func TestDeleteNote_NotFound(t *testing.T) {
	notes := &mockNoteService{
		deleteNoteFn: func(_ context.Context, _ int64, _ int64) error {
			return noteNotFound()
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedForm("/delete-note/42", url.Values{}), "42")
	rec := httptest.NewRecorder()

	h.deleteNote(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}

// ─────────────────────────────────────────────
// toggleStar / togglePin
// ─────────────────────────────────────────────

// TestToggleStar_NoticeNamesResultingState verifies that the notice reports
// the state the note ended up in, not the action that was clicked.
func TestToggleStar_NoticeNamesResultingState(t *testing.T) {
	tests := []struct {
		name        string
		nowStarred  bool
		wantMessage string
	}{
		{name: "starred", nowStarred: true, wantMessage: app.MsgNoteStarred},
		{name: "unstarred", nowStarred: false, wantMessage: app.MsgNoteUnstarred},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			notes := &mockNoteService{
				toggleStarFn: func(_ context.Context, ownerID int64, noteID int64) (models.Note, error) {
					return models.Note{NoteID: noteID, OwnerID: ownerID, IsStarred: test.nowStarred}, nil
				},
			}

			h, flashes := newHandlerWithNotes(t, notes)
			req := withNoteID(authedForm("/toggle-star/42", url.Values{}), "42")
			rec := httptest.NewRecorder()

			h.toggleStar(rec, req)

			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, "/notes", rec.Header().Get("Location"))

			require.Len(t, *flashes, 1)
			assert.Equal(t, test.wantMessage, (*flashes)[0].Message)
		})
	}
}

func TestTogglePin_NoticeNamesResultingState(t *testing.T) {
	tests := []struct {
		name        string
		nowPinned   bool
		wantMessage string
	}{
		{name: "pinned", nowPinned: true, wantMessage: app.MsgNotePinned},
		{name: "unpinned", nowPinned: false, wantMessage: app.MsgNoteUnpinned},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			notes := &mockNoteService{
				togglePinFn: func(_ context.Context, ownerID int64, noteID int64) (models.Note, error) {
					return models.Note{NoteID: noteID, OwnerID: ownerID, IsPinned: test.nowPinned}, nil
				},
			}

			h, flashes := newHandlerWithNotes(t, notes)
			req := withNoteID(authedForm("/toggle-pin/42", url.Values{}), "42")
			rec := httptest.NewRecorder()

			h.togglePin(rec, req)

			require.Equal(t, http.StatusSeeOther, rec.Code)

			require.Len(t, *flashes, 1)
			assert.Equal(t, test.wantMessage, (*flashes)[0].Message)
		})
	}
}

func TestToggleStar_NotFound(t *testing.T) {
	notes := &mockNoteService{
		toggleStarFn: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			return models.Note{}, noteNotFound()
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedForm("/toggle-star/42", url.Values{}), "42")
	rec := httptest.NewRecorder()

	h.toggleStar(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}

func TestTogglePin_MalformedID(t *testing.T) {
	serviceCalled := false
	notes := &mockNoteService{
		togglePinFn: func(_ context.Context, _ int64, _ int64) (models.Note, error) {
			serviceCalled = true
			return models.Note{}, nil
		},
	}

	h, flashes := newHandlerWithNotes(t, notes)
	req := withNoteID(authedForm("/toggle-pin/9999999999999999999999", url.Values{}), "9999999999999999999999")
	rec := httptest.NewRecorder()

	h.togglePin(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.False(t, serviceCalled)

	require.Len(t, *flashes, 1)
	assert.Equal(t, app.MsgNoteNotFound, (*flashes)[0].Message)
}
