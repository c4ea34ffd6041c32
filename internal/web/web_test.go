// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package web

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTemplates_AllPagesParse(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	for _, page := range pages {
		assert.Contains(t, templates.pages, page)
	}
}

func TestRender_AllPages(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	user := &models.User{Username: "alice"}

	tests := []struct {
		page string
		data PageData
	}{
		{page: "landing", data: PageData{}},
		{page: "register", data: PageData{}},
		{page: "login", data: PageData{}},
		{page: "notes", data: PageData{User: user, Data: NotesData{}}},
		{page: "search", data: PageData{User: user, Data: SearchData{Query: "milk"}}},
		{page: "edit_note", data: PageData{User: user, Data: EditNoteData{Note: models.Note{NoteID: 1}}}},
	}

	for _, test := range tests {
		t.Run(test.page, func(t *testing.T) {
			var buf bytes.Buffer
			err := templates.Render(&buf, test.page, test.data)
			require.NoError(t, err)
			assert.Contains(t, buf.String(), "<!doctype html>")
		})
	}
}

func TestRender_UnknownPage(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = templates.Render(&buf, "no-such-page", PageData{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown page")
	assert.Zero(t, buf.Len())
}

func TestRender_NoteContentIsNotEscaped(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	note := models.Note{
		NoteID:    1,
		Title:     "Formatting",
		Content:   "<b>bold</b> text",
		CreatedAt: time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err = templates.Render(&buf, "notes", PageData{
		User: &models.User{Username: "alice"},
		Data: NotesData{Notes: []models.Note{note}},
	})
	require.NoError(t, err)

	// содержимое заметки вставляется как есть
	assert.Contains(t, buf.String(), "<b>bold</b> text")
}

func TestRender_NoteTitleIsEscaped(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	note := models.Note{
		NoteID:    1,
		Title:     "<script>alert(1)</script>",
		Content:   "safe",
		CreatedAt: time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	err = templates.Render(&buf, "notes", PageData{
		User: &models.User{Username: "alice"},
		Data: NotesData{Notes: []models.Note{note}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRender_NavSwitchesOnUser(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	var signedOut bytes.Buffer
	require.NoError(t, templates.Render(&signedOut, "landing", PageData{}))
	assert.Contains(t, signedOut.String(), `href="/login"`)
	assert.Contains(t, signedOut.String(), `href="/register"`)
	assert.NotContains(t, signedOut.String(), `href="/logout"`)

	var signedIn bytes.Buffer
	require.NoError(t, templates.Render(&signedIn, "landing", PageData{User: &models.User{Username: "alice"}}))
	assert.Contains(t, signedIn.String(), `href="/logout"`)
	assert.Contains(t, signedIn.String(), "alice")
}

func TestRender_Flashes(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = templates.Render(&buf, "login", PageData{
		Flashes: []models.Flash{
			{Kind: models.FlashSuccess, Message: "Account created. Please log in."},
			{Kind: models.FlashError, Message: "Invalid email or password."},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "flash-success")
	assert.Contains(t, out, "Account created. Please log in.")
	assert.Contains(t, out, "flash-error")
	assert.Contains(t, out, "Invalid email or password.")
}

func TestRender_EditFormEchoesNote(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	note := models.Note{NoteID: 7, Title: "Groceries", Content: "milk < eggs"}

	var buf bytes.Buffer
	err = templates.Render(&buf, "edit_note", PageData{
		User: &models.User{Username: "alice"},
		Data: EditNoteData{Note: note},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `action="/update-note/7"`)
	assert.Contains(t, out, `value="Groceries"`)
	// внутри textarea содержимое экранируется — редактируется исходный текст
	assert.Contains(t, out, "milk &lt; eggs")
}

func TestStaticHandler_ServesStylesheet(t *testing.T) {
	srv := httptest.NewServer(StaticHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/static/style.css")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/css")
}
