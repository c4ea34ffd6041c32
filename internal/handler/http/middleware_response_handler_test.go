package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogWriter(rr *httptest.ResponseRecorder) *responseWriter {
	return &responseWriter{ResponseWriter: rr}
}

// ---- WriteHeader ----

func TestResponseWriter_RecordsRedirectStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	w.WriteHeader(http.StatusSeeOther)

	assert.Equal(t, http.StatusSeeOther, w.status)
	assert.True(t, w.wroteHeader)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestResponseWriter_SecondWriteHeaderIsDropped(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	w.WriteHeader(http.StatusSeeOther)
	w.WriteHeader(http.StatusInternalServerError) // только первый доходит до клиента

	assert.Equal(t, http.StatusSeeOther, w.status)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	tests := []struct {
		name       string
		codes      []int
		wantStatus int
	}{
		{name: "single 200", codes: []int{http.StatusOK}, wantStatus: http.StatusOK},
		{name: "404 then 200", codes: []int{http.StatusNotFound, http.StatusOK}, wantStatus: http.StatusNotFound},
		{name: "303 then 500 then 200", codes: []int{http.StatusSeeOther, http.StatusInternalServerError, http.StatusOK}, wantStatus: http.StatusSeeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := newLogWriter(rr)

			for _, code := range tt.codes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.wantStatus, w.status)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

// ---- Write ----

func TestResponseWriter_WriteImplies200(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	n, err := w.Write([]byte("<h1>My notes</h1>"))

	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.True(t, w.wroteHeader)
}

func TestResponseWriter_SizeAccumulatesAcrossWrites(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	// template execution writes the page in chunks
	_, err := w.Write([]byte("<ul>"))
	require.NoError(t, err)
	_, err = w.Write([]byte("<li>Groceries</li>"))
	require.NoError(t, err)
	_, err = w.Write([]byte("</ul>"))
	require.NoError(t, err)

	assert.Equal(t, 4+18+5, w.size)
	assert.Equal(t, w.size, rr.Body.Len())
}

func TestResponseWriter_ExplicitStatusSurvivesWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	w.WriteHeader(http.StatusNotFound)
	n, err := w.Write([]byte("not here"))

	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, http.StatusNotFound, w.status, "Write must not reset the status to 200")
	assert.Equal(t, 8, w.size)
}

func TestResponseWriter_EmptyWriteStillCommitsHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	n, err := w.Write(nil)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, w.size)
	assert.Equal(t, http.StatusOK, w.status)
}

// ---- Pass-through ----

func TestResponseWriter_ZeroUntilTouched(t *testing.T) {
	w := newLogWriter(httptest.NewRecorder())

	assert.Equal(t, 0, w.status)
	assert.Equal(t, 0, w.size)
	assert.False(t, w.wroteHeader)
}

func TestResponseWriter_HeadersReachTheClient(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newLogWriter(rr)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Location", "/login")
	w.WriteHeader(http.StatusSeeOther)

	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "/login", rr.Header().Get("Location"))
}
