// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates [http.ResponseWriter] so the access log can
// report the status code and body size after the downstream handler has
// returned. Nothing is buffered: bytes flow straight through to the
// underlying writer while the counters accumulate.
//
// WriteHeader is forwarded exactly once. The standard library documents
// that a second call is a mistake, so later calls only feed the log and
// are not passed down.
type responseWriter struct {
	http.ResponseWriter

	// status is the code recorded on the first WriteHeader call,
	// zero until a header has been written.
	status int

	// size is the running total of body bytes across all Write calls.
	size int

	wroteHeader bool
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the wrapped writer and counts the bytes that made
// it through. A Write before any WriteHeader implies [http.StatusOK],
// same as the standard library's writer.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
