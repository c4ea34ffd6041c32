package http

import (
	"compress/gzip"
	"net/http"
	"strings"
	"sync"
)

// gzipWriterPool recycles gzip writers between requests; allocating one
// per request shows up in profiles once every page is compressed.
var gzipWriterPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

// withGZip compresses the response when the client advertises gzip
// support. Browsers do not compress form submissions, so request bodies
// are passed through untouched.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzipWriterPool.Get().(*gzip.Writer)
		gz.Reset(w)

		grw := &gzipResponseWriter{ResponseWriter: w, gz: gz}
		next.ServeHTTP(grw, r)

		// a handler that wrote nothing at all gets a plain empty
		// response, not a bare gzip trailer
		if grw.wroteHeader {
			gz.Close()
		}
		gzipWriterPool.Put(gz)
	})
}

type gzipResponseWriter struct {
	http.ResponseWriter
	gz          *gzip.Writer
	wroteHeader bool
}

// WriteHeader marks the response as gzip-encoded before the header is
// committed. Content-Length set by an inner handler (http.FileServer
// does this for static assets) refers to the uncompressed size and must
// not survive compression.
func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")
		w.Header().Del("Content-Length")
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.gz.Write(b)
}
