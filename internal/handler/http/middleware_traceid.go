package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request trace ID in both directions: a
// reverse proxy may send one in, and the response always echoes the ID
// that ended up in the logs.
const traceIDHeader = "X-Trace-ID"

// withTraceID gives every request a trace ID and a request-scoped child
// logger carrying it. An inbound X-Trace-ID wins over a freshly minted
// one, so log lines can be stitched across services.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r.WithContext(log.WithContext(r.Context())))
	})
}
