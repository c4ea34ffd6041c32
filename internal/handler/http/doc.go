// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, form handlers, and middleware used by the
// server-rendered web UI. Cross-cutting concerns such as session resolution,
// the authentication gate, request tracing, access logging, and response
// compression are handled in this package before requests are delegated to
// the service layer.
package http
