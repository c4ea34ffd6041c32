// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler
// (chi's [chi.Mux.MethodNotAllowed]). Where chi would answer 405 for a
// known path hit with the wrong method, this responds 404 instead: the
// app does not advertise which paths exist to callers probing them with
// stray methods.
//
// The route table is consulted once more before answering, and a method
// that does turn out to be registered is dispatched through the router
// as usual.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !routeHandlesMethod(router, r.URL.Path, r.Method) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		router.ServeHTTP(w, r)
	}
}

// routeHandlesMethod reports whether a registered route pattern exactly
// equals path and carries a handler for method. Parameterised patterns
// such as /edit-note/{noteID} never equal a concrete path, so requests
// to them fall out as unhandled here.
func routeHandlesMethod(router *chi.Mux, path, method string) bool {
	for _, route := range router.Routes() {
		if route.Pattern != path {
			continue
		}
		_, ok := route.Handlers[method]
		return ok
	}
	return false
}
