// Package server runs the note keeper's HTTP server: it binds the
// router to the configured address, listens for stop signals and drains
// in-flight requests on the way down.
package server
