// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-note-keeper server handlers and middleware.
//
// All Msg* constants are human-readable notices that are flashed to the user
// on the next rendered page to describe the outcome of an operation. Keeping
// them in one place ensures consistent wording throughout the UI.
package app

const (
	// MsgAllFieldsRequired is flashed when a submitted form is missing a
	// required field or contains only whitespace in one.
	MsgAllFieldsRequired = "All fields are required."

	// MsgEmailAlreadyTaken is flashed when a registration attempt is
	// rejected because the requested email is already in use.
	MsgEmailAlreadyTaken = "This email is already registered."

	// MsgAccountCreated is flashed after successful registration, on the
	// login page the user is redirected to.
	MsgAccountCreated = "Account created. Please log in."

	// MsgInvalidEmailPassword is flashed for every failed login attempt.
	// Unknown emails and wrong passwords produce this same message, so the
	// login form cannot be used to probe which accounts exist.
	MsgInvalidEmailPassword = "Invalid email or password."

	// MsgLoginRequired is flashed when an anonymous request hits a route
	// behind the auth gate and is redirected to the login page.
	MsgLoginRequired = "Please log in to continue."

	// MsgLoggedOut is flashed on the login page after the session has been
	// deleted.
	MsgLoggedOut = "You have been logged out."

	// MsgNoteAdded is flashed after a note has been created.
	MsgNoteAdded = "Note added."

	// MsgNoteUpdated is flashed after a note's title and content have been
	// overwritten.
	MsgNoteUpdated = "Note updated."

	// MsgNoteDeleted is flashed after a note has been removed.
	MsgNoteDeleted = "Note deleted."

	// MsgNoteNotFound is flashed when an operation targets a note that does
	// not exist for the current user. A note owned by somebody else produces
	// the same message.
	MsgNoteNotFound = "Note not found."

	// MsgNoteStarred and MsgNoteUnstarred name the state a note ends up in
	// after a star toggle.
	MsgNoteStarred   = "Note starred."
	MsgNoteUnstarred = "Note unstarred."

	// MsgNotePinned and MsgNoteUnpinned name the state a note ends up in
	// after a pin toggle.
	MsgNotePinned   = "Note pinned."
	MsgNoteUnpinned = "Note unpinned."

	// MsgSomethingWentWrong is the generic notice shown when a server-side
	// failure occurs that the user cannot resolve. The underlying cause is
	// only logged.
	MsgSomethingWentWrong = "Something went wrong."
)
