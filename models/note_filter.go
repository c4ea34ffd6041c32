package models

import "time"

// NoteFilter describes the criteria used when listing notes.
// OwnerID is always required; every other field is optional and
// narrows the result set (all active clauses are ANDed together).
type NoteFilter struct {
	// OwnerID restricts the listing to notes of a single user.
	// Required: a filter without an owner matches nothing.
	OwnerID int64

	// Starred, when true, restricts the listing to starred notes.
	Starred bool

	// Pinned, when true, restricts the listing to pinned notes.
	Pinned bool

	// CreatedFrom, when non-zero, keeps only notes created at or after
	// this instant (start of the requested calendar day).
	CreatedFrom time.Time

	// CreatedTo, when non-zero, keeps only notes created at or before
	// this instant (end of the requested calendar day, inclusive).
	CreatedTo time.Time
}
