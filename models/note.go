package models

import "time"

// Note represents a single text note owned by exactly one user.
// Content is stored as raw markup and is rendered verbatim; the
// application applies no sanitization on write or read.
type Note struct {
	// NoteID is the internal unique identifier of the note.
	// It is assigned by the database on insert.
	NoteID int64 `json:"id"`

	// OwnerID references the user the note belongs to. Every note
	// operation is scoped by this field; notes of other users are
	// indistinguishable from nonexistent ones.
	OwnerID int64 `json:"-"`

	// Title is the short heading shown in note listings.
	Title string `json:"title"`

	// Content is the note body. Stored exactly as submitted.
	Content string `json:"content"`

	// IsStarred marks the note as a favourite. Defaults to false.
	IsStarred bool `json:"is_starred"`

	// IsPinned keeps the note at the top of listings. Defaults to false.
	IsPinned bool `json:"is_pinned"`

	// CreatedAt is the timestamp set at creation. Immutable after insert;
	// edits never touch it.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
