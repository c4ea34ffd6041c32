// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the server-side state behind the opaque cookie token.
// It maps a session identifier to the authenticated user (if any) and
// carries the pending flash messages for that browser.
type Session struct {
	// SessionID is the opaque identifier (UUID string) referenced by the
	// signed cookie token. Never exposed to the client in raw form.
	SessionID string `json:"-"`

	// UserID is the authenticated owner of the session, or zero for an
	// anonymous session. Anonymous sessions exist only to carry flash
	// messages across redirects before login.
	UserID int64 `json:"-"`

	// Flashes holds the one-shot notices queued for the next page render.
	// Read-and-cleared atomically by the session repository.
	Flashes []Flash `json:"-"`

	// CreatedAt is the timestamp the session row was inserted.
	CreatedAt time.Time `json:"-"`

	// ExpiresAt is the instant after which the session no longer
	// resolves. Expired rows are removed by the purge worker.
	ExpiresAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsAnonymous reports whether the session is not bound to a user.
func (s Session) IsAnonymous() bool {
	return s.UserID == 0
}

// IsExpired reports whether the session has passed its expiry instant.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
