// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (username, email, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, username, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, username, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`

	createNote = `INSERT INTO notes (owner_id, title, content)
    VALUES ($1, $2, $3)
    RETURNING note_id, owner_id, title, content, is_starred, is_pinned, created_at;`

	findNoteByID = `SELECT note_id, owner_id, title, content, is_starred, is_pinned, created_at
    FROM notes
    WHERE note_id = $1 AND owner_id = $2;`

	updateNote = `UPDATE notes
    SET title = $3, content = $4
    WHERE note_id = $1 AND owner_id = $2
    RETURNING note_id, owner_id, title, content, is_starred, is_pinned, created_at;`

	deleteNote = `DELETE FROM notes
    WHERE note_id = $1 AND owner_id = $2;`

	// Toggles flip the flag in a single statement so concurrent requests
	// never read a stale value between SELECT and UPDATE.
	toggleNoteStar = `UPDATE notes
    SET is_starred = NOT is_starred
    WHERE note_id = $1 AND owner_id = $2
    RETURNING note_id, owner_id, title, content, is_starred, is_pinned, created_at;`

	toggleNotePin = `UPDATE notes
    SET is_pinned = NOT is_pinned
    WHERE note_id = $1 AND owner_id = $2
    RETURNING note_id, owner_id, title, content, is_starred, is_pinned, created_at;`

	createSession = `INSERT INTO sessions (session_id, user_id, expires_at)
    VALUES ($1, $2, $3)
    RETURNING session_id, user_id, flash, created_at, expires_at;`

	findSessionByID = `SELECT session_id, user_id, flash, created_at, expires_at
    FROM sessions
    WHERE session_id = $1;`

	deleteSession = `DELETE FROM sessions
    WHERE session_id = $1;`

	addSessionFlash = `UPDATE sessions
    SET flash = flash || $2::jsonb
    WHERE session_id = $1;`

	// popSessionFlashes reads and clears the flash queue atomically.
	// The scalar subqueries yield (NULL, NULL) when the session row does
	// not exist, which the caller maps to ErrSessionNotFound.
	popSessionFlashes = `WITH target_session AS (
        SELECT session_id, flash
        FROM sessions
        WHERE session_id = $1
        FOR UPDATE
    ), cleared_session AS (
        UPDATE sessions
        SET flash = '[]'::jsonb
        FROM target_session
        WHERE sessions.session_id = target_session.session_id
        RETURNING sessions.session_id
    )
    SELECT (SELECT flash FROM target_session) AS flashes,
           (SELECT session_id FROM cleared_session) AS cleared_id;`

	deleteExpiredSessions = `DELETE FROM sessions
    WHERE expires_at <= $1;`
)

// noteColumns is the canonical column order used by every note query and the
// matching Scan calls.
var noteColumns = []string{
	"note_id",
	"owner_id",
	"title",
	"content",
	"is_starred",
	"is_pinned",
	"created_at",
}

// buildFindNotesQuery builds the filtered note listing query.
//
// The owner filter is always applied. The remaining filter fields contribute
// a WHERE clause only when set: zero time bounds and false flags mean "no
// constraint". Results are ordered pinned-first, then newest-first; note_id
// breaks ties for notes created in the same instant.
func buildFindNotesQuery(ctx context.Context, filter models.NoteFilter) (string, []any, error) {
	builder := squirrel.
		Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"owner_id": filter.OwnerID}).
		OrderBy("is_pinned DESC", "created_at DESC", "note_id DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Starred {
		builder = builder.Where(squirrel.Eq{"is_starred": true})
	}

	if filter.Pinned {
		builder = builder.Where(squirrel.Eq{"is_pinned": true})
	}

	if !filter.CreatedFrom.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"created_at": filter.CreatedFrom})
	}

	if !filter.CreatedTo.IsZero() {
		builder = builder.Where(squirrel.LtOrEq{"created_at": filter.CreatedTo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSearchNotesQuery builds the keyword search query: a case-insensitive
// substring match against title or content, scoped to the owner.
//
// searchText is embedded into the ILIKE pattern as a bound parameter with its
// LIKE metacharacters escaped, so user input can never widen the match.
func buildSearchNotesQuery(ctx context.Context, ownerID int64, searchText string) (string, []any, error) {
	pattern := "%" + escapeLikePattern(searchText) + "%"

	builder := squirrel.
		Select(noteColumns...).
		From("notes").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Or{
			squirrel.Expr("title ILIKE ?", pattern),
			squirrel.Expr("content ILIKE ?", pattern),
		}).
		OrderBy("is_pinned DESC", "created_at DESC", "note_id DESC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// escapeLikePattern neutralises the LIKE metacharacters in s so it matches
// literally inside an ILIKE pattern. Backslash is escaped first via the
// replacer, then "%" and "_". PostgreSQL uses backslash as the default
// escape character.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`%`, `\%`,
		`_`, `\_`,
	)

	return replacer.Replace(s)
}
