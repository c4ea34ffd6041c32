// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// sessionRepository is the PostgreSQL-backed implementation of
// [SessionRepository]. It manages rows of the "sessions" table, which map
// opaque session identifiers to user accounts and carry the pending flash
// messages as a JSONB array.
//
// Anonymous sessions are stored with a NULL user_id; [models.Session] uses
// UserID == 0 for the same state, and the conversion happens here.
type sessionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &sessionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateSession inserts a new session row and returns the canonical database
// representation, including the server-assigned creation timestamp and the
// empty flash queue.
func (s *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	userID := sql.NullInt64{Int64: session.UserID, Valid: session.UserID != 0}

	row := s.DB.QueryRowContext(ctx, createSession, session.SessionID, userID, session.ExpiresAt)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.CreateSession").
			Str("session_id", session.SessionID).
			Msg("failed to execute insert query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	saved, err := scanSession(row)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.CreateSession").
			Str("session_id", session.SessionID).
			Msg("failed to scan created session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// FindSessionByID retrieves a session row by its identifier.
//
// Returns [ErrSessionNotFound] when no such session exists, typically
// because it expired and was purged or was deleted at logout.
func (s *sessionRepository) FindSessionByID(ctx context.Context, sessionID string) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := s.DB.QueryRowContext(ctx, findSessionByID, sessionID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "sessionRepository.FindSessionByID").
			Str("session_id", sessionID).
			Msg("failed to execute select query")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	found, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "sessionRepository.FindSessionByID").
				Str("session_id", sessionID).
				Msg("session not found")
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).
			Str("func", "sessionRepository.FindSessionByID").
			Str("session_id", sessionID).
			Msg("failed to scan session row")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// DeleteSession removes a session row permanently.
//
// Returns [ErrSessionNotFound] when no row was deleted; callers handling
// logout treat that as a no-op.
func (s *sessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, deleteSession, sessionID)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.DeleteSession").
			Str("session_id", sessionID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "sessionRepository.DeleteSession").
			Str("session_id", sessionID).
			Msg("session not found")
		return ErrSessionNotFound
	}

	return nil
}

// AddFlash appends a flash message to the session's JSONB queue.
//
// The message is marshalled as a one-element array and concatenated onto the
// stored array in a single UPDATE, so concurrent appends never lose
// messages. Returns [ErrSessionNotFound] when the session does not exist.
func (s *sessionRepository) AddFlash(ctx context.Context, sessionID string, flash models.Flash) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal([]models.Flash{flash})
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.AddFlash").
			Str("session_id", sessionID).
			Msg("failed to marshal flash message")
		return fmt.Errorf("failed to marshal flash message: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, addSessionFlash, sessionID, payload)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.AddFlash").
			Str("session_id", sessionID).
			Msg("failed to execute flash append query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "sessionRepository.AddFlash").
			Str("session_id", sessionID).
			Msg("session not found")
		return ErrSessionNotFound
	}

	return nil
}

// PopFlashes returns the session's queued flash messages and clears the
// queue in one atomic statement.
//
// The CTE-based query ([popSessionFlashes]) returns the pre-clear queue and
// the cleared session ID; both come back NULL when the session row does not
// exist, which maps to [ErrSessionNotFound].
func (s *sessionRepository) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	log := logger.FromContext(ctx)

	var rawFlashes []byte
	var clearedID *string

	err := s.DB.QueryRowContext(ctx, popSessionFlashes, sessionID).Scan(&rawFlashes, &clearedID)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.PopFlashes").
			Str("session_id", sessionID).
			Msg("failed to execute pop flashes query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// session not found: target_session empty -> both NULL
	if clearedID == nil {
		log.Warn().
			Str("func", "sessionRepository.PopFlashes").
			Str("session_id", sessionID).
			Msg("session not found")
		return nil, ErrSessionNotFound
	}

	flashes, err := unmarshalFlashes(rawFlashes)
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.PopFlashes").
			Str("session_id", sessionID).
			Msg("failed to unmarshal flash messages")
		return nil, err
	}

	return flashes, nil
}

// DeleteExpired removes every session whose expiry is at or before now and
// returns the number of deleted rows. It is called periodically by the
// session purge worker.
//
// A transient failure (dropped connection, deadlock) is retried once before
// giving up; the next worker tick covers anything that still fails.
func (s *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.DB.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil && s.DB.errorClassificator.Classify(err) == Retryable {
		log.Warn().
			Err(err).
			Str("func", "sessionRepository.DeleteExpired").
			Msg("retrying expired sessions delete after transient error")
		result, err = s.DB.ExecContext(ctx, deleteExpiredSessions, now)
	}
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.DeleteExpired").
			Time("now", now).
			Msg("failed to execute expired sessions delete query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "sessionRepository.DeleteExpired").
			Msg("failed to read affected rows count")
		return 0, err
	}

	return deleted, nil
}

// scanSession scans a single-row session result, converting the nullable
// user_id column and unmarshalling the flash queue.
func scanSession(row *sql.Row) (models.Session, error) {
	var session models.Session
	var userID sql.NullInt64
	var rawFlashes []byte

	if err := row.Scan(&session.SessionID, &userID, &rawFlashes, &session.CreatedAt, &session.ExpiresAt); err != nil {
		return models.Session{}, err
	}

	if userID.Valid {
		session.UserID = userID.Int64
	}

	flashes, err := unmarshalFlashes(rawFlashes)
	if err != nil {
		return models.Session{}, err
	}
	session.Flashes = flashes

	return session, nil
}

// unmarshalFlashes decodes the JSONB flash column. A NULL or empty column
// yields an empty slice.
func unmarshalFlashes(raw []byte) ([]models.Flash, error) {
	if len(raw) == 0 {
		return []models.Flash{}, nil
	}

	var flashes []models.Flash
	if err := json.Unmarshal(raw, &flashes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flash messages: %w", err)
	}

	return flashes, nil
}
