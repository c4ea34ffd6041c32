package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD operations directly against the "notes" table
// using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (owner_id, note_id, etc.).
//
// Ownership is enforced at the SQL level: every query that targets an
// existing note filters by owner_id as well as note_id, so a note belonging
// to another user yields [ErrNoteNotFound] rather than leaking its existence.
type noteRepository struct {
	*DB
	logger *logger.Logger
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	return &noteRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateNote persists a new note and returns the fully populated
// [models.Note] with server-assigned fields (NoteID, CreatedAt, and the
// default false flags).
func (n *noteRepository) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := n.DB.QueryRowContext(ctx, createNote, note.OwnerID, note.Title, note.Content)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("owner_id", note.OwnerID).
			Msg("failed to execute insert query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var saved models.Note
	if err := scanNote(row, &saved); err != nil {
		log.Err(err).
			Str("func", "noteRepository.CreateNote").
			Int64("owner_id", note.OwnerID).
			Msg("failed to scan created note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return saved, nil
}

// FindNoteByID retrieves a single note by its primary key, scoped to the
// given owner.
//
// Returns [ErrNoteNotFound] when no note with this ID exists for this owner.
func (n *noteRepository) FindNoteByID(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := n.DB.QueryRowContext(ctx, findNoteByID, noteID, ownerID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.FindNoteByID").
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to execute select query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var found models.Note
	if err := scanNote(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "noteRepository.FindNoteByID").
				Int64("owner_id", ownerID).
				Int64("note_id", noteID).
				Msg("note not found")
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.FindNoteByID").
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to scan note row")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// FindNotes retrieves the owner's notes that match the criteria in filter.
//
// Filtering is always applied by OwnerID. Each optional filter field narrows
// the result further; unset fields impose no constraint. Results are ordered
// pinned-first, then newest-first.
//
// Returns an empty slice when no notes match.
func (n *noteRepository) FindNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindNotesQuery(ctx, filter)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.FindNotes").
			Int64("owner_id", filter.OwnerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.FindNotes").
			Int64("owner_id", filter.OwnerID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return n.collectNotes(ctx, rows, filter.OwnerID, "noteRepository.FindNotes")
}

// SearchNotes retrieves the owner's notes whose title or content contains
// searchText, matched case-insensitively. Results are ordered pinned-first,
// then newest-first.
//
// Returns an empty slice when nothing matches.
func (n *noteRepository) SearchNotes(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSearchNotesQuery(ctx, ownerID, searchText)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SearchNotes").
			Int64("owner_id", ownerID).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := n.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.SearchNotes").
			Int64("owner_id", ownerID).
			Msg("failed to execute query for searching notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return n.collectNotes(ctx, rows, ownerID, "noteRepository.SearchNotes")
}

// UpdateNote overwrites the title and content of an existing note and
// returns the updated row.
//
// The note is identified by note.NoteID and note.OwnerID; the flag fields
// and creation timestamp are left untouched. Returns [ErrNoteNotFound] when
// the note does not exist for this owner.
func (n *noteRepository) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := n.DB.QueryRowContext(ctx, updateNote, note.NoteID, note.OwnerID, note.Title, note.Content)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("owner_id", note.OwnerID).
			Int64("note_id", note.NoteID).
			Msg("failed to execute update query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var updated models.Note
	if err := scanNote(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "noteRepository.UpdateNote").
				Int64("owner_id", note.OwnerID).
				Int64("note_id", note.NoteID).
				Msg("note not found")
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "noteRepository.UpdateNote").
			Int64("owner_id", note.OwnerID).
			Int64("note_id", note.NoteID).
			Msg("failed to scan updated note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	log.Info().
		Str("func", "noteRepository.UpdateNote").
		Int64("owner_id", note.OwnerID).
		Int64("note_id", note.NoteID).
		Msg("successfully updated note")

	return updated, nil
}

// DeleteNote removes a note permanently.
//
// Returns [ErrNoteNotFound] when no row was deleted, i.e. the note does not
// exist or belongs to another user.
func (n *noteRepository) DeleteNote(ctx context.Context, ownerID int64, noteID int64) error {
	log := logger.FromContext(ctx)

	result, err := n.DB.ExecContext(ctx, deleteNote, noteID, ownerID)
	if err != nil {
		log.Err(err).
			Str("func", "noteRepository.DeleteNote").
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "noteRepository.DeleteNote").
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	log.Info().
		Str("func", "noteRepository.DeleteNote").
		Int64("owner_id", ownerID).
		Int64("note_id", noteID).
		Msg("successfully deleted note")

	return nil
}

// ToggleStar flips the starred flag of a note in a single UPDATE statement
// and returns the note in its new state.
//
// Returns [ErrNoteNotFound] when the note does not exist for this owner.
func (n *noteRepository) ToggleStar(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	return n.toggleFlag(ctx, toggleNoteStar, ownerID, noteID, "noteRepository.ToggleStar")
}

// TogglePin flips the pinned flag of a note in a single UPDATE statement
// and returns the note in its new state.
//
// Returns [ErrNoteNotFound] when the note does not exist for this owner.
func (n *noteRepository) TogglePin(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	return n.toggleFlag(ctx, toggleNotePin, ownerID, noteID, "noteRepository.TogglePin")
}

// toggleFlag executes one of the flag-flipping UPDATE queries and scans the
// returned row.
func (n *noteRepository) toggleFlag(ctx context.Context, query string, ownerID int64, noteID int64, funcName string) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := n.DB.QueryRowContext(ctx, query, noteID, ownerID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to execute toggle query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var toggled models.Note
	if err := scanNote(row, &toggled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", funcName).
				Int64("owner_id", ownerID).
				Int64("note_id", noteID).
				Msg("note not found")
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Int64("note_id", noteID).
			Msg("failed to scan toggled note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return toggled, nil
}

// collectNotes drains rows into a slice of notes, reporting scan and
// iteration errors with the caller's function name.
func (n *noteRepository) collectNotes(ctx context.Context, rows *sql.Rows, ownerID int64, funcName string) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	notes := make([]models.Note, 0, 50)

	for rows.Next() {
		var note models.Note

		scanErr := rows.Scan(
			&note.NoteID,
			&note.OwnerID,
			&note.Title,
			&note.Content,
			&note.IsStarred,
			&note.IsPinned,
			&note.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Int64("owner_id", ownerID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Int64("owner_id", ownerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return notes, nil
}

// scanNote scans a single-row result into note using the canonical column
// order shared by all note queries.
func scanNote(row *sql.Row, note *models.Note) error {
	return row.Scan(
		&note.NoteID,
		&note.OwnerID,
		&note.Title,
		&note.Content,
		&note.IsStarred,
		&note.IsPinned,
		&note.CreatedAt,
	)
}
