// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// noteService is the concrete implementation of NoteService. Write
// operations validate their input; reads delegate straight to the
// repository, which already scopes every query by owner.
type noteService struct {
	noteRepository store.NoteRepository

	logger *logger.Logger
}

func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// CreateNote persists a new note for its owner.
//
// Returns ErrInvalidDataProvided when the owner is missing or the title or
// content is empty (whitespace-only counts as empty).
func (n *noteService) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.OwnerID == 0 || strings.TrimSpace(note.Title) == "" || strings.TrimSpace(note.Content) == "" {
		log.Error().Int64("owner_id", note.OwnerID).Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	return n.noteRepository.CreateNote(ctx, note)
}

func (n *noteService) GetNote(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	return n.noteRepository.FindNoteByID(ctx, ownerID, noteID)
}

func (n *noteService) ListNotes(ctx context.Context, filter models.NoteFilter) ([]models.Note, error) {
	return n.noteRepository.FindNotes(ctx, filter)
}

// SearchNotes finds the owner's notes whose title or content contains
// searchText. A blank query matches nothing and never reaches the database.
func (n *noteService) SearchNotes(ctx context.Context, ownerID int64, searchText string) ([]models.Note, error) {
	if strings.TrimSpace(searchText) == "" {
		return []models.Note{}, nil
	}

	return n.noteRepository.SearchNotes(ctx, ownerID, searchText)
}

// UpdateNote overwrites the title and content of an existing note.
//
// Returns ErrInvalidDataProvided when the identifying fields are missing or
// the new title or content is empty (whitespace-only counts as empty), and
// passes through store.ErrNoteNotFound when the note does not exist for
// this owner.
func (n *noteService) UpdateNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.NoteID == 0 || note.OwnerID == 0 || strings.TrimSpace(note.Title) == "" || strings.TrimSpace(note.Content) == "" {
		log.Error().
			Int64("owner_id", note.OwnerID).
			Int64("note_id", note.NoteID).
			Msg("invalid note data provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	return n.noteRepository.UpdateNote(ctx, note)
}

func (n *noteService) DeleteNote(ctx context.Context, ownerID int64, noteID int64) error {
	return n.noteRepository.DeleteNote(ctx, ownerID, noteID)
}

func (n *noteService) ToggleStar(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	return n.noteRepository.ToggleStar(ctx, ownerID, noteID)
}

func (n *noteService) TogglePin(ctx context.Context, ownerID int64, noteID int64) (models.Note, error) {
	return n.noteRepository.TogglePin(ctx, ownerID, noteID)
}
