package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/ledger"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
)

// NoteService handles strategy note business logic.
type NoteService struct {
	noteRepo *repository.NoteRepository
}

// NewNoteService creates a new NoteService with the provided repository dependencies.
func NewNoteService(
	noteRepo *repository.NoteRepository,
) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
	}
}

// ListNotes retrieves all strategy notes, newest first.
func (s *NoteService) ListNotes() ([]model.StrategyNote, error) {
	return s.noteRepo.List()
}

// GetNote retrieves a single strategy note by its ID.
func (s *NoteService) GetNote(noteID string) (model.StrategyNote, error) {
	return s.noteRepo.Get(noteID)
}

// CreateNote stores a new strategy note.
func (s *NoteService) CreateNote(ctx context.Context, req request.CreateNoteRequest) (*model.StrategyNote, error) {
	now := time.Now().UTC()
	note := &model.StrategyNote{
		ID:        uuid.New().String(),
		Symbol:    ledger.NormalizeSymbol(req.Symbol),
		Title:     req.Title,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Insert(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create strategy note: %w", err)
	}

	return note, nil
}

// UpdateNote applies the provided fields to an existing note.
func (s *NoteService) UpdateNote(ctx context.Context, noteID string, req request.UpdateNoteRequest) (*model.StrategyNote, error) {
	note, err := s.noteRepo.Get(noteID)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		note.Symbol = ledger.NormalizeSymbol(*req.Symbol)
	}
	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Body != nil {
		note.Body = *req.Body
	}
	note.UpdatedAt = time.Now().UTC()

	if err := s.noteRepo.Update(ctx, &note); err != nil {
		return nil, fmt.Errorf("failed to update strategy note: %w", err)
	}

	return &note, nil
}

// DeleteNote removes a strategy note by ID.
func (s *NoteService) DeleteNote(ctx context.Context, noteID string) error {
	return s.noteRepo.Delete(ctx, noteID)
}
