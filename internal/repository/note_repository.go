package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// NoteRepository provides data access methods for the strategy_note table.
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new NoteRepository with the provided database connection.
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func scanNote(scan func(dest ...any) error) (model.StrategyNote, error) {
	var n model.StrategyNote
	var symbol sql.NullString
	var createdAtStr, updatedAtStr string

	if err := scan(&n.ID, &symbol, &n.Title, &n.Body, &createdAtStr, &updatedAtStr); err != nil {
		return model.StrategyNote{}, err
	}
	if symbol.Valid {
		n.Symbol = symbol.String
	}

	var err error
	n.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.StrategyNote{}, fmt.Errorf("failed to parse date: %w", err)
	}
	n.UpdatedAt, err = ParseTime(updatedAtStr)
	if err != nil {
		return model.StrategyNote{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return n, nil
}

// List retrieves all strategy notes, newest first.
func (s *NoteRepository) List() ([]model.StrategyNote, error) {
	query := `
		SELECT id, symbol, title, body, created_at, updated_at
		FROM strategy_note
		ORDER BY created_at DESC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query strategy_note table: %w", err)
	}
	defer rows.Close()

	notes := []model.StrategyNote{}
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan strategy_note table results: %w", err)
		}
		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating strategy_note table: %w", err)
	}

	return notes, nil
}

// Get retrieves a single strategy note by ID.
// Returns apperrors.ErrNoteNotFound when no row matches.
func (s *NoteRepository) Get(noteID string) (model.StrategyNote, error) {
	query := `
		SELECT id, symbol, title, body, created_at, updated_at
		FROM strategy_note
		WHERE id = ?
	`

	n, err := scanNote(s.db.QueryRow(query, noteID).Scan)
	if err == sql.ErrNoRows {
		return model.StrategyNote{}, apperrors.ErrNoteNotFound
	}
	if err != nil {
		return model.StrategyNote{}, fmt.Errorf("failed to scan strategy_note table results: %w", err)
	}

	return n, nil
}

// Insert stores a new strategy note.
func (s *NoteRepository) Insert(ctx context.Context, n *model.StrategyNote) error {
	query := `
		INSERT INTO strategy_note (id, symbol, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		n.ID,
		n.Symbol,
		n.Title,
		n.Body,
		n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		n.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into strategy_note table: %w", err)
	}

	return nil
}

// Update overwrites the symbol, title, body and updated_at of an existing note.
// Returns apperrors.ErrNoteNotFound when no row matches.
func (s *NoteRepository) Update(ctx context.Context, n *model.StrategyNote) error {
	query := `
		UPDATE strategy_note
		SET symbol = ?, title = ?, body = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		n.Symbol,
		n.Title,
		n.Body,
		n.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update strategy_note table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}

// Delete removes a strategy note by ID.
// Returns apperrors.ErrNoteNotFound when no row matches.
func (s *NoteRepository) Delete(ctx context.Context, noteID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM strategy_note WHERE id = ?`, noteID)
	if err != nil {
		return fmt.Errorf("failed to delete from strategy_note table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNoteNotFound
	}

	return nil
}
