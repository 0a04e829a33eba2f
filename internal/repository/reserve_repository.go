package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ReserveRepository provides data access methods for the symbol_reserve table.
// Reserved capital is a carried-forward, manually-edited value per symbol;
// nothing in the ledger replay writes to it.
type ReserveRepository struct {
	db *sql.DB
}

// NewReserveRepository creates a new ReserveRepository with the provided database connection.
func NewReserveRepository(db *sql.DB) *ReserveRepository {
	return &ReserveRepository{db: db}
}

// ListAll returns the reserved capital for every symbol that has one.
func (s *ReserveRepository) ListAll() (map[string]float64, error) {
	rows, err := s.db.Query(`SELECT symbol, reserved FROM symbol_reserve`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol_reserve table: %w", err)
	}
	defer rows.Close()

	reserves := make(map[string]float64)
	for rows.Next() {
		var symbol string
		var reserved float64
		if err := rows.Scan(&symbol, &reserved); err != nil {
			return nil, fmt.Errorf("failed to scan symbol_reserve table results: %w", err)
		}
		reserves[symbol] = reserved
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbol_reserve table: %w", err)
	}

	return reserves, nil
}

// Get returns the reserved capital for a symbol. A symbol with no entry
// has zero reserved capital; that is not an error.
func (s *ReserveRepository) Get(symbol string) (float64, error) {
	var reserved float64
	err := s.db.QueryRow(`SELECT reserved FROM symbol_reserve WHERE symbol = ?`, symbol).Scan(&reserved)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query symbol_reserve table: %w", err)
	}
	return reserved, nil
}

// Upsert sets the reserved capital for a symbol, inserting or overwriting.
func (s *ReserveRepository) Upsert(ctx context.Context, symbol string, reserved float64) error {
	query := `
		INSERT INTO symbol_reserve (symbol, reserved, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET reserved = excluded.reserved, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, symbol, reserved, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to upsert into symbol_reserve table: %w", err)
	}

	return nil
}
