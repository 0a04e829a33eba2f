package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the ledger_transaction table.
// The ledger is append/delete only: transactions are never updated in place.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// List retrieves the full ledger in replay order: date ascending, with
// insertion time and ID as tie-breakers so a replay over the result is
// deterministic even for same-day transactions.
func (s *TransactionRepository) List() ([]model.Transaction, error) {
	query := `
		SELECT id, date, symbol, action, shares, price, total, notes, created_at
		FROM ledger_transaction
		ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var notes sql.NullString
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&dateStr,
			&t.Symbol,
			&t.Action,
			&t.Shares,
			&t.Price,
			&t.Total,
			&notes,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger_transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		if notes.Valid {
			t.Notes = notes.String
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger_transaction table: %w", err)
	}

	return transactions, nil
}

// Get retrieves a single transaction by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (s *TransactionRepository) Get(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, date, symbol, action, shares, price, total, notes, created_at
		FROM ledger_transaction
		WHERE id = ?
	`

	var dateStr, createdAtStr string
	var notes sql.NullString
	var t model.Transaction

	err := s.db.QueryRow(query, transactionID).Scan(
		&t.ID,
		&dateStr,
		&t.Symbol,
		&t.Action,
		&t.Shares,
		&t.Price,
		&t.Total,
		&notes,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan ledger_transaction table results: %w", err)
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	if notes.Valid {
		t.Notes = notes.String
	}

	return t, nil
}

// Insert appends a transaction to the ledger.
func (s *TransactionRepository) Insert(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO ledger_transaction (id, date, symbol, action, shares, price, total, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		t.ID,
		t.Date.Format("2006-01-02"),
		t.Symbol,
		string(t.Action),
		t.Shares,
		t.Price,
		t.Total,
		t.Notes,
		t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to insert into ledger_transaction table: %w", err)
	}

	return nil
}

// Delete removes a transaction from the ledger by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (s *TransactionRepository) Delete(ctx context.Context, transactionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM ledger_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete from ledger_transaction table: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// ReplaceAll swaps the entire ledger for the given sequence in one
// database transaction. Used by sync pull, which replaces local state with
// a validated remote snapshot; a failure leaves the ledger untouched.
func (s *TransactionRepository) ReplaceAll(ctx context.Context, transactions []model.Transaction) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_transaction`); err != nil {
		return fmt.Errorf("failed to clear ledger_transaction table: %w", err)
	}

	query := `
		INSERT INTO ledger_transaction (id, date, symbol, action, shares, price, total, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, t := range transactions {
		_, err := tx.ExecContext(ctx, query,
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Symbol,
			string(t.Action),
			t.Shares,
			t.Price,
			t.Total,
			t.Notes,
			t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		)
		if err != nil {
			return fmt.Errorf("failed to insert into ledger_transaction table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ledger replacement: %w", err)
	}

	return nil
}
