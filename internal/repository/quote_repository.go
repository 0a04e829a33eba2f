package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// QuoteRepository provides data access methods for the quote_cache table,
// which holds the last-known market price per symbol. Quote fetches are
// best-effort; the cache is what rendering actually reads.
type QuoteRepository struct {
	db *sql.DB
}

// NewQuoteRepository creates a new QuoteRepository with the provided database connection.
func NewQuoteRepository(db *sql.DB) *QuoteRepository {
	return &QuoteRepository{db: db}
}

// ListAll returns the cached quote for every symbol that has one.
func (s *QuoteRepository) ListAll() (map[string]model.Quote, error) {
	rows, err := s.db.Query(`SELECT symbol, price, currency, fetched_at FROM quote_cache`)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote_cache table: %w", err)
	}
	defer rows.Close()

	quotes := make(map[string]model.Quote)
	for rows.Next() {
		var q model.Quote
		var currency sql.NullString
		var fetchedAtStr string

		if err := rows.Scan(&q.Symbol, &q.Price, &currency, &fetchedAtStr); err != nil {
			return nil, fmt.Errorf("failed to scan quote_cache table results: %w", err)
		}
		if currency.Valid {
			q.Currency = currency.String
		}
		q.FetchedAt, err = ParseTime(fetchedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		quotes[q.Symbol] = q
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote_cache table: %w", err)
	}

	return quotes, nil
}

// Upsert stores a fetched quote, overwriting any previous price for the symbol.
func (s *QuoteRepository) Upsert(ctx context.Context, q model.Quote) error {
	query := `
		INSERT INTO quote_cache (symbol, price, currency, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET price = excluded.price, currency = excluded.currency, fetched_at = excluded.fetched_at
	`

	_, err := s.db.ExecContext(ctx, query,
		q.Symbol,
		q.Price,
		q.Currency,
		q.FetchedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into quote_cache table: %w", err)
	}

	return nil
}
