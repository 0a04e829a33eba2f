package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test ledger transactions.
//
// Example usage:
//
//	// Simple creation with defaults
//	transaction := testutil.NewTransaction().Build(t, db)
//
//	// Customized transaction
//	transaction := testutil.NewTransaction().
//	    WithSymbol("SOXX").
//	    Sell(50, 300).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Date      time.Time
	Symbol    string
	Action    model.Action
	Shares    float64
	Price     float64
	Total     float64
	Notes     string
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults:
// a buy of 10 shares at 100 with the total derived from shares and price.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Symbol:    "SOXX",
		Action:    model.ActionBuy,
		Shares:    10,
		Price:     100,
		Total:     1000,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets a custom transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithSymbol sets a custom symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithNotes sets the free-text notes.
func (b *TransactionBuilder) WithNotes(notes string) *TransactionBuilder {
	b.Notes = notes
	return b
}

// WithTotal overrides the derived total, e.g. to include fees.
func (b *TransactionBuilder) WithTotal(total float64) *TransactionBuilder {
	b.Total = total
	return b
}

// Buy configures the transaction as a buy of the given shares at the given
// price, with the total derived from them.
func (b *TransactionBuilder) Buy(shares, price float64) *TransactionBuilder {
	b.Action = model.ActionBuy
	b.Shares = shares
	b.Price = price
	b.Total = shares * price
	return b
}

// Sell configures the transaction as a sell of the given shares at the given
// price, with the total derived from them.
func (b *TransactionBuilder) Sell(shares, price float64) *TransactionBuilder {
	b.Action = model.ActionSell
	b.Shares = shares
	b.Price = price
	b.Total = shares * price
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO ledger_transaction (id, date, symbol, action, shares, price, total, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Date.Format("2006-01-02"),
		b.Symbol,
		string(b.Action),
		b.Shares,
		b.Price,
		b.Total,
		b.Notes,
		b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Date:      b.Date,
		Symbol:    b.Symbol,
		Action:    b.Action,
		Shares:    b.Shares,
		Price:     b.Price,
		Total:     b.Total,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}

// NoteBuilder provides a fluent interface for creating test strategy notes.
type NoteBuilder struct {
	ID        string
	Symbol    string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote creates a NoteBuilder with sensible defaults.
func NewNote() *NoteBuilder {
	now := time.Now().UTC()
	return &NoteBuilder{
		ID:        MakeID(),
		Symbol:    "",
		Title:     "Test note " + randomAlphanumeric(6),
		Body:      "Test note body",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// WithID sets a custom ID.
func (b *NoteBuilder) WithID(id string) *NoteBuilder {
	b.ID = id
	return b
}

// WithSymbol ties the note to a symbol.
func (b *NoteBuilder) WithSymbol(symbol string) *NoteBuilder {
	b.Symbol = symbol
	return b
}

// WithTitle sets a custom title.
func (b *NoteBuilder) WithTitle(title string) *NoteBuilder {
	b.Title = title
	return b
}

// WithBody sets a custom body.
func (b *NoteBuilder) WithBody(body string) *NoteBuilder {
	b.Body = body
	return b
}

// Build creates the note in the database and returns it.
func (b *NoteBuilder) Build(t *testing.T, db *sql.DB) model.StrategyNote {
	t.Helper()

	query := `
		INSERT INTO strategy_note (id, symbol, title, body, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID,
		b.Symbol,
		b.Title,
		b.Body,
		b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		b.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		t.Fatalf("Failed to create test note: %v", err)
	}

	return model.StrategyNote{
		ID:        b.ID,
		Symbol:    b.Symbol,
		Title:     b.Title,
		Body:      b.Body,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateQuote stores a cached quote directly, bypassing the provider.
//
// Example usage:
//
//	testutil.CreateQuote(t, db, "SOXX", 290.50)
func CreateQuote(t *testing.T, db *sql.DB, symbol string, price float64) model.Quote {
	t.Helper()

	quote := model.Quote{
		Symbol:    symbol,
		Price:     price,
		Currency:  "USD",
		FetchedAt: time.Now().UTC(),
	}

	query := `
		INSERT INTO quote_cache (symbol, price, currency, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(symbol) DO UPDATE SET price = excluded.price, fetched_at = excluded.fetched_at
	`
	_, err := db.Exec(query, quote.Symbol, quote.Price, quote.Currency, quote.FetchedAt.Format("2006-01-02T15:04:05Z07:00"))
	if err != nil {
		t.Fatalf("Failed to create test quote: %v", err)
	}

	return quote
}

// CreateReserve stores a reserved capital entry directly.
func CreateReserve(t *testing.T, db *sql.DB, symbol string, reserved float64) {
	t.Helper()

	query := `
		INSERT INTO symbol_reserve (symbol, reserved)
		VALUES (?, ?)
		ON CONFLICT(symbol) DO UPDATE SET reserved = excluded.reserved
	`
	if _, err := db.Exec(query, symbol, reserved); err != nil {
		t.Fatalf("Failed to create test reserve: %v", err)
	}
}
