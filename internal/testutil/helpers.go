package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/etfolio/etf-tracker-backend/internal/repository"
	"github.com/etfolio/etf-tracker-backend/internal/service"
)

func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)

	return service.NewLedgerService(
		transactionRepo,
	)
}

func NewTestHoldingsService(t *testing.T, db *sql.DB) *service.HoldingsService {
	t.Helper()

	ledgerService := NewTestLedgerService(t, db)
	reserveRepo := repository.NewReserveRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)

	return service.NewHoldingsService(
		ledgerService,
		reserveRepo,
		quoteRepo,
	)
}

// NewTestQuoteService creates a QuoteService backed by the given quote
// client, so tests never make real provider calls.
func NewTestQuoteService(t *testing.T, db *sql.DB, client service.QuoteClient) *service.QuoteService {
	t.Helper()

	quoteRepo := repository.NewQuoteRepository(db)
	ledgerService := NewTestLedgerService(t, db)

	return service.NewQuoteService(
		client,
		quoteRepo,
		ledgerService,
	)
}

func NewTestNoteService(t *testing.T, db *sql.DB) *service.NoteService {
	t.Helper()

	noteRepo := repository.NewNoteRepository(db)

	return service.NewNoteService(
		noteRepo,
	)
}

func NewTestExportService(t *testing.T, db *sql.DB) *service.ExportService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	reserveRepo := repository.NewReserveRepository(db)

	return service.NewExportService(
		transactionRepo,
		reserveRepo,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("SOXX")
//	// Returns: "SOXX1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}

// TestEncryptionKey is a fixed fernet key for tests. Never use it outside
// test code.
const TestEncryptionKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="
