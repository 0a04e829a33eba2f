package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
)

// ExportService renders the full ledger as CSV or as a JSON snapshot.
type ExportService struct {
	transactionRepo *repository.TransactionRepository
	reserveRepo     *repository.ReserveRepository
}

// NewExportService creates a new ExportService with the provided repository dependencies.
func NewExportService(
	transactionRepo *repository.TransactionRepository,
	reserveRepo *repository.ReserveRepository,
) *ExportService {
	return &ExportService{
		transactionRepo: transactionRepo,
		reserveRepo:     reserveRepo,
	}
}

// WriteCSV streams the ledger as CSV in replay order.
func (s *ExportService) WriteCSV(w io.Writer) error {
	transactions, err := s.transactionRepo.List()
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "symbol", "action", "shares", "price", "total", "notes"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.Date.Format("2006-01-02"),
			t.Symbol,
			string(t.Action),
			strconv.FormatFloat(t.Shares, 'f', -1, 64),
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.FormatFloat(t.Total, 'f', -1, 64),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Snapshot builds the full ledger snapshot used for JSON export and for
// pushes to the remote store.
func (s *ExportService) Snapshot() (model.LedgerSnapshot, error) {
	transactions, err := s.transactionRepo.List()
	if err != nil {
		return model.LedgerSnapshot{}, err
	}

	reserves, err := s.reserveRepo.ListAll()
	if err != nil {
		return model.LedgerSnapshot{}, err
	}

	return model.LedgerSnapshot{
		Version:      model.SnapshotVersion,
		ExportedAt:   time.Now().UTC(),
		Transactions: transactions,
		Reserves:     reserves,
	}, nil
}
