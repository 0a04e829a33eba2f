package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/service"
)

// ExportHandler handles HTTP requests for ledger export downloads.
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler with the provided service dependency.
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// ExportCSV handles GET requests to download the full ledger as a CSV file.
//
// Endpoint: GET /api/export/csv
// Response: 200 OK with text/csv attachment
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, _ *http.Request) {
	filename := "ledger-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	response.CSVHeaders(w, filename)

	// Headers are already written; a mid-stream failure can only be logged.
	if err := h.exportService.WriteCSV(w); err != nil {
		log.Printf("csv export: %v", err)
	}
}

// ExportJSON handles GET requests to download the full ledger snapshot,
// the same document that cloud sync pushes to the remote store.
//
// Endpoint: GET /api/export/json
// Response: 200 OK with LedgerSnapshot
// Error: 500 Internal Server Error if the ledger cannot be read
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, _ *http.Request) {
	snapshot, err := h.exportService.Snapshot()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to export ledger", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
