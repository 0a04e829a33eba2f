package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/testutil"
)

func TestTransactionHandler_ListTransactions(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ls := testutil.NewTestLedgerService(t, db)
		return NewTransactionHandler(ls), db
	}

	t.Run("returns empty array when ledger is empty", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response == nil {
			t.Error("Expected non-nil array, got nil")
		}

		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d transactions", len(response))
		}
	})

	t.Run("returns the ledger in replay order", func(t *testing.T) {
		handler, db := setupHandler(t)

		later := testutil.NewTransaction().WithDate(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)).Build(t, db)
		earlier := testutil.NewTransaction().WithDate(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(response))
		}

		if response[0].ID != earlier.ID {
			t.Errorf("Expected earlier transaction first, got %s", response[0].ID)
		}
		if response[1].ID != later.ID {
			t.Errorf("Expected later transaction second, got %s", response[1].ID)
		}
	})

	t.Run("returns 500 on database error", func(t *testing.T) {
		handler, db := setupHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.ListTransactions(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_GetTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ls := testutil.NewTestLedgerService(t, db)
		return NewTransactionHandler(ls), db
	}

	t.Run("returns transaction successfully", func(t *testing.T) {
		handler, db := setupHandler(t)

		tx := testutil.NewTransaction().WithSymbol("VGT").Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+tx.ID,
			map[string]string{"uuid": tx.ID},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Transaction
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.ID != tx.ID {
			t.Errorf("Expected transaction %s, got %s", tx.ID, response.ID)
		}
		if response.Symbol != "VGT" {
			t.Errorf("Expected symbol VGT, got %s", response.Symbol)
		}
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodGet,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.GetTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ls := testutil.NewTestLedgerService(t, db)
		return NewTransactionHandler(ls), db
	}

	t.Run("records a buy and returns the replayed positions", func(t *testing.T) {
		handler, db := setupHandler(t)

		payload := request.CreateTransactionRequest{
			Date:   "2024-03-01",
			Symbol: "soxx",
			Action: "buy",
			Shares: 107,
			Price:  280,
		}
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/transaction", payload)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response LedgerMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Transaction == nil {
			t.Fatal("Expected transaction in response")
		}
		if response.Transaction.Symbol != "SOXX" {
			t.Errorf("Expected normalized symbol SOXX, got %s", response.Transaction.Symbol)
		}
		if response.Transaction.Total != 107*280 {
			t.Errorf("Expected derived total %v, got %v", 107*280.0, response.Transaction.Total)
		}

		if len(response.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(response.Positions))
		}
		if response.Positions[0].Shares != 107 {
			t.Errorf("Expected 107 shares, got %v", response.Positions[0].Shares)
		}

		testutil.AssertRowCount(t, db, "ledger_transaction", 1)
	})

	t.Run("honors an explicit total that includes fees", func(t *testing.T) {
		handler, _ := setupHandler(t)

		total := 104.95
		payload := request.CreateTransactionRequest{
			Date:   "2024-03-01",
			Symbol: "SCHD",
			Action: "BUY",
			Shares: 1,
			Price:  100,
			Total:  &total,
		}
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/transaction", payload)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response LedgerMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Transaction.Total != 104.95 {
			t.Errorf("Expected stored total 104.95, got %v", response.Transaction.Total)
		}
		if response.Positions[0].Invested != 104.95 {
			t.Errorf("Expected invested 104.95, got %v", response.Positions[0].Invested)
		}
	})

	t.Run("rejects invalid action without mutating the ledger", func(t *testing.T) {
		handler, db := setupHandler(t)

		payload := request.CreateTransactionRequest{
			Date:   "2024-03-01",
			Symbol: "SOXX",
			Action: "HOLD",
			Shares: 10,
			Price:  100,
		}
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/transaction", payload)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "ledger_transaction", 0)
	})

	t.Run("rejects non-positive shares", func(t *testing.T) {
		handler, db := setupHandler(t)

		payload := request.CreateTransactionRequest{
			Date:   "2024-03-01",
			Symbol: "SOXX",
			Action: "BUY",
			Shares: 0,
			Price:  100,
		}
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/api/transaction", payload)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}

		testutil.AssertRowCount(t, db, "ledger_transaction", 0)
	})

	t.Run("rejects malformed JSON body", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/transaction", nil)
		w := httptest.NewRecorder()

		handler.CreateTransaction(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	setupHandler := func(t *testing.T) (*TransactionHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		ls := testutil.NewTestLedgerService(t, db)
		return NewTransactionHandler(ls), db
	}

	t.Run("deletes and returns the replayed positions", func(t *testing.T) {
		handler, db := setupHandler(t)

		keep := testutil.NewTransaction().WithSymbol("SOXX").Buy(100, 250).Build(t, db)
		remove := testutil.NewTransaction().WithSymbol("SOXX").Buy(7, 300).Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+remove.ID,
			map[string]string{"uuid": remove.ID},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response LedgerMutationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(response.Positions))
		}
		if response.Positions[0].Shares != keep.Shares {
			t.Errorf("Expected %v shares after delete, got %v", keep.Shares, response.Positions[0].Shares)
		}

		testutil.AssertRowCount(t, db, "ledger_transaction", 1)
	})

	t.Run("returns 404 for unknown transaction", func(t *testing.T) {
		handler, _ := setupHandler(t)

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/transaction/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeleteTransaction(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
