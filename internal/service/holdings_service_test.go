package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/service"
	"github.com/etfolio/etf-tracker-backend/internal/testutil"
)

// TestHoldingsService_GetHoldings tests the display-ready holdings view.
//
// WHY: Holdings is what the UI renders. This ensures positions, reserves and
// quotes merge correctly, and that a missing quote falls back to cost basis
// instead of failing the whole view.
func TestHoldingsService_GetHoldings(t *testing.T) {
	t.Run("values positions at the cached quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewTransaction().WithSymbol("SOXX").Buy(107, 280).Build(t, db)
		testutil.CreateQuote(t, db, "SOXX", 290)

		holdings, err := svc.GetHoldings()
		if err != nil {
			t.Fatalf("GetHoldings() returned unexpected error: %v", err)
		}

		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}

		h := holdings[0]
		if h.PriceSource != service.PriceSourceQuote {
			t.Errorf("Expected quote price source, got %s", h.PriceSource)
		}
		if h.MarketValue != 107*290 {
			t.Errorf("Expected market value %v, got %v", 107*290.0, h.MarketValue)
		}
		if h.UnrealizedGain != 107*290-107*280 {
			t.Errorf("Expected unrealized gain %v, got %v", 107*290-107*280.0, h.UnrealizedGain)
		}
	})

	t.Run("falls back to average entry without a quote", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewTransaction().WithSymbol("VGT").Buy(10, 500).Build(t, db)

		holdings, err := svc.GetHoldings()
		if err != nil {
			t.Fatalf("GetHoldings() returned unexpected error: %v", err)
		}

		if len(holdings) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(holdings))
		}
		if holdings[0].PriceSource != service.PriceSourceCostBasis {
			t.Errorf("Expected cost basis price source, got %s", holdings[0].PriceSource)
		}
		if holdings[0].UnrealizedGain != 0 {
			t.Errorf("Expected zero unrealized gain at cost basis, got %v", holdings[0].UnrealizedGain)
		}
	})

	t.Run("keeps fully closed positions in the view", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewTransaction().WithSymbol("SOXX").Buy(107, 280).Build(t, db)
		testutil.NewTransaction().WithSymbol("SOXX").Sell(107, 300).
			WithDate(testutil.NewTransaction().Date.AddDate(0, 0, 1)).Build(t, db)

		holdings, err := svc.GetHoldings()
		if err != nil {
			t.Fatalf("GetHoldings() returned unexpected error: %v", err)
		}

		if len(holdings) != 1 {
			t.Fatalf("Expected closed position to remain, got %d holdings", len(holdings))
		}
		if holdings[0].Shares != 0 || holdings[0].Invested != 0 {
			t.Errorf("Expected flat position, got %+v", holdings[0].Position)
		}
	})

	t.Run("attaches reserves to their positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		testutil.NewTransaction().WithSymbol("SOXX").Buy(10, 280).Build(t, db)
		testutil.CreateReserve(t, db, "SOXX", 5000)

		holdings, err := svc.GetHoldings()
		if err != nil {
			t.Fatalf("GetHoldings() returned unexpected error: %v", err)
		}

		if holdings[0].Reserved != 5000 {
			t.Errorf("Expected reserved 5000, got %v", holdings[0].Reserved)
		}
	})
}

// TestHoldingsService_SetReserve tests reserve updates.
func TestHoldingsService_SetReserve(t *testing.T) {
	t.Run("normalizes the symbol and upserts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		if err := svc.SetReserve(context.Background(), " soxx ", 1000); err != nil {
			t.Fatalf("SetReserve() returned unexpected error: %v", err)
		}
		if err := svc.SetReserve(context.Background(), "SOXX", 2000); err != nil {
			t.Fatalf("SetReserve() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "symbol_reserve", 1)

		var reserved float64
		if err := db.QueryRow(`SELECT reserved FROM symbol_reserve WHERE symbol = 'SOXX'`).Scan(&reserved); err != nil {
			t.Fatalf("Failed to read reserve: %v", err)
		}
		if reserved != 2000 {
			t.Errorf("Expected reserve 2000 after upsert, got %v", reserved)
		}
	})

	t.Run("rejects a negative reserve", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		err := svc.SetReserve(context.Background(), "SOXX", -1)
		if !errors.Is(err, apperrors.ErrNegativeAmount) {
			t.Fatalf("Expected ErrNegativeAmount, got %v", err)
		}
	})

	t.Run("rejects an empty symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingsService(t, db)

		err := svc.SetReserve(context.Background(), "   ", 100)
		if !errors.Is(err, apperrors.ErrEmptySymbol) {
			t.Fatalf("Expected ErrEmptySymbol, got %v", err)
		}
	})
}
