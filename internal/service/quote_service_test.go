package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/etfolio/etf-tracker-backend/internal/testutil"
)

// TestQuoteService_RefreshQuotes tests the concurrent quote refresh.
//
// WHY: Refresh is best-effort across an unreliable provider. This ensures
// successful fetches are cached, failures are skipped without failing the
// refresh, and only traded symbols are fetched.
func TestQuoteService_RefreshQuotes(t *testing.T) {
	t.Run("fetches and caches quotes for all traded symbols", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient().
			WithPrice("SOXX", 290).
			WithPrice("VGT", 510)
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewTransaction().WithSymbol("SOXX").Build(t, db)
		testutil.NewTransaction().WithSymbol("VGT").Build(t, db)

		fetched, err := svc.RefreshQuotes(context.Background())
		if err != nil {
			t.Fatalf("RefreshQuotes() returned unexpected error: %v", err)
		}

		if len(fetched) != 2 {
			t.Fatalf("Expected 2 fetched quotes, got %d", len(fetched))
		}
		if fetched["SOXX"].Price != 290 {
			t.Errorf("Expected SOXX at 290, got %v", fetched["SOXX"].Price)
		}

		testutil.AssertRowCount(t, db, "quote_cache", 2)
	})

	t.Run("skips symbols whose fetch fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient().
			WithPrice("SOXX", 290).
			WithError("VGT", errors.New("provider unavailable"))
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewTransaction().WithSymbol("SOXX").Build(t, db)
		testutil.NewTransaction().WithSymbol("VGT").Build(t, db)

		fetched, err := svc.RefreshQuotes(context.Background())
		if err != nil {
			t.Fatalf("RefreshQuotes() returned unexpected error: %v", err)
		}

		if len(fetched) != 1 {
			t.Fatalf("Expected 1 fetched quote, got %d", len(fetched))
		}
		if _, ok := fetched["VGT"]; ok {
			t.Error("Expected VGT to be skipped")
		}

		testutil.AssertRowCount(t, db, "quote_cache", 1)
	})

	t.Run("keeps the previous cached price on failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient().
			WithError("SOXX", errors.New("provider unavailable"))
		svc := testutil.NewTestQuoteService(t, db, client)

		testutil.NewTransaction().WithSymbol("SOXX").Build(t, db)
		testutil.CreateQuote(t, db, "SOXX", 285)

		if _, err := svc.RefreshQuotes(context.Background()); err != nil {
			t.Fatalf("RefreshQuotes() returned unexpected error: %v", err)
		}

		quotes, err := svc.ListQuotes()
		if err != nil {
			t.Fatalf("ListQuotes() returned unexpected error: %v", err)
		}
		if quotes["SOXX"].Price != 285 {
			t.Errorf("Expected stale price 285 retained, got %v", quotes["SOXX"].Price)
		}
	})

	t.Run("does nothing for an empty ledger", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		client := testutil.NewMockQuoteClient()
		svc := testutil.NewTestQuoteService(t, db, client)

		fetched, err := svc.RefreshQuotes(context.Background())
		if err != nil {
			t.Fatalf("RefreshQuotes() returned unexpected error: %v", err)
		}

		if len(fetched) != 0 {
			t.Errorf("Expected no fetches, got %d", len(fetched))
		}
		if client.FetchCount != 0 {
			t.Errorf("Expected 0 provider calls, got %d", client.FetchCount)
		}
	})
}
