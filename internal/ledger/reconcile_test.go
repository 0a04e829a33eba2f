package ledger

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/model"
)

const epsilon = 1e-9

func buy(symbol string, shares, price, total float64) model.Transaction {
	return model.Transaction{
		Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Symbol: symbol,
		Action: model.ActionBuy,
		Shares: shares,
		Price:  price,
		Total:  total,
	}
}

func sell(symbol string, shares, price float64) model.Transaction {
	return model.Transaction{
		Date:   time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Symbol: symbol,
		Action: model.ActionSell,
		Shares: shares,
		Price:  price,
		Total:  shares * price,
	}
}

func TestReconcile_SingleBuy(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("SOXX", 107, 280.00, 29960),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("Expected 1 position, got %d", len(positions))
	}
	p := positions[0]
	if p.Symbol != "SOXX" {
		t.Errorf("Expected symbol SOXX, got %s", p.Symbol)
	}
	if p.Shares != 107 {
		t.Errorf("Expected 107 shares, got %v", p.Shares)
	}
	if p.Invested != 29960 {
		t.Errorf("Expected invested 29960, got %v", p.Invested)
	}
	if math.Abs(p.AvgEntry-280.00) > epsilon {
		t.Errorf("Expected avgEntry 280.00, got %v", p.AvgEntry)
	}
}

func TestReconcile_AveragesSecondBuy(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("SOXX", 107, 280.00, 29960),
		buy("SOXX", 48, 310.00, 14880),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	p := positions[0]
	if p.Shares != 155 {
		t.Errorf("Expected 155 shares, got %v", p.Shares)
	}
	if p.Invested != 44840 {
		t.Errorf("Expected invested 44840, got %v", p.Invested)
	}
	if math.Abs(p.AvgEntry-44840.0/155.0) > epsilon {
		t.Errorf("Expected avgEntry %v, got %v", 44840.0/155.0, p.AvgEntry)
	}
}

func TestReconcile_FullCloseIgnoresSalePrice(t *testing.T) {
	// The sale price must not influence the close: cost is removed at the
	// average entry price and a flat position is forced to all zeros.
	for _, salePrice := range []float64{1, 289.29, 5000} {
		positions, err := Reconcile([]model.Transaction{
			buy("SOXX", 107, 280.00, 29960),
			buy("SOXX", 48, 310.00, 14880),
			sell("SOXX", 155, salePrice),
		})
		if err != nil {
			t.Fatalf("Reconcile failed: %v", err)
		}

		p := positions[0]
		if p.Shares != 0 || p.AvgEntry != 0 || p.Invested != 0 {
			t.Errorf("Sale at %v: expected flat position, got %+v", salePrice, p)
		}
	}
}

func TestReconcile_PartialSellKeepsAvgEntry(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("AAA", 10, 10, 100),
		sell("AAA", 4, 25),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	p := positions[0]
	if p.Shares != 6 {
		t.Errorf("Expected 6 shares, got %v", p.Shares)
	}
	// Cost removed at avg entry (10), not at the sale price (25).
	if math.Abs(p.Invested-60) > epsilon {
		t.Errorf("Expected invested 60, got %v", p.Invested)
	}
	if math.Abs(p.AvgEntry-10) > epsilon {
		t.Errorf("Expected avgEntry 10, got %v", p.AvgEntry)
	}
}

func TestReconcile_OversellClampsToFlat(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("AAA", 10, 10, 100),
		sell("AAA", 20, 12),
	})
	if err != nil {
		t.Fatalf("Expected oversell to clamp, not error: %v", err)
	}

	p := positions[0]
	if p.Shares != 0 || p.AvgEntry != 0 || p.Invested != 0 {
		t.Errorf("Expected oversell to clamp to flat, got %+v", p)
	}
}

func TestReconcile_ClosedPositionRetained(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("AAA", 10, 10, 100),
		sell("AAA", 10, 12),
		buy("BBB", 5, 20, 100),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(positions) != 2 {
		t.Fatalf("Expected closed position to be retained, got %d positions", len(positions))
	}
	if positions[0].Symbol != "AAA" || positions[0].Shares != 0 {
		t.Errorf("Expected AAA flat in first-seen order, got %+v", positions[0])
	}
	if positions[1].Symbol != "BBB" {
		t.Errorf("Expected BBB second, got %+v", positions[1])
	}
}

func TestReconcile_EmptyLedger(t *testing.T) {
	positions, err := Reconcile(nil)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	if len(positions) != 0 {
		t.Errorf("Expected empty output, got %d positions", len(positions))
	}
	if positions == nil {
		t.Error("Expected non-nil empty slice")
	}
}

func TestReconcile_HonorsStoredTotal(t *testing.T) {
	// Total includes a fee and deliberately differs from shares*price.
	positions, err := Reconcile([]model.Transaction{
		buy("AAA", 10, 10, 104.95),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	p := positions[0]
	if math.Abs(p.Invested-104.95) > epsilon {
		t.Errorf("Expected stored total to be honored, got invested %v", p.Invested)
	}
	if math.Abs(p.AvgEntry-10.495) > epsilon {
		t.Errorf("Expected avgEntry 10.495, got %v", p.AvgEntry)
	}
}

func TestReconcile_NormalizesSymbolCase(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("soxx", 10, 100, 1000),
		buy(" SOXX ", 10, 100, 1000),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if len(positions) != 1 {
		t.Fatalf("Expected case-insensitive symbols to merge, got %d positions", len(positions))
	}
	if positions[0].Symbol != "SOXX" {
		t.Errorf("Expected normalized symbol SOXX, got %s", positions[0].Symbol)
	}
	if positions[0].Shares != 20 {
		t.Errorf("Expected 20 shares, got %v", positions[0].Shares)
	}
}

func TestReconcile_ReplayIsIdempotent(t *testing.T) {
	input := []model.Transaction{
		buy("SOXX", 107, 280.00, 29960),
		buy("QQQ", 20, 400.00, 8000),
		sell("SOXX", 50, 300.00),
		buy("SOXX", 48, 310.00, 14880),
	}

	first, err := Reconcile(input)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	second, err := Reconcile(input)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output on replay:\n%+v\n%+v", first, second)
	}
}

func TestReconcile_SymbolsAreIndependent(t *testing.T) {
	soxx := []model.Transaction{
		buy("SOXX", 107, 280.00, 29960),
		sell("SOXX", 50, 300.00),
	}
	qqq := []model.Transaction{
		buy("QQQ", 20, 400.00, 8000),
		buy("QQQ", 10, 410.00, 4100),
	}

	// Interleave the two symbols' subsequences.
	interleaved := []model.Transaction{soxx[0], qqq[0], soxx[1], qqq[1]}

	merged, err := Reconcile(interleaved)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	soloSOXX, err := Reconcile(soxx)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}
	soloQQQ, err := Reconcile(qqq)
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	bysym := make(map[string]model.Position)
	for _, p := range merged {
		bysym[p.Symbol] = p
	}
	if !reflect.DeepEqual(bysym["SOXX"], soloSOXX[0]) {
		t.Errorf("SOXX differs when interleaved:\n%+v\n%+v", bysym["SOXX"], soloSOXX[0])
	}
	if !reflect.DeepEqual(bysym["QQQ"], soloQQQ[0]) {
		t.Errorf("QQQ differs when interleaved:\n%+v\n%+v", bysym["QQQ"], soloQQQ[0])
	}
}

func TestReconcile_AvgCostInvariant(t *testing.T) {
	positions, err := Reconcile([]model.Transaction{
		buy("SOXX", 107, 280.00, 29960),
		buy("SOXX", 48, 310.00, 14880),
		sell("SOXX", 33, 305.00),
		buy("QQQ", 7, 403.17, 2822.19),
	})
	if err != nil {
		t.Fatalf("Reconcile failed: %v", err)
	}

	for _, p := range positions {
		if p.Shares > 0 {
			if diff := math.Abs(p.AvgEntry*p.Shares - p.Invested); diff > 1e-6 {
				t.Errorf("%s: avgEntry*shares != invested (diff %v)", p.Symbol, diff)
			}
		} else {
			if p.AvgEntry != 0 || p.Invested != 0 {
				t.Errorf("%s: flat position must be all zeros, got %+v", p.Symbol, p)
			}
		}
	}
}

func TestReconcile_RejectsMalformedInputAtomically(t *testing.T) {
	cases := []struct {
		name string
		txs  []model.Transaction
	}{
		{"zero shares", []model.Transaction{buy("AAA", 10, 10, 100), buy("AAA", 0, 10, 0)}},
		{"negative shares", []model.Transaction{buy("AAA", -5, 10, -50)}},
		{"negative price", []model.Transaction{buy("AAA", 10, -1, 100)}},
		{"empty symbol", []model.Transaction{buy("  ", 10, 10, 100)}},
		{"unknown action", []model.Transaction{{Symbol: "AAA", Action: "HOLD", Shares: 1, Price: 1, Total: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			positions, err := Reconcile(tc.txs)
			if !errors.Is(err, apperrors.ErrInvalidTransaction) {
				t.Fatalf("Expected ErrInvalidTransaction, got %v", err)
			}
			// Validation is up-front: no partial position set may leak out.
			if positions != nil {
				t.Errorf("Expected nil positions on validation failure, got %+v", positions)
			}
		})
	}
}

func TestSymbols_FirstSeenOrder(t *testing.T) {
	symbols := Symbols([]model.Transaction{
		buy("qqq", 1, 1, 1),
		buy("SOXX", 1, 1, 1),
		sell("QQQ", 1, 1),
	})

	expected := []string{"QQQ", "SOXX"}
	if !reflect.DeepEqual(symbols, expected) {
		t.Errorf("Expected %v, got %v", expected, symbols)
	}
}
