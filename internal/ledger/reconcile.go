// Package ledger implements the position reconciliation engine: a pure
// replay of the full transaction ledger into the current per-symbol
// positions, using weighted-average-cost accounting.
package ledger

import (
	"fmt"
	"strings"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// NormalizeSymbol upper-cases and trims an instrument symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateTransaction checks a single transaction record against the ledger
// contract. It returns an error wrapping apperrors.ErrInvalidTransaction
// when shares are non-positive, the price is negative, the symbol is empty,
// or the action is neither BUY nor SELL.
func ValidateTransaction(t model.Transaction) error {
	if NormalizeSymbol(t.Symbol) == "" {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidTransaction, apperrors.ErrEmptySymbol)
	}
	if t.Shares <= 0 {
		return fmt.Errorf("%w: shares must be positive, got %v", apperrors.ErrInvalidTransaction, t.Shares)
	}
	if t.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative, got %v", apperrors.ErrInvalidTransaction, t.Price)
	}
	if t.Action != model.ActionBuy && t.Action != model.ActionSell {
		return fmt.Errorf("%w: %w: %q", apperrors.ErrInvalidTransaction, apperrors.ErrUnknownAction, t.Action)
	}
	return nil
}

// Validate checks every transaction in the sequence up front, so a replay
// either processes the whole ledger or none of it.
func Validate(transactions []model.Transaction) error {
	for i, t := range transactions {
		if err := ValidateTransaction(t); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

// Reconcile replays a transaction sequence into the current position set.
//
// The replay is a single fold over the sequence in the order given. The
// caller owns ordering: the repository returns transactions sorted by date,
// but Reconcile itself does not sort. Per-symbol results depend only on the
// relative order of that symbol's own transactions, so interleaving symbols
// in any order is safe.
//
// Accounting rules:
//   - BUY adds t.Shares to the position and t.Total (honored verbatim, not
//     recomputed from shares*price) to the invested cost basis; the average
//     entry is recomputed as invested/shares.
//   - SELL removes cost at the current average entry price, not the sale
//     price; realized gain or loss is deliberately not tracked.
//   - A SELL that brings shares to zero or below flattens the position to
//     shares=0, avgEntry=0, invested=0. An oversell is clamped, not
//     reported as an error.
//
// The returned slice holds one position per distinct symbol in first-seen
// order, including fully-closed positions with zero shares. Callers filter
// those out for display if they want to.
//
// Reconcile is a pure function: it validates the full input before touching
// its accumulator, performs no I/O, and retains no state between calls.
func Reconcile(transactions []model.Transaction) ([]model.Position, error) {
	if err := Validate(transactions); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	positions := []model.Position{}

	for _, t := range transactions {
		symbol := NormalizeSymbol(t.Symbol)

		i, ok := index[symbol]
		if !ok {
			positions = append(positions, model.Position{Symbol: symbol})
			i = len(positions) - 1
			index[symbol] = i
		}
		p := &positions[i]

		switch t.Action {
		case model.ActionBuy:
			p.Shares += t.Shares
			p.Invested += t.Total
			if p.Shares > 0 {
				p.AvgEntry = p.Invested / p.Shares
			} else {
				p.AvgEntry = 0
			}
		case model.ActionSell:
			p.Invested -= t.Shares * p.AvgEntry
			p.Shares -= t.Shares
			if p.Shares <= 0 {
				// Full close: discard residual rounding noise or oversell remainder.
				p.Shares = 0
				p.AvgEntry = 0
				p.Invested = 0
			}
		}
	}

	return positions, nil
}

// Symbols returns the distinct symbols in the sequence, normalized, in
// first-seen order. Used to decide which quotes to fetch.
func Symbols(transactions []model.Transaction) []string {
	seen := make(map[string]bool)
	symbols := []string{}
	for _, t := range transactions {
		symbol := NormalizeSymbol(t.Symbol)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}
	return symbols
}
