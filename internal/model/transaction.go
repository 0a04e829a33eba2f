package model

import "time"

// Action identifies the direction of a ledger transaction.
type Action string

// The two recognized transaction actions. Any other value is rejected
// before it can reach the reconciler.
const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// Transaction represents a single buy or sell recorded in the ledger.
// The ledger is the source of truth: positions are always recomputed from
// the full transaction sequence, never patched in place.
//
// Total is the notional value of the transaction. By convention it equals
// Shares * Price, but it is stored independently and honored verbatim so a
// caller can include fees or other adjustments in the cost basis.
type Transaction struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Symbol    string    `json:"symbol"`
	Action    Action    `json:"action"`
	Shares    float64   `json:"shares"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
