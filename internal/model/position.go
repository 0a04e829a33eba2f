package model

// Position is the derived holding for one instrument, produced by replaying
// the ledger. It has no lifecycle of its own: every mutation of the ledger
// recomputes the full position set from scratch.
//
// Invariant: AvgEntry == Invested / Shares whenever Shares > 0, and a flat
// position (Shares == 0) always has AvgEntry == 0 and Invested == 0.
type Position struct {
	Symbol   string  `json:"symbol"`
	Shares   float64 `json:"shares"`
	AvgEntry float64 `json:"avgEntry"`
	Invested float64 `json:"invested"`

	// Reserved is capital earmarked but not yet deployed for this symbol.
	// It is never derived from transactions; the reconciler leaves it zero
	// and the holdings layer merges the carried-forward value.
	Reserved float64 `json:"reserved"`
}

// Holding is a Position enriched with the latest market price for display.
type Holding struct {
	Position

	// MarketPrice is the last-known quote for the symbol, falling back to
	// the average entry price when no quote has ever been fetched.
	MarketPrice    float64 `json:"marketPrice"`
	PriceSource    string  `json:"priceSource"` // "quote" or "costBasis"
	MarketValue    float64 `json:"marketValue"`
	UnrealizedGain float64 `json:"unrealizedGain"`
}
