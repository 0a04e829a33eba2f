package request

// CreateTransactionRequest is the payload for appending a transaction to the
// ledger. Total is optional: when omitted it defaults to shares * price, but
// a caller may pass a total that differs (e.g. including fees) and it is
// stored verbatim.
type CreateTransactionRequest struct {
	Date   string   `json:"date"`
	Symbol string   `json:"symbol"`
	Action string   `json:"action"`
	Shares float64  `json:"shares"`
	Price  float64  `json:"price"`
	Total  *float64 `json:"total,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}
