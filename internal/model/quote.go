package model

import "time"

// Quote is the last fetched market price for a symbol. Quotes are cached in
// the database so rendering never blocks on the quote provider.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
}
