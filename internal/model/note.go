package model

import "time"

// StrategyNote is a free-text annotation, optionally tied to a symbol.
type StrategyNote struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
