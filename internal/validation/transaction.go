package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
)

// ValidTransactionAction contains the allowed transaction action values.
// Matching is done on the upper-cased input.
var ValidTransactionAction = map[string]bool{
	"BUY": true, "SELL": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - date: Must be in YYYY-MM-DD format
//   - symbol: Must be non-empty, at most 10 characters
//   - action: Must be BUY or SELL (case-insensitive)
//   - shares: Must be positive
//   - price: Must not be negative
//   - total: If provided, must not be negative
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > 10 {
		errors["symbol"] = fmt.Sprintf("symbol too long: %s", symbol)
	}

	action := strings.ToUpper(strings.TrimSpace(req.Action))
	if action == "" {
		errors["action"] = "action is required"
	} else if !ValidTransactionAction[action] {
		errors["action"] = fmt.Sprintf("invalid action: %s", req.Action)
	}

	if req.Shares <= 0.0 {
		errors["shares"] = "shares must be positive"
	}

	if req.Price < 0.0 {
		errors["price"] = "price cannot be negative"
	}

	if req.Total != nil && *req.Total < 0.0 {
		errors["total"] = "total cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateSetReserve validates a reserve update request.
func ValidateSetReserve(req request.SetReserveRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	}
	if req.Reserved < 0.0 {
		errors["reserved"] = "reserved cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
