package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNoteNotFound indicates that a strategy note with the given ID does not exist.
	ErrNoteNotFound = errors.New("strategy note not found")

	// ErrQuoteNotFound indicates that no cached quote exists for the given symbol.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrSettingNotFound indicates that a system setting with the given key does not exist.
	ErrSettingNotFound = errors.New("system setting not found")

	// ErrSnapshotNotFound indicates that the remote store holds no ledger snapshot.
	ErrSnapshotNotFound = errors.New("ledger snapshot not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidTransaction indicates that a transaction record is malformed:
	// non-positive shares, negative price, empty symbol, or unknown action.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrUnknownAction indicates that a transaction action is not BUY or SELL.
	ErrUnknownAction = errors.New("unknown transaction action")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrEmptySymbol indicates that a required symbol parameter is empty or missing.
	ErrEmptySymbol = errors.New("symbol cannot be empty")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")
)

// Sync errors represent failures of the remote snapshot store integration.
var (
	// ErrSyncDisabled indicates that cloud sync has not been enabled in configuration.
	ErrSyncDisabled = errors.New("cloud sync is disabled")

	// ErrSyncTokenMissing indicates that no access token has been stored for the remote store.
	ErrSyncTokenMissing = errors.New("sync access token not configured")

	// ErrSnapshotRejected indicates that a pulled snapshot failed validation
	// and the local ledger was left untouched.
	ErrSnapshotRejected = errors.New("ledger snapshot rejected")
)

// Retrieval errors are user-facing messages for failed read operations.
var (
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRetrieveHoldings     = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveQuotes       = errors.New("failed to retrieve quotes")
	ErrFailedToRetrieveNotes        = errors.New("failed to retrieve strategy notes")
)
