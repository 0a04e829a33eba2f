package model

import "time"

// SnapshotVersion is bumped when the snapshot wire format changes.
const SnapshotVersion = 1

// LedgerSnapshot is the payload pushed to and pulled from the remote
// key-value store. It carries the full ledger plus the carried-forward
// reserved capital per symbol, so a pull can fully replace local state.
type LedgerSnapshot struct {
	Version      int                `json:"version"`
	ExportedAt   time.Time          `json:"exportedAt"`
	Transactions []Transaction      `json:"transactions"`
	Reserves     map[string]float64 `json:"reserves,omitempty"`
}
