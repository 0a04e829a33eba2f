package request

// SetReserveRequest sets the carried-forward reserved capital for a symbol.
type SetReserveRequest struct {
	Symbol   string  `json:"symbol"`
	Reserved float64 `json:"reserved"`
}
