package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/etfolio/etf-tracker-backend/internal/model"
)

// MockQuoteClient is a mock implementation of service.QuoteClient for
// testing. It returns predefined quotes instead of making provider calls.
type MockQuoteClient struct {
	// Prices maps symbols to the price the mock returns for them.
	Prices map[string]float64
	// Errors maps symbols to an error returned instead of a quote.
	Errors map[string]error
	// FetchCount tracks how many times LatestClose was called.
	FetchCount int

	mu sync.Mutex
}

// NewMockQuoteClient creates a mock quote client with no configured symbols.
// Use WithPrice and WithError to configure behavior per symbol.
func NewMockQuoteClient() *MockQuoteClient {
	return &MockQuoteClient{
		Prices: make(map[string]float64),
		Errors: make(map[string]error),
	}
}

// WithPrice configures the price returned for a symbol.
func (m *MockQuoteClient) WithPrice(symbol string, price float64) *MockQuoteClient {
	m.Prices[symbol] = price
	return m
}

// WithError configures an error returned for a symbol.
func (m *MockQuoteClient) WithError(symbol string, err error) *MockQuoteClient {
	m.Errors[symbol] = err
	return m
}

// LatestClose returns the configured price or error for the symbol.
// The mutex matters: QuoteService fetches concurrently.
func (m *MockQuoteClient) LatestClose(symbol string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FetchCount++
	if err, ok := m.Errors[symbol]; ok {
		return model.Quote{}, err
	}

	return model.Quote{
		Symbol:    symbol,
		Price:     m.Prices[symbol],
		Currency:  "USD",
		FetchedAt: time.Now().UTC(),
	}, nil
}

// MemorySnapshotStore is an in-memory implementation of
// service.SnapshotStore, substituted for the Redis-backed store in tests.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte

	// Err, when set, is returned by every Get and Set call.
	Err error
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		data: make(map[string][]byte),
	}
}

// Get returns the stored blob for key and whether it exists.
func (s *MemorySnapshotStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, false, s.Err
	}

	b, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores the blob under key.
func (s *MemorySnapshotStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	s.data[key] = value
	return nil
}

// Seed places a raw blob in the store, bypassing Err.
func (s *MemorySnapshotStore) Seed(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}
