package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/config"
	"github.com/etfolio/etf-tracker-backend/internal/ledger"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
	"github.com/etfolio/etf-tracker-backend/internal/secrets"
)

// syncTokenSettingKey is the system_setting key holding the encrypted
// remote store access token.
const syncTokenSettingKey = "sync_access_token"

// SnapshotStore is the remote key-value store that holds ledger snapshots.
// Implemented by syncstore.RedisStore; tests substitute an in-memory store.
type SnapshotStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// SyncService pushes the full ledger snapshot to a remote key-value store
// and pulls it back, replacing local state. The remote access token is kept
// encrypted in system_setting and decrypted only when a store connection is
// built.
type SyncService struct {
	cfg             config.SyncConfig
	vault           *secrets.Vault
	newStore        func(token string) SnapshotStore
	transactionRepo *repository.TransactionRepository
	reserveRepo     *repository.ReserveRepository
	settingRepo     *repository.SettingRepository
	exportService   *ExportService

	mu    sync.Mutex
	store SnapshotStore
}

// NewSyncService creates a new SyncService. newStore builds a store
// connection for a decrypted access token; it is a constructor parameter so
// tests can inject an in-memory store. vault may be nil when sync is
// disabled.
func NewSyncService(
	cfg config.SyncConfig,
	vault *secrets.Vault,
	newStore func(token string) SnapshotStore,
	transactionRepo *repository.TransactionRepository,
	reserveRepo *repository.ReserveRepository,
	settingRepo *repository.SettingRepository,
	exportService *ExportService,
) *SyncService {
	return &SyncService{
		cfg:             cfg,
		vault:           vault,
		newStore:        newStore,
		transactionRepo: transactionRepo,
		reserveRepo:     reserveRepo,
		settingRepo:     settingRepo,
		exportService:   exportService,
	}
}

// Enabled reports whether cloud sync is configured.
func (s *SyncService) Enabled() bool {
	return s.cfg.Enabled
}

// SetAccessToken encrypts and stores the remote store access token, and
// drops any cached store connection so the next push or pull uses it.
func (s *SyncService) SetAccessToken(ctx context.Context, token string) error {
	if !s.cfg.Enabled {
		return apperrors.ErrSyncDisabled
	}

	encrypted, err := s.vault.Encrypt(token)
	if err != nil {
		return err
	}
	if err := s.settingRepo.Set(ctx, syncTokenSettingKey, encrypted); err != nil {
		return err
	}

	s.mu.Lock()
	s.store = nil
	s.mu.Unlock()

	return nil
}

// accessToken returns the decrypted access token, or empty when none has
// been stored (an unauthenticated remote store).
func (s *SyncService) accessToken() (string, error) {
	encrypted, err := s.settingRepo.Get(syncTokenSettingKey)
	if errors.Is(err, apperrors.ErrSettingNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.vault.Decrypt(encrypted)
}

func (s *SyncService) snapshotStore() (SnapshotStore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return s.store, nil
	}

	token, err := s.accessToken()
	if err != nil {
		return nil, err
	}
	s.store = s.newStore(token)
	return s.store, nil
}

// Push marshals the full ledger snapshot and writes it to the remote store.
func (s *SyncService) Push(ctx context.Context) error {
	if !s.cfg.Enabled {
		return apperrors.ErrSyncDisabled
	}

	store, err := s.snapshotStore()
	if err != nil {
		return err
	}

	snapshot, err := s.exportService.Snapshot()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger snapshot: %w", err)
	}

	if err := store.Set(ctx, s.cfg.SnapshotKey, payload); err != nil {
		return fmt.Errorf("failed to push ledger snapshot: %w", err)
	}

	return nil
}

// Pull fetches the remote snapshot, validates every transaction in it, and
// replaces the local ledger and reserves. Validation is all-or-nothing: a
// snapshot with any malformed transaction is rejected and local state is
// left untouched.
//
// Returns the applied snapshot, or apperrors.ErrSnapshotNotFound when the
// remote store holds nothing.
func (s *SyncService) Pull(ctx context.Context) (model.LedgerSnapshot, error) {
	if !s.cfg.Enabled {
		return model.LedgerSnapshot{}, apperrors.ErrSyncDisabled
	}

	store, err := s.snapshotStore()
	if err != nil {
		return model.LedgerSnapshot{}, err
	}

	payload, found, err := store.Get(ctx, s.cfg.SnapshotKey)
	if err != nil {
		return model.LedgerSnapshot{}, fmt.Errorf("failed to pull ledger snapshot: %w", err)
	}
	if !found {
		return model.LedgerSnapshot{}, apperrors.ErrSnapshotNotFound
	}

	var snapshot model.LedgerSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return model.LedgerSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrSnapshotRejected, err)
	}

	if err := ledger.Validate(snapshot.Transactions); err != nil {
		return model.LedgerSnapshot{}, fmt.Errorf("%w: %v", apperrors.ErrSnapshotRejected, err)
	}
	for symbol, reserved := range snapshot.Reserves {
		if reserved < 0 {
			return model.LedgerSnapshot{}, fmt.Errorf("%w: negative reserve for %s", apperrors.ErrSnapshotRejected, symbol)
		}
	}

	// Snapshots from other clients may omit local bookkeeping fields.
	now := time.Now().UTC()
	for i := range snapshot.Transactions {
		t := &snapshot.Transactions[i]
		t.Symbol = ledger.NormalizeSymbol(t.Symbol)
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
	}

	if err := s.transactionRepo.ReplaceAll(ctx, snapshot.Transactions); err != nil {
		return model.LedgerSnapshot{}, err
	}
	for symbol, reserved := range snapshot.Reserves {
		if err := s.reserveRepo.Upsert(ctx, ledger.NormalizeSymbol(symbol), reserved); err != nil {
			return model.LedgerSnapshot{}, err
		}
	}

	return snapshot, nil
}
