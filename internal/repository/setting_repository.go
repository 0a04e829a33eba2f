package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table.
// Values are stored verbatim; callers that need encryption at rest (the sync
// access token) encrypt before Set and decrypt after Get.
type SettingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Get retrieves a setting value by key.
// Returns apperrors.ErrSettingNotFound when the key does not exist.
func (s *SettingRepository) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM system_setting WHERE "key" = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to scan system_setting table results: %w", err)
	}
	return value, nil
}

// Set stores a setting value, inserting or overwriting by key.
func (s *SettingRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO system_setting (id, "key", value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(),
		key,
		value,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into system_setting table: %w", err)
	}

	return nil
}
