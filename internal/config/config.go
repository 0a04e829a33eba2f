package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Quotes   QuotesConfig
	Sync     SyncConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// QuotesConfig controls the scheduled market quote refresh.
type QuotesConfig struct {
	// RefreshSpec is a cron expression; empty disables the scheduled refresh.
	RefreshSpec string
}

// SyncConfig controls the remote ledger snapshot store.
type SyncConfig struct {
	Enabled     bool
	RedisAddr   string
	RedisDB     int
	SnapshotKey string
	// PushSpec is a cron expression for periodic snapshot pushes; empty
	// disables scheduled pushes (manual push via the API still works).
	PushSpec string
	// EncryptionKey is the base64 fernet key used to encrypt the remote
	// access token at rest. Required when sync is enabled.
	EncryptionKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/etf_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(
				getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost"),
				",",
			),
		},
		Quotes: QuotesConfig{
			RefreshSpec: getEnv("QUOTE_REFRESH_SPEC", "@every 15m"),
		},
		Sync: SyncConfig{
			Enabled:       getEnvBool("SYNC_ENABLED", false),
			RedisAddr:     getEnv("SYNC_REDIS_ADDR", "localhost:6379"),
			RedisDB:       getEnvInt("SYNC_REDIS_DB", 0),
			SnapshotKey:   getEnv("SYNC_SNAPSHOT_KEY", "etfolio:ledger"),
			PushSpec:      getEnv("SYNC_PUSH_SPEC", ""),
			EncryptionKey: getEnv("SYNC_ENCRYPTION_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if config.Sync.Enabled && config.Sync.EncryptionKey == "" {
		return nil, fmt.Errorf("SYNC_ENCRYPTION_KEY is required when SYNC_ENABLED is set")
	}

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
