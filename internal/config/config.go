package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken string
	AdminID  int64

	// Snapshot persistence. DatabaseDSN selects the Postgres store
	// when set; otherwise the file store is used.
	StorePath        string
	StoreBackupPath  string
	DatabaseDSN      string
	SnapshotInterval time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		StorePath:       getEnv("STORE_PATH", "balances.json"),
		StoreBackupPath: getEnv("STORE_BACKUP_PATH", "balances_backup.json"),
		DatabaseDSN:     os.Getenv("DATABASE_DSN"),
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}

	adminRaw := os.Getenv("ADMIN_ID")
	if adminRaw == "" {
		return nil, fmt.Errorf("ADMIN_ID is required")
	}
	adminID, err := strconv.ParseInt(adminRaw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ADMIN_ID must be a numeric chat id: %w", err)
	}
	cfg.AdminID = adminID

	interval, err := time.ParseDuration(getEnv("SNAPSHOT_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL is not a valid duration: %w", err)
	}
	cfg.SnapshotInterval = interval

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
