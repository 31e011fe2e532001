package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// withEnv sets the given variables for one test and restores the
// previous values afterwards
func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for key, value := range vars {
		original, had := os.LookupEnv(key)
		if value == "" {
			os.Unsetenv(key)
		} else {
			os.Setenv(key, value)
		}
		key, original, had := key, original, had
		t.Cleanup(func() {
			if had {
				os.Setenv(key, original)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoad_MissingBotToken(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN": "",
		"ADMIN_ID":  "5810613583",
	})

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_TOKEN")
}

func TestLoad_MissingAdminID(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN": "test_token",
		"ADMIN_ID":  "",
	})

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}

func TestLoad_InvalidAdminID(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN": "test_token",
		"ADMIN_ID":  "not_a_number",
	})

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "ADMIN_ID")
}

func TestLoad_WithDefaults(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN":         "test_token",
		"ADMIN_ID":          "5810613583",
		"STORE_PATH":        "",
		"STORE_BACKUP_PATH": "",
		"DATABASE_DSN":      "",
		"SNAPSHOT_INTERVAL": "",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, int64(5810613583), cfg.AdminID)
	assert.Equal(t, "balances.json", cfg.StorePath)
	assert.Equal(t, "balances_backup.json", cfg.StoreBackupPath)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.SnapshotInterval)
}

func TestLoad_CustomInterval(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN":         "test_token",
		"ADMIN_ID":          "1",
		"SNAPSHOT_INTERVAL": "5m",
	})

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
}

func TestLoad_InvalidInterval(t *testing.T) {
	withEnv(t, map[string]string{
		"BOT_TOKEN":         "test_token",
		"ADMIN_ID":          "1",
		"SNAPSHOT_INTERVAL": "soon",
	})

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "SNAPSHOT_INTERVAL")
}
