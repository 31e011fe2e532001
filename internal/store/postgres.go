package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"mailmarket/internal/domain"

	"go.uber.org/zap"
)

// snapshotRow is the fixed id of the single snapshot row
const snapshotRow = 1

// PostgresStore keeps the snapshot as a single jsonb row, overwritten
// on every save. Selected over the file store when a DSN is configured.
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostgresStore creates a Postgres-backed snapshot store
func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// Load reads the stored snapshot, or returns the default empty one
// when no row exists yet
func (s *PostgresStore) Load() (*domain.Snapshot, error) {
	var data []byte
	query := `SELECT data FROM snapshots WHERE id = $1`
	err := s.db.QueryRow(query, snapshotRow).Scan(&data)

	if err == sql.ErrNoRows {
		s.logger.Info("no stored snapshot, starting empty")
		return domain.DefaultSnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

// Save upserts the snapshot row
func (s *PostgresStore) Save(snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	if _, err := s.db.Exec(query, snapshotRow, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
