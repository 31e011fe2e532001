package store

import (
	"encoding/json"
	"fmt"
	"os"

	"mailmarket/internal/domain"

	"go.uber.org/zap"
)

// FileStore keeps the snapshot in a JSON file plus a redundant backup
// copy. Load prefers the primary file and falls back to the backup,
// then to an empty default, so a corrupted primary never loses the
// ledger.
type FileStore struct {
	path       string
	backupPath string
	logger     *zap.Logger
}

// NewFileStore creates a file-backed snapshot store
func NewFileStore(path, backupPath string, logger *zap.Logger) *FileStore {
	return &FileStore{
		path:       path,
		backupPath: backupPath,
		logger:     logger,
	}
}

// Load reads the snapshot from the primary file, the backup, or
// returns the default empty snapshot when neither is readable
func (s *FileStore) Load() (*domain.Snapshot, error) {
	snap, err := readSnapshot(s.path)
	if err == nil {
		return snap, nil
	}
	s.logger.Warn("primary snapshot unreadable, trying backup",
		zap.String("path", s.path),
		zap.Error(err),
	)

	snap, err = readSnapshot(s.backupPath)
	if err == nil {
		return snap, nil
	}
	s.logger.Warn("backup snapshot unreadable, starting empty",
		zap.String("path", s.backupPath),
		zap.Error(err),
	)

	return domain.DefaultSnapshot(), nil
}

// Save writes the snapshot to the primary file, then the backup. A
// backup write failure is logged but does not fail the save.
func (s *FileStore) Save(snap *domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.WriteFile(s.backupPath, data, 0o644); err != nil {
		s.logger.Warn("failed to write backup snapshot",
			zap.String("path", s.backupPath),
			zap.Error(err),
		)
	}
	return nil
}

func readSnapshot(path string) (*domain.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	snap.Normalize()
	return &snap, nil
}
