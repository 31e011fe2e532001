package store

import "mailmarket/internal/domain"

// Store persists ledger snapshots. Save is best-effort: callers log
// failures and continue with in-memory state, the next periodic save
// retries.
type Store interface {
	Load() (*domain.Snapshot, error)
	Save(*domain.Snapshot) error
}
