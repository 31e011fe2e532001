package service

import (
	"context"
	"time"

	"mailmarket/internal/ledger"
	"mailmarket/internal/store"

	"go.uber.org/zap"
)

// Persister snapshots the ledger to the durable store, both on a fixed
// interval and on demand after state-changing actions. Store failures
// are logged and swallowed; the in-memory ledger stays authoritative
// and the next save retries.
type Persister struct {
	ledger *ledger.Ledger
	store  store.Store
	logger *zap.Logger
}

// NewPersister creates a persister
func NewPersister(l *ledger.Ledger, s store.Store, logger *zap.Logger) *Persister {
	return &Persister{ledger: l, store: s, logger: logger}
}

// SaveNow writes a snapshot immediately, best-effort
func (p *Persister) SaveNow() {
	if err := p.store.Save(p.ledger.Snapshot()); err != nil {
		p.logger.Error("failed to save snapshot", zap.Error(err))
	}
}

// Run saves snapshots periodically until the context is cancelled,
// writing one final snapshot on shutdown
func (p *Persister) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.SaveNow()
			p.logger.Info("snapshot loop stopped")
			return
		case <-ticker.C:
			p.SaveNow()
		}
	}
}
