package ledger

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Commission is the flat bonus paid to a referrer when a referee's
// submission is confirmed.
var Commission = decimal.NewFromFloat(0.04)

// Ledger owns all balance state: accounts, pending escrow entries,
// referral records, per-user metadata and runtime settings. Every
// operation that reads then writes state runs under one mutex, so
// concurrent user messages and reviewer callbacks never interleave
// mid-mutation.
type Ledger struct {
	mu sync.Mutex

	accounts   map[int64]*domain.Account
	sold       []string
	soldSet    map[string]struct{}
	referrals  map[int64]*domain.ReferralRecord
	knownUsers []int64
	knownSet   map[int64]struct{}
	metadata   map[int64]*domain.UserMetadata
	settings   domain.Settings

	logger *zap.Logger
	now    func() time.Time
}

// New creates an empty ledger
func New(logger *zap.Logger) *Ledger {
	l := &Ledger{
		accounts:  make(map[int64]*domain.Account),
		soldSet:   make(map[string]struct{}),
		referrals: make(map[int64]*domain.ReferralRecord),
		knownSet:  make(map[int64]struct{}),
		metadata:  make(map[int64]*domain.UserMetadata),
		settings:  domain.DefaultSettings(),
		logger:    logger,
		now:       time.Now,
	}
	return l
}

// Restore replaces the ledger's state with a loaded snapshot
func (l *Ledger) Restore(snap *domain.Snapshot) {
	snap.Normalize()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.accounts = snap.Accounts
	l.sold = snap.SoldSubjects
	l.soldSet = make(map[string]struct{}, len(snap.SoldSubjects))
	for _, s := range snap.SoldSubjects {
		l.soldSet[s] = struct{}{}
	}
	l.referrals = snap.Referrals
	l.knownUsers = snap.KnownUsers
	l.knownSet = make(map[int64]struct{}, len(snap.KnownUsers))
	for _, id := range snap.KnownUsers {
		l.knownSet[id] = struct{}{}
	}
	l.metadata = snap.Metadata
	l.settings = snap.Settings
}

// Snapshot returns a deep copy of the ledger's durable state, safe to
// serialize while the ledger keeps mutating
func (l *Ledger) Snapshot() *domain.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := &domain.Snapshot{
		Accounts:     make(map[int64]*domain.Account, len(l.accounts)),
		SoldSubjects: append([]string(nil), l.sold...),
		Referrals:    make(map[int64]*domain.ReferralRecord, len(l.referrals)),
		KnownUsers:   append([]int64(nil), l.knownUsers...),
		Metadata:     make(map[int64]*domain.UserMetadata, len(l.metadata)),
		Settings:     l.settings,
	}
	for id, acc := range l.accounts {
		cp := &domain.Account{
			Hold:    acc.Hold,
			Main:    acc.Main,
			Pending: make(map[string]domain.PendingEntry, len(acc.Pending)),
		}
		for eid, e := range acc.Pending {
			cp.Pending[eid] = e
		}
		snap.Accounts[id] = cp
	}
	for id, rec := range l.referrals {
		snap.Referrals[id] = &domain.ReferralRecord{
			Invited: rec.Invited,
			Income:  rec.Income,
			History: append([]domain.ReferralPayout(nil), rec.History...),
		}
	}
	for id, meta := range l.metadata {
		cp := *meta
		cp.ConfirmedSubjects = append([]string(nil), meta.ConfirmedSubjects...)
		snap.Metadata[id] = &cp
	}
	return snap
}

// EnsureAccount creates the account with zero balances if it does not
// exist. Idempotent.
func (l *Ledger) EnsureAccount(userID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureAccount(userID)
}

// ensureAccount must be called with l.mu held
func (l *Ledger) ensureAccount(userID int64) *domain.Account {
	acc, ok := l.accounts[userID]
	if !ok {
		acc = domain.NewAccount()
		l.accounts[userID] = acc
	}
	return acc
}

// AccountExists reports whether the user has an account
func (l *Ledger) AccountExists(userID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.accounts[userID]
	return ok
}

// Balances returns the user's hold and main balances, zero for an
// unknown user
func (l *Ledger) Balances(userID int64) (hold, main decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[userID]
	if !ok {
		return decimal.Zero, decimal.Zero
	}
	return acc.Hold, acc.Main
}

// CreateEscrow adds amount to the user's hold balance and records a
// pending entry for it, as one atomic step. Returns the new entry's id,
// unique among the user's current pending entries.
func (l *Ledger) CreateEscrow(userID int64, amount decimal.Decimal, subject string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", fmt.Errorf("escrow amount %s: %w", amount, domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.ensureAccount(userID)

	var entryID string
	for {
		entryID = fmt.Sprintf("%04d", 1000+rand.Intn(9000))
		if _, taken := acc.Pending[entryID]; !taken {
			break
		}
	}

	acc.Pending[entryID] = domain.PendingEntry{
		ID:      entryID,
		Amount:  amount,
		Subject: subject,
	}
	acc.Hold = acc.Hold.Add(amount)

	l.logger.Info("escrow created",
		zap.Int64("user_id", userID),
		zap.String("entry_id", entryID),
		zap.String("amount", amount.String()),
	)
	return entryID, nil
}

// Resolution describes the effect of resolving a pending entry
type Resolution struct {
	Entry   domain.PendingEntry
	Outcome domain.Outcome

	// ReferrerID is non-zero when a referral commission was paid as
	// part of a confirmation
	ReferrerID int64
	Commission decimal.Decimal
}

// ResolveEscrow applies a reviewer decision to a pending entry. The
// entry is removed before any balance math, so a duplicate resolution
// request observes ErrNotFound and changes nothing. On confirmation the
// amount moves from hold to main and a referral commission is paid if
// the user has a referrer on record; on rejection or block the amount
// is deducted from hold.
func (l *Ledger) ResolveEscrow(userID int64, entryID string, outcome domain.Outcome) (*Resolution, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}
	entry, ok := acc.Pending[entryID]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
	}

	// Claim the resolution before touching balances.
	delete(acc.Pending, entryID)

	res := &Resolution{Entry: entry, Outcome: outcome}
	meta := l.ensureMetadata(userID)

	switch outcome {
	case domain.OutcomeConfirmed:
		acc.Hold = acc.Hold.Sub(entry.Amount)
		acc.Main = acc.Main.Add(entry.Amount)
		meta.ConfirmedCount++
		meta.ConfirmedSubjects = append(meta.ConfirmedSubjects, entry.Subject)
		if meta.Referrer != 0 {
			l.payCommission(meta.Referrer)
			res.ReferrerID = meta.Referrer
			res.Commission = Commission
		}
	case domain.OutcomeRejected:
		acc.Hold = acc.Hold.Sub(entry.Amount)
		meta.RejectedCount++
	case domain.OutcomeBlocked:
		acc.Hold = acc.Hold.Sub(entry.Amount)
		meta.BlockedCount++
	default:
		// Unknown outcome: put the entry back untouched.
		acc.Pending[entryID] = entry
		return nil, fmt.Errorf("outcome %q: %w", outcome, domain.ErrInvalidTarget)
	}

	l.logger.Info("escrow resolved",
		zap.Int64("user_id", userID),
		zap.String("entry_id", entryID),
		zap.String("outcome", string(outcome)),
		zap.String("amount", entry.Amount.String()),
	)
	return res, nil
}

// ensureMetadata must be called with l.mu held
func (l *Ledger) ensureMetadata(userID int64) *domain.UserMetadata {
	meta, ok := l.metadata[userID]
	if !ok {
		meta = &domain.UserMetadata{}
		l.metadata[userID] = meta
	}
	return meta
}
