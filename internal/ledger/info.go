package ledger

import (
	"fmt"
	"sort"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
)

// MarkSold appends a subject to the sold list. Duplicates are ignored.
func (l *Ledger) MarkSold(subject string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.soldSet[subject]; ok {
		return
	}
	l.soldSet[subject] = struct{}{}
	l.sold = append(l.sold, subject)
}

// IsSold reports whether a subject has already been submitted and
// accepted into the sold list
func (l *Ledger) IsSold(subject string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.soldSet[subject]
	return ok
}

// Stats aggregates settlement counters across all users
type Stats struct {
	Confirmed int
	Blocked   int
	Rejected  int
	Users     int
}

// Stats returns global settlement statistics
func (l *Ledger) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Stats
	for _, meta := range l.metadata {
		s.Confirmed += meta.ConfirmedCount
		s.Blocked += meta.BlockedCount
		s.Rejected += meta.RejectedCount
	}
	s.Users = len(l.accounts)
	return s
}

// UserInfo is an admin-facing view of one user's account
type UserInfo struct {
	Hold              decimal.Decimal
	Main              decimal.Decimal
	ConfirmedCount    int
	BlockedCount      int
	RejectedCount     int
	Pending           []domain.PendingEntry
	ConfirmedSubjects []string
}

// UserInfo returns balances, counters and pending entries for one user,
// or ErrNotFound for an unknown user
func (l *Ledger) UserInfo(userID int64) (*UserInfo, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accounts[userID]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrNotFound)
	}

	info := &UserInfo{Hold: acc.Hold, Main: acc.Main}
	for _, e := range acc.Pending {
		info.Pending = append(info.Pending, e)
	}
	sort.Slice(info.Pending, func(i, j int) bool {
		return info.Pending[i].ID < info.Pending[j].ID
	})

	if meta, ok := l.metadata[userID]; ok {
		info.ConfirmedCount = meta.ConfirmedCount
		info.BlockedCount = meta.BlockedCount
		info.RejectedCount = meta.RejectedCount
		info.ConfirmedSubjects = append([]string(nil), meta.ConfirmedSubjects...)
	}
	return info, nil
}

// UserIDs returns the ids of all accounts, for broadcast delivery
func (l *Ledger) UserIDs() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]int64, 0, len(l.accounts))
	for id := range l.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
