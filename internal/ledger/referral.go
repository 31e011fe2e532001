package ledger

import (
	"time"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordReferral links a referee to their referrer. It is a no-op when
// the referee refers themselves, has already entered the system, or
// already has a referrer on record: the first referral wins. No funds
// move here; commission is paid when the referee's submissions are
// confirmed.
func (l *Ledger) RecordReferral(referrerID, refereeID int64) {
	if referrerID == refereeID {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, known := l.knownSet[refereeID]; known {
		return
	}
	l.knownSet[refereeID] = struct{}{}
	l.knownUsers = append(l.knownUsers, refereeID)

	meta := l.ensureMetadata(refereeID)
	if meta.Referrer != 0 {
		return
	}
	meta.Referrer = referrerID

	rec := l.ensureReferral(referrerID)
	rec.Invited++

	l.logger.Info("referral recorded",
		zap.Int64("referrer_id", referrerID),
		zap.Int64("referee_id", refereeID),
	)
}

// payCommission must be called with l.mu held
func (l *Ledger) payCommission(referrerID int64) {
	acc := l.ensureAccount(referrerID)
	acc.Main = acc.Main.Add(Commission)

	rec := l.ensureReferral(referrerID)
	rec.Income = rec.Income.Add(Commission)
	rec.History = append(rec.History, domain.ReferralPayout{
		Time:   l.now(),
		Amount: Commission,
	})
}

// ensureReferral must be called with l.mu held
func (l *Ledger) ensureReferral(referrerID int64) *domain.ReferralRecord {
	rec, ok := l.referrals[referrerID]
	if !ok {
		rec = &domain.ReferralRecord{Income: decimal.Zero}
		l.referrals[referrerID] = rec
	}
	return rec
}

// ReferralStats returns the referrer's invite count and total earnings
func (l *Ledger) ReferralStats(referrerID int64) (invited int, income decimal.Decimal) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.referrals[referrerID]
	if !ok {
		return 0, decimal.Zero
	}
	return rec.Invited, rec.Income
}

// Rolling24hIncome sums the referrer's commission payouts from the
// trailing 24 hours. Computed on every read.
func (l *Ledger) Rolling24hIncome(referrerID int64) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.referrals[referrerID]
	if !ok {
		return decimal.Zero
	}

	cutoff := l.now().Add(-24 * time.Hour)
	sum := decimal.Zero
	for _, p := range rec.History {
		if p.Time.After(cutoff) {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}
