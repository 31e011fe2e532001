package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds one user's balances and in-flight escrow entries
type Account struct {
	Hold    decimal.Decimal         `json:"hold"`
	Main    decimal.Decimal         `json:"main"`
	Pending map[string]PendingEntry `json:"pending"`
}

// NewAccount creates an account with zero balances
func NewAccount() *Account {
	return &Account{
		Hold:    decimal.Zero,
		Main:    decimal.Zero,
		Pending: make(map[string]PendingEntry),
	}
}

// PendingEntry is one escrowed submission awaiting a reviewer decision.
// The id is unique within the owning account, not globally.
type PendingEntry struct {
	ID      string          `json:"id"`
	Amount  decimal.Decimal `json:"amount"`
	Subject string          `json:"subject"`
}

// Outcome is a reviewer's decision on a pending entry
type Outcome string

const (
	OutcomeConfirmed Outcome = "confirmed"
	OutcomeRejected  Outcome = "rejected"
	OutcomeBlocked   Outcome = "blocked"
)

// ReferralPayout is one commission payment in a referrer's history
type ReferralPayout struct {
	Time   time.Time       `json:"time"`
	Amount decimal.Decimal `json:"amount"`
}

// ReferralRecord tracks a referrer's invite count and earnings
type ReferralRecord struct {
	Invited int              `json:"invited"`
	Income  decimal.Decimal  `json:"income"`
	History []ReferralPayout `json:"history"`
}

// UserMetadata tracks per-user settlement history. Referrer is the
// inviting user's id, zero when nobody referred this user; it is set
// at most once.
type UserMetadata struct {
	Referrer          int64    `json:"referrer,omitempty"`
	ConfirmedCount    int      `json:"confirmed_count"`
	BlockedCount      int      `json:"blocked_count"`
	RejectedCount     int      `json:"rejected_count"`
	ConfirmedSubjects []string `json:"confirmed_subjects,omitempty"`
}

// BalanceKind selects which of the two balances an admin adjustment targets
type BalanceKind string

const (
	BalanceHold BalanceKind = "hold"
	BalanceMain BalanceKind = "main"
)
