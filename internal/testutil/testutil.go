package testutil

import (
	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAccount creates an account with the given balances
func NewTestAccount(hold, main float64) *domain.Account {
	acc := domain.NewAccount()
	acc.Hold = decimal.NewFromFloat(hold)
	acc.Main = decimal.NewFromFloat(main)
	return acc
}

// NewTestEntry creates a pending entry
func NewTestEntry(id string, amount float64, subject string) domain.PendingEntry {
	return domain.PendingEntry{
		ID:      id,
		Amount:  decimal.NewFromFloat(amount),
		Subject: subject,
	}
}
