package ledger

import (
	"testing"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Transfer(t *testing.T) {
	l := newTestLedger()
	_, err := l.Adjust(1, domain.BalanceMain, decimal.NewFromFloat(10))
	require.NoError(t, err)

	err = l.Transfer(1, 2, decimal.NewFromFloat(5))
	require.NoError(t, err)

	_, senderMain := l.Balances(1)
	_, receiverMain := l.Balances(2)
	assert.Equal(t, "5", senderMain.String())
	assert.Equal(t, "5", receiverMain.String())
}

func TestLedger_Transfer_InsufficientFunds(t *testing.T) {
	l := newTestLedger()
	_, err := l.Adjust(1, domain.BalanceMain, decimal.NewFromFloat(10))
	require.NoError(t, err)
	_, err = l.Adjust(2, domain.BalanceMain, decimal.NewFromFloat(1))
	require.NoError(t, err)

	err = l.Transfer(1, 2, decimal.NewFromFloat(15))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	// Both balances untouched.
	_, senderMain := l.Balances(1)
	_, receiverMain := l.Balances(2)
	assert.Equal(t, "10", senderMain.String())
	assert.Equal(t, "1", receiverMain.String())
}

func TestLedger_Transfer_Validation(t *testing.T) {
	tests := []struct {
		name        string
		senderID    int64
		receiverID  int64
		amount      decimal.Decimal
		expectedErr error
	}{
		{
			name:        "zero amount",
			senderID:    1,
			receiverID:  2,
			amount:      decimal.Zero,
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			senderID:    1,
			receiverID:  2,
			amount:      decimal.NewFromFloat(-3),
			expectedErr: domain.ErrInvalidAmount,
		},
		{
			name:        "self transfer",
			senderID:    1,
			receiverID:  1,
			amount:      decimal.NewFromFloat(1),
			expectedErr: domain.ErrInvalidTarget,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()
			_, err := l.Adjust(1, domain.BalanceMain, decimal.NewFromFloat(10))
			require.NoError(t, err)

			err = l.Transfer(tt.senderID, tt.receiverID, tt.amount)
			assert.ErrorIs(t, err, tt.expectedErr)

			_, main := l.Balances(1)
			assert.Equal(t, "10", main.String())
		})
	}
}

func TestLedger_Transfer_CreatesReceiver(t *testing.T) {
	l := newTestLedger()
	_, err := l.Adjust(1, domain.BalanceMain, decimal.NewFromFloat(2))
	require.NoError(t, err)

	require.False(t, l.AccountExists(77))
	require.NoError(t, l.Transfer(1, 77, decimal.NewFromFloat(2)))
	assert.True(t, l.AccountExists(77))

	_, receiverMain := l.Balances(77)
	assert.Equal(t, "2", receiverMain.String())
}

func TestLedger_Adjust(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.BalanceKind
		deltas   []float64
		expected string
	}{
		{
			name:     "add to main",
			kind:     domain.BalanceMain,
			deltas:   []float64{1.5, 2.5},
			expected: "4",
		},
		{
			name:     "remove below zero from main",
			kind:     domain.BalanceMain,
			deltas:   []float64{1, -3},
			expected: "-2",
		},
		{
			name:     "remove below zero from hold",
			kind:     domain.BalanceHold,
			deltas:   []float64{-0.5},
			expected: "-0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLedger()

			var result decimal.Decimal
			for _, d := range tt.deltas {
				var err error
				result, err = l.Adjust(5, tt.kind, decimal.NewFromFloat(d))
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result.String())
		})
	}
}

func TestLedger_Adjust_UnknownKind(t *testing.T) {
	l := newTestLedger()

	_, err := l.Adjust(5, domain.BalanceKind("escrow"), decimal.NewFromFloat(1))
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
}
