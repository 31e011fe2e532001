package service

import (
	"errors"
	"testing"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"
	"mailmarket/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

const testAdminID = int64(5810613583)

func newSettlementFixture() (*SettlementService, *ledger.Ledger, *testutil.MockChannel, *testutil.MockSaver) {
	l := ledger.New(testutil.NewTestLogger())
	channel := new(testutil.MockChannel)
	saver := new(testutil.MockSaver)
	s := NewSettlementService(l, channel, saver, testAdminID, testutil.NewTestLogger())
	return s, l, channel, saver
}

func TestSettlementService_Price(t *testing.T) {
	s, _, _, _ := newSettlementFixture()

	tests := []struct {
		name     string
		sub      Submission
		expected string
	}{
		{
			name:     "old account uses old price",
			sub:      Submission{Old: true, WithTwoFA: true},
			expected: "0.14",
		},
		{
			name:     "fresh with 2FA uses fresh price",
			sub:      Submission{WithTwoFA: true},
			expected: "0.25",
		},
		{
			name:     "fresh without 2FA uses complete price",
			sub:      Submission{},
			expected: "0.22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.Price(tt.sub).String())
		})
	}
}

func TestSettlementService_Finalize(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()

	channel.On("Send", tele.ChatID(testAdminID), mock.Anything, mock.Anything).Return(nil, nil)
	saver.On("SaveNow").Return()

	entryID, err := s.Finalize(7, Submission{
		Address:   "addr@gmail.com",
		Password:  "pw",
		WithTwoFA: true,
		TwoFAInfo: "Key: abcd",
	})
	require.NoError(t, err)
	assert.Len(t, entryID, 4)

	hold, _ := l.Balances(7)
	assert.Equal(t, "0.25", hold.String())
	assert.True(t, l.IsSold("addr@gmail.com"))

	channel.AssertExpectations(t)
	saver.AssertExpectations(t)
}

func TestSettlementService_Finalize_ChannelFailureKeepsEscrow(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()

	channel.On("Send", tele.ChatID(testAdminID), mock.Anything, mock.Anything).
		Return(nil, errors.New("telegram down"))
	saver.On("SaveNow").Return()

	_, err := s.Finalize(7, Submission{Address: "a@gmail.com", Old: true})
	require.NoError(t, err, "review-request delivery failure must not unwind the escrow")

	hold, _ := l.Balances(7)
	assert.Equal(t, "0.14", hold.String())
}

func TestSettlementService_Resolve_Confirmed(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()
	saver.On("SaveNow").Return()
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	entryID, err := s.Finalize(7, Submission{Address: "a@gmail.com", WithTwoFA: true})
	require.NoError(t, err)

	res, err := s.Resolve(7, entryID, domain.OutcomeConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeConfirmed, res.Outcome)

	hold, main := l.Balances(7)
	assert.True(t, hold.IsZero())
	assert.Equal(t, "0.25", main.String())

	// Review request + confirmation notice to the user.
	channel.AssertNumberOfCalls(t, "Send", 2)
}

func TestSettlementService_Resolve_PaysReferrerAndNotifies(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()
	saver.On("SaveNow").Return()
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	l.RecordReferral(9, 7)
	entryID, err := s.Finalize(7, Submission{Address: "a@gmail.com", WithTwoFA: true})
	require.NoError(t, err)

	res, err := s.Resolve(7, entryID, domain.OutcomeConfirmed)
	require.NoError(t, err)
	assert.Equal(t, int64(9), res.ReferrerID)

	_, refMain := l.Balances(9)
	assert.Equal(t, "0.04", refMain.String())

	// Review request + user notice + referrer notice.
	channel.AssertNumberOfCalls(t, "Send", 3)
}

func TestSettlementService_Resolve_DuplicateTap(t *testing.T) {
	s, _, channel, saver := newSettlementFixture()
	saver.On("SaveNow").Return()
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	entryID, err := s.Finalize(7, Submission{Address: "a@gmail.com"})
	require.NoError(t, err)

	_, err = s.Resolve(7, entryID, domain.OutcomeConfirmed)
	require.NoError(t, err)

	_, err = s.Resolve(7, entryID, domain.OutcomeConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettlementService_Resolve_NotificationFailureSwallowed(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()
	saver.On("SaveNow").Return()
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("user blocked the bot"))

	entryID, err := s.Finalize(7, Submission{Address: "a@gmail.com"})
	require.NoError(t, err)

	_, err = s.Resolve(7, entryID, domain.OutcomeRejected)
	require.NoError(t, err, "notification failure must not surface")

	hold, _ := l.Balances(7)
	assert.True(t, hold.IsZero())
}

func TestSettlementService_Resolve_AmountFixedAtCreation(t *testing.T) {
	s, l, channel, saver := newSettlementFixture()
	saver.On("SaveNow").Return()
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

	entryID, err := s.Finalize(7, Submission{Address: "a@gmail.com", WithTwoFA: true})
	require.NoError(t, err)

	// A later price change must not affect the already-escrowed entry.
	require.NoError(t, l.SetPrice(domain.PriceFresh, decimal.NewFromFloat(9.99)))

	res, err := s.Resolve(7, entryID, domain.OutcomeConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "0.25", res.Entry.Amount.String())

	_, main := l.Balances(7)
	assert.Equal(t, "0.25", main.String())
}
