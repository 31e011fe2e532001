package store

import (
	"os"
	"path/filepath"
	"testing"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSnapshot() *domain.Snapshot {
	snap := domain.DefaultSnapshot()
	acc := domain.NewAccount()
	acc.Hold = decimal.NewFromFloat(0.25)
	acc.Main = decimal.NewFromFloat(1.5)
	acc.Pending["1234"] = domain.PendingEntry{
		ID:      "1234",
		Amount:  decimal.NewFromFloat(0.25),
		Subject: "pending@gmail.com",
	}
	snap.Accounts[7] = acc
	snap.SoldSubjects = []string{"sold@gmail.com"}
	snap.KnownUsers = []int64{7}
	snap.Referrals[9] = &domain.ReferralRecord{Invited: 1, Income: decimal.NewFromFloat(0.04)}
	snap.Metadata[7] = &domain.UserMetadata{
		Referrer:          9,
		ConfirmedCount:    2,
		ConfirmedSubjects: []string{"sold@gmail.com"},
	}
	return snap
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(
		filepath.Join(dir, "balances.json"),
		filepath.Join(dir, "balances_backup.json"),
		zap.NewNop(),
	)

	want := testSnapshot()
	require.NoError(t, s.Save(want))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_LoadFallsBackToBackup(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "balances.json")
	backup := filepath.Join(dir, "balances_backup.json")

	s := NewFileStore(primary, backup, zap.NewNop())
	want := testSnapshot()
	require.NoError(t, s.Save(want))

	// Corrupt the primary; the backup must still serve the state.
	require.NoError(t, os.WriteFile(primary, []byte("{broken"), 0o644))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_LoadDefaultsWhenNothingStored(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(
		filepath.Join(dir, "missing.json"),
		filepath.Join(dir, "missing_backup.json"),
		zap.NewNop(),
	)

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSnapshot(), got)
	assert.True(t, got.Settings.Enabled)
	assert.Equal(t, "0.25", got.Settings.FreshPrice.String())
}

func TestFileStore_SaveWritesBackup(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "balances.json")
	backup := filepath.Join(dir, "balances_backup.json")

	s := NewFileStore(primary, backup, zap.NewNop())
	require.NoError(t, s.Save(testSnapshot()))

	pdata, err := os.ReadFile(primary)
	require.NoError(t, err)
	bdata, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, pdata, bdata)
}
