package domain

import "github.com/shopspring/decimal"

// Settings are the process-wide scalars admins can edit at runtime
type Settings struct {
	FreshPrice    decimal.Decimal `json:"fresh_price"`
	CompletePrice decimal.Decimal `json:"complete_price"`
	OldPrice      decimal.Decimal `json:"old_price"`
	MinWithdrawal decimal.Decimal `json:"min_withdrawal"`
	HowToLink     string          `json:"how_to_link"`
	Enabled       bool            `json:"enabled"`
}

// DefaultSettings returns the prices the system starts with
func DefaultSettings() Settings {
	return Settings{
		FreshPrice:    decimal.NewFromFloat(0.25),
		CompletePrice: decimal.NewFromFloat(0.22),
		OldPrice:      decimal.NewFromFloat(0.14),
		MinWithdrawal: decimal.NewFromFloat(1.0),
		HowToLink:     "https://t.me/+djhhtndhA1FjZWZl",
		Enabled:       true,
	}
}

// Snapshot is the full durable state of the ledger, as written to and
// read from the store
type Snapshot struct {
	Accounts     map[int64]*Account        `json:"accounts"`
	SoldSubjects []string                  `json:"sold_subjects"`
	Referrals    map[int64]*ReferralRecord `json:"referrals"`
	KnownUsers   []int64                   `json:"known_users"`
	Metadata     map[int64]*UserMetadata   `json:"metadata"`
	Settings     Settings                  `json:"settings"`
}

// DefaultSnapshot returns the empty state used when no stored snapshot
// can be loaded
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Accounts:  make(map[int64]*Account),
		Referrals: make(map[int64]*ReferralRecord),
		Metadata:  make(map[int64]*UserMetadata),
		Settings:  DefaultSettings(),
	}
}

// Normalize fills nil maps left behind by older stored snapshots
func (s *Snapshot) Normalize() {
	if s.Accounts == nil {
		s.Accounts = make(map[int64]*Account)
	}
	if s.Referrals == nil {
		s.Referrals = make(map[int64]*ReferralRecord)
	}
	if s.Metadata == nil {
		s.Metadata = make(map[int64]*UserMetadata)
	}
	for _, acc := range s.Accounts {
		if acc.Pending == nil {
			acc.Pending = make(map[string]PendingEntry)
		}
	}
}
