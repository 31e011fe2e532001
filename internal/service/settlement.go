package service

import (
	"fmt"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Review callback buttons; the data payload is "<userID>|<entryID>".
// Handlers register on the same uniques.
var (
	BtnConfirm = tele.Btn{Unique: "sub_confirm"}
	BtnReject  = tele.Btn{Unique: "sub_reject"}
	BtnBlock   = tele.Btn{Unique: "sub_block"}
)

// Submission is a completed credential submission ready for escrow
type Submission struct {
	Address  string
	Password string
	Old      bool   // previously-owned account vs freshly generated
	WithTwoFA bool
	TwoFAInfo string // "Key: ...", "QR Photo", "No 2FA"
}

// SettlementService turns completed submissions into escrow entries,
// dispatches review requests to the admin and applies reviewer
// decisions to the ledger
type SettlementService struct {
	ledger  *ledger.Ledger
	channel Channel
	saver   Saver
	adminID int64
	logger  *zap.Logger
}

// NewSettlementService creates a settlement service
func NewSettlementService(l *ledger.Ledger, channel Channel, saver Saver, adminID int64, logger *zap.Logger) *SettlementService {
	return &SettlementService{
		ledger:  l,
		channel: channel,
		saver:   saver,
		adminID: adminID,
		logger:  logger,
	}
}

// Price returns the escrow amount for a submission from the current
// settings: old price for previously-owned accounts, otherwise the 2FA
// price or the complete-without-2FA price
func (s *SettlementService) Price(sub Submission) decimal.Decimal {
	settings := s.ledger.Settings()
	if sub.Old {
		return settings.OldPrice
	}
	if sub.WithTwoFA {
		return settings.FreshPrice
	}
	return settings.CompletePrice
}

// Finalize escrows the submission's price on the user's hold balance
// and sends the review request to the admin. The admin notification is
// best-effort; the escrow stands even if it fails.
func (s *SettlementService) Finalize(userID int64, sub Submission) (string, error) {
	price := s.Price(sub)

	entryID, err := s.ledger.CreateEscrow(userID, price, sub.Address)
	if err != nil {
		return "", fmt.Errorf("finalize submission: %w", err)
	}
	s.ledger.MarkSold(sub.Address)

	kind := ""
	if sub.Old {
		kind = "Old "
	}
	text := fmt.Sprintf(
		"New %sRegistration\nID: <code>%d</code>\n2FA: %s\nGmail: <code>%s</code>\nPassword: <code>%s</code>\nPrice: %s",
		kind, userID, sub.TwoFAInfo, sub.Address, sub.Password, price.StringFixed(2),
	)

	markup := &tele.ReplyMarkup{}
	ref := fmt.Sprintf("%d|%s", userID, entryID)
	markup.Inline(
		markup.Row(markup.Data("✅ Confirm", BtnConfirm.Unique, ref)),
		markup.Row(markup.Data("❌ Not Registered", BtnReject.Unique, ref)),
		markup.Row(markup.Data("🚫 Gmail Blocked", BtnBlock.Unique, ref)),
	)

	if _, err := s.channel.Send(tele.ChatID(s.adminID), text, markup, tele.ModeHTML); err != nil {
		s.logger.Warn("failed to send review request",
			zap.Int64("user_id", userID),
			zap.String("entry_id", entryID),
			zap.Error(err),
		)
	}

	s.saver.SaveNow()
	return entryID, nil
}

// Resolve applies the reviewer's decision and notifies the affected
// parties. Returns ErrNotFound (wrapped) when the entry was already
// resolved, which callers treat as a harmless duplicate tap.
func (s *SettlementService) Resolve(userID int64, entryID string, outcome domain.Outcome) (*ledger.Resolution, error) {
	res, err := s.ledger.ResolveEscrow(userID, entryID, outcome)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case domain.OutcomeConfirmed:
		s.notify(userID, fmt.Sprintf(
			"✅ Your registration confirmed!\n📧 Gmail: %s\n💰 Amount: %s USDT\n\nStatus: Moved from Hold to Main balance.",
			res.Entry.Subject, res.Entry.Amount.StringFixed(2),
		))
		if res.ReferrerID != 0 {
			s.notify(res.ReferrerID, fmt.Sprintf(
				"🎁 Referral Commission!\n\nYour referral (ID: %d) successfully sold a Gmail. You earned %s USDT bonus in your Main Balance!",
				userID, res.Commission.StringFixed(2),
			))
		}
	case domain.OutcomeRejected:
		s.notify(userID, fmt.Sprintf(
			"❌ Your registration was not registered.\n📧 Gmail: %s\n💰 Amount: %s USDT\n\nStatus: Deducted from Hold balance.",
			res.Entry.Subject, res.Entry.Amount.StringFixed(2),
		))
	case domain.OutcomeBlocked:
		s.notify(userID, fmt.Sprintf(
			"❌ Your registration was blocked.\n📧 Gmail: %s\n💰 Amount: %s USDT\n\nStatus: Deducted from Hold balance.",
			res.Entry.Subject, res.Entry.Amount.StringFixed(2),
		))
	}

	s.saver.SaveNow()
	return res, nil
}

// notify delivers a message best-effort; a failed send never unwinds a
// committed ledger change
func (s *SettlementService) notify(userID int64, text string) {
	if _, err := s.channel.Send(tele.ChatID(userID), text); err != nil {
		s.logger.Warn("notification delivery failed",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
