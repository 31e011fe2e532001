package ledger

import (
	"fmt"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Transfer moves amount from the sender's main balance to the
// receiver's. The receiver account is created if it does not exist yet;
// transfers to oneself are rejected.
func (l *Ledger) Transfer(senderID, receiverID int64, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("transfer amount %s: %w", amount, domain.ErrInvalidAmount)
	}
	if senderID == receiverID {
		return fmt.Errorf("transfer to self: %w", domain.ErrInvalidTarget)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	sender := l.ensureAccount(senderID)
	if sender.Main.LessThan(amount) {
		return fmt.Errorf("main balance %s below %s: %w",
			sender.Main, amount, domain.ErrInsufficientFunds)
	}

	receiver := l.ensureAccount(receiverID)
	sender.Main = sender.Main.Sub(amount)
	receiver.Main = receiver.Main.Add(amount)

	l.logger.Info("transfer completed",
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", receiverID),
		zap.String("amount", amount.String()),
	)
	return nil
}

// Adjust applies a signed delta to one of the user's balances. This is
// the privileged admin path; no floor is enforced, so the result may go
// negative.
func (l *Ledger) Adjust(userID int64, kind domain.BalanceKind, delta decimal.Decimal) (decimal.Decimal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc := l.ensureAccount(userID)

	var result decimal.Decimal
	switch kind {
	case domain.BalanceHold:
		acc.Hold = acc.Hold.Add(delta)
		result = acc.Hold
	case domain.BalanceMain:
		acc.Main = acc.Main.Add(delta)
		result = acc.Main
	default:
		return decimal.Zero, fmt.Errorf("balance kind %q: %w", kind, domain.ErrInvalidTarget)
	}

	l.logger.Info("balance adjusted",
		zap.Int64("user_id", userID),
		zap.String("kind", string(kind)),
		zap.String("delta", delta.String()),
		zap.String("result", result.String()),
	)
	return result, nil
}
