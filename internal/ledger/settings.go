package ledger

import (
	"fmt"

	"mailmarket/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Settings returns a copy of the current runtime settings
func (l *Ledger) Settings() domain.Settings {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings
}

// SetPrice updates one of the numeric settings
func (l *Ledger) SetPrice(key domain.PriceKey, value decimal.Decimal) error {
	if value.LessThan(decimal.Zero) {
		return fmt.Errorf("price %s: %w", value, domain.ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch key {
	case domain.PriceFresh:
		l.settings.FreshPrice = value
	case domain.PriceComplete:
		l.settings.CompletePrice = value
	case domain.PriceOld:
		l.settings.OldPrice = value
	case domain.PriceMinWithdrawal:
		l.settings.MinWithdrawal = value
	default:
		return fmt.Errorf("price key %q: %w", key, domain.ErrInvalidTarget)
	}

	l.logger.Info("price updated",
		zap.String("key", string(key)),
		zap.String("value", value.String()),
	)
	return nil
}

// SetHowToLink updates the informational link shown in submission flows
func (l *Ledger) SetHowToLink(link string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.HowToLink = link
}

// SetEnabled toggles whether non-admin users may interact with the bot
func (l *Ledger) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.settings.Enabled = enabled
	l.logger.Info("bot status changed", zap.Bool("enabled", enabled))
}

// Enabled reports whether the bot accepts non-admin interactions
func (l *Ledger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settings.Enabled
}
