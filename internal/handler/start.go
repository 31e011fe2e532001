package handler

import (
	"strconv"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command, including referral deep links
// of the form /start <referrerID>
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if payload := c.Message().Payload; payload != "" {
		if referrerID, err := strconv.ParseInt(payload, 10, 64); err == nil {
			// Self-referrals and already-known users are ignored
			// inside the ledger; first referral wins.
			h.ledger.RecordReferral(referrerID, userID)
		}
	}

	h.ledger.EnsureAccount(userID)
	h.ResetState(userID)

	if h.isAdmin(userID) {
		return c.Send("Welcome! Choose an option below:", adminMenuMarkup())
	}
	return c.Send("Welcome! Choose an option below:", userMenuMarkup())
}
