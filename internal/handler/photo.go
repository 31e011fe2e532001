package handler

import (
	"fmt"

	"mailmarket/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handlePhoto accepts a 2FA QR photo during submission. Photos outside
// that state are ignored.
func (h *Handler) handlePhoto(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if state.State != domain.StateAwaiting2FAPhoto {
		return nil
	}

	photo := c.Message().Photo
	if photo == nil {
		return c.Send("Please upload a photo of the QR code.")
	}

	// Forward the QR to the reviewer so they can scan it during review.
	photo.Caption = fmt.Sprintf("2FA QR Photo for User ID: %d", userID)
	if _, err := h.bot.Send(tele.ChatID(h.adminID), photo); err != nil {
		h.logger.Error("failed to forward QR photo",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return h.finalizeSubmission(c, true, "QR Photo (Sent to Admin)")
}
