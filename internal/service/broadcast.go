package service

import (
	"fmt"

	"mailmarket/internal/ledger"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// BroadcastService delivers admin announcements to users
type BroadcastService struct {
	ledger  *ledger.Ledger
	channel Channel
	logger  *zap.Logger
}

// NewBroadcastService creates a broadcast service
func NewBroadcastService(l *ledger.Ledger, channel Channel, logger *zap.Logger) *BroadcastService {
	return &BroadcastService{ledger: l, channel: channel, logger: logger}
}

// BroadcastAll sends the text to every known account and returns how
// many deliveries succeeded. Individual failures are skipped.
func (s *BroadcastService) BroadcastAll(text string) int {
	msg := fmt.Sprintf("📢 Notification\n\n%s", text)

	count := 0
	for _, id := range s.ledger.UserIDs() {
		if _, err := s.channel.Send(tele.ChatID(id), msg); err != nil {
			s.logger.Debug("broadcast delivery failed",
				zap.Int64("user_id", id),
				zap.Error(err),
			)
			continue
		}
		count++
	}

	s.logger.Info("broadcast sent", zap.Int("delivered", count))
	return count
}

// NotifyUser sends the text to a single user. Unlike broadcast
// deliveries, the caller is told about a failure so the admin sees it.
func (s *BroadcastService) NotifyUser(userID int64, text string) error {
	msg := fmt.Sprintf("📢 Notification\n\n%s", text)
	if _, err := s.channel.Send(tele.ChatID(userID), msg); err != nil {
		return fmt.Errorf("notify user %d: %w", userID, err)
	}
	return nil
}
