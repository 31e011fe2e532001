package service

import (
	tele "gopkg.in/telebot.v3"
)

// Channel is the outbound messaging surface. *tele.Bot satisfies it;
// services depend on this interface so notification delivery can be
// mocked in tests. Recipients are raw chat ids via tele.ChatID.
type Channel interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Saver persists the current ledger state, best-effort
type Saver interface {
	SaveNow()
}
