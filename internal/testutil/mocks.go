package testutil

import (
	"mailmarket/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockChannel is a mock for service.Channel
type MockChannel struct {
	mock.Mock
}

func (m *MockChannel) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tele.Message), args.Error(1)
}

// MockStore is a mock for store.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load() (*domain.Snapshot, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockStore) Save(snap *domain.Snapshot) error {
	args := m.Called(snap)
	return args.Error(0)
}

// MockSaver is a mock for service.Saver
type MockSaver struct {
	mock.Mock
}

func (m *MockSaver) SaveNow() {
	m.Called()
}
