package handler

import (
	"sync"
	"testing"

	"mailmarket/internal/domain"

	"github.com/stretchr/testify/assert"
)

func newTestHandler() *Handler {
	return &Handler{
		adminID: 5810613583,
		states:  make(map[int64]*domain.StateData),
	}
}

func TestStateManagement(t *testing.T) {
	h := newTestHandler()

	t.Run("unknown user is idle", func(t *testing.T) {
		state := h.GetState(42)
		assert.Equal(t, domain.StateIdle, state.State)
	})

	t.Run("set and get", func(t *testing.T) {
		h.SetState(42, &domain.StateData{
			State:        domain.StateAwaitingTransferAmount,
			TargetID:     99,
			DraftAddress: "someone@gmail.com",
		})

		state := h.GetState(42)
		assert.Equal(t, domain.StateAwaitingTransferAmount, state.State)
		assert.Equal(t, int64(99), state.TargetID)
		assert.Equal(t, "someone@gmail.com", state.DraftAddress)
	})

	t.Run("reset clears scratch", func(t *testing.T) {
		h.ResetState(42)

		state := h.GetState(42)
		assert.Equal(t, domain.StateIdle, state.State)
		assert.Empty(t, state.DraftAddress)
		assert.Zero(t, state.TargetID)
	})

	t.Run("states are per user", func(t *testing.T) {
		h.SetState(1, &domain.StateData{State: domain.StateAwaitingAddress})
		h.SetState(2, &domain.StateData{State: domain.StateAwaitingBroadcastText})

		assert.Equal(t, domain.StateAwaitingAddress, h.GetState(1).State)
		assert.Equal(t, domain.StateAwaitingBroadcastText, h.GetState(2).State)
	})
}

func TestStateManagementConcurrent(t *testing.T) {
	h := newTestHandler()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			h.SetState(id, &domain.StateData{State: domain.StateAwaitingPassword})
			_ = h.GetState(id)
			h.ResetState(id)
		}(int64(i))
	}
	wg.Wait()

	for i := int64(0); i < 50; i++ {
		assert.Equal(t, domain.StateIdle, h.GetState(i).State)
	}
}

func TestIsAdmin(t *testing.T) {
	h := newTestHandler()

	assert.True(t, h.isAdmin(5810613583))
	assert.False(t, h.isAdmin(123))
	assert.False(t, h.isAdmin(0))
}
