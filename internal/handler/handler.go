package handler

import (
	"sync"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"
	"mailmarket/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	ledger     *ledger.Ledger
	settlement *service.SettlementService
	broadcast  *service.BroadcastService
	saver      service.Saver
	adminID    int64
	logger     *zap.Logger

	// Per-user dialog states (in-memory state machine). Sessions are
	// not persisted: a restart drops in-flight dialogs, never ledger
	// state, because escrow is only created when a flow completes.
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	l *ledger.Ledger,
	settlement *service.SettlementService,
	broadcast *service.BroadcastService,
	saver service.Saver,
	adminID int64,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		ledger:     l,
		settlement: settlement,
		broadcast:  broadcast,
		saver:      saver,
		adminID:    adminID,
		logger:     logger,
		states:     make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text and photo messages
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnPhoto, h.handlePhoto)

	// Submission flow callbacks
	h.bot.Handle(&btnGmailDone, h.handleGmailDone)
	h.bot.Handle(&btnGmailCancel, h.handleGmailCancel)
	h.bot.Handle(&btnEnable2FA, h.handleEnable2FA)
	h.bot.Handle(&btnSendQR, h.handleSendQR)
	h.bot.Handle(&btnTypeKey, h.handleTypeKey)
	h.bot.Handle(&btnCompleteReg, h.handleCompleteReg)

	// Reviewer decision callbacks
	h.bot.Handle(&service.BtnConfirm, h.handleReview(domain.OutcomeConfirmed))
	h.bot.Handle(&service.BtnReject, h.handleReview(domain.OutcomeRejected))
	h.bot.Handle(&service.BtnBlock, h.handleReview(domain.OutcomeBlocked))

	// Admin balance adjustment callbacks
	h.bot.Handle(&btnAdjustAdd, h.handleAdjustSelect(false))
	h.bot.Handle(&btnAdjustRemove, h.handleAdjustSelect(true))

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current dialog state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return domain.Idle()
	}
	return state
}

// SetState sets user's dialog state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, domain.Idle())
}

func (h *Handler) isAdmin(userID int64) bool {
	return userID == h.adminID
}
