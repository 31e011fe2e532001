package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"
	"mailmarket/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func ledgerCommission() string {
	return ledger.Commission.StringFixed(2)
}

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseReviewRef parses a "<userID>|<entryID>" review callback payload
func parseReviewRef(data string) (int64, string, error) {
	parts := strings.Split(cleanCallbackData(data), "|")
	if len(parts) != 2 || parts[1] == "" {
		return 0, "", fmt.Errorf("malformed review reference %q", data)
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("malformed review reference %q: %w", data, err)
	}
	return userID, parts[1], nil
}

// parseAdjustRef parses a "<kind>|<targetID>" adjustment callback payload
func parseAdjustRef(data string) (domain.BalanceKind, int64, error) {
	parts := strings.Split(cleanCallbackData(data), "|")
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("malformed adjust reference %q", data)
	}
	kind := domain.BalanceKind(parts[0])
	if kind != domain.BalanceHold && kind != domain.BalanceMain {
		return "", 0, fmt.Errorf("malformed adjust reference %q", data)
	}
	targetID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("malformed adjust reference %q: %w", data, err)
	}
	return kind, targetID, nil
}

// twoFAChoiceMarkup builds the 2FA choice keyboard shown after
// credentials are gathered. Old submissions get the plain labels, fresh
// ones show the prices.
func twoFAChoiceMarkup(old bool, settings domain.Settings) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if old {
		markup.Inline(
			markup.Row(markup.Data("🔒 Add 2FA key", btnEnable2FA.Unique)),
			markup.Row(markup.Data("✔️ Done (without 2FA)", btnCompleteReg.Unique)),
			markup.Row(markup.Data("⊖ Cancel registration", btnGmailCancel.Unique)),
		)
		return markup
	}
	markup.Inline(
		markup.Row(markup.Data(
			fmt.Sprintf("💊 Enable 2FA (%s$)", settings.FreshPrice.StringFixed(2)),
			btnEnable2FA.Unique)),
		markup.Row(markup.Data(
			fmt.Sprintf("💔 Complete (%s$)", settings.CompletePrice.StringFixed(2)),
			btnCompleteReg.Unique)),
		markup.Row(markup.URL("⁉️ How to enable 2FA", settings.HowToLink)),
	)
	return markup
}

// handleGmailDone shows the 2FA choice after the user confirms they
// registered the generated credentials
func (h *Handler) handleGmailDone(c tele.Context) error {
	state := h.GetState(c.Sender().ID)
	if err := c.Edit("How would you like to proceed?", twoFAChoiceMarkup(state.OldAccount, h.ledger.Settings())); err != nil {
		return h.handleEditError(err, c)
	}
	return c.Respond()
}

// handleEnable2FA asks how the 2FA key will be submitted
func (h *Handler) handleEnable2FA(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnSendQR.Text, btnSendQR.Unique)),
		markup.Row(markup.Data(btnTypeKey.Text, btnTypeKey.Unique)),
	)
	text := "📱 How would you like to submit your 2FA authentication key?\n\n" +
		"You can either:\n" +
		"• Send a screenshot/photo of the QR code from Google Authenticator setup\n" +
		"• Type the secret key manually"
	if err := c.Edit(text, markup); err != nil {
		return h.handleEditError(err, c)
	}
	return c.Respond()
}

// handleSendQR switches the dialog to awaiting a QR photo
func (h *Handler) handleSendQR(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	state.State = domain.StateAwaiting2FAPhoto
	h.SetState(userID, state)

	if err := c.Delete(); err != nil {
		h.logger.Debug("failed to delete message", zap.Error(err))
	}
	return c.Send("Upload QR Photo:", backMarkup())
}

// handleTypeKey switches the dialog to awaiting a typed 2FA key
func (h *Handler) handleTypeKey(c tele.Context) error {
	userID := c.Sender().ID

	state := h.GetState(userID)
	state.State = domain.StateAwaiting2FAKey
	h.SetState(userID, state)

	if err := c.Delete(); err != nil {
		h.logger.Debug("failed to delete message", zap.Error(err))
	}
	return c.Send("Type Secret Key:\n\nFormat: Letters and numbers\nExample: f7zq dzen ijik kuwc", backMarkup())
}

// handleCompleteReg finalizes a submission without 2FA
func (h *Handler) handleCompleteReg(c tele.Context) error {
	return h.finalizeSubmission(c, false, "No 2FA")
}

// handleGmailCancel aborts the submission flow
func (h *Handler) handleGmailCancel(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	if err := c.Edit("Cancelled."); err != nil {
		if err := h.handleEditError(err, c); err != nil {
			return err
		}
	}
	return h.handleStart(c)
}

// finalizeSubmission turns the gathered scratch values into an escrowed
// submission and resets the dialog
func (h *Handler) finalizeSubmission(c tele.Context, withTwoFA bool, tfaInfo string) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if state.DraftAddress == "" {
		h.ResetState(userID)
		return c.Send("Nothing in progress. Use the menu to start over.", userMenuMarkup())
	}

	sub := service.Submission{
		Address:   state.DraftAddress,
		Password:  state.DraftPassword,
		Old:       state.OldAccount,
		WithTwoFA: withTwoFA,
		TwoFAInfo: tfaInfo,
	}
	h.ResetState(userID)

	if _, err := h.settlement.Finalize(userID, sub); err != nil {
		h.logger.Error("failed to finalize submission", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send("Something went wrong. Try again later.", userMenuMarkup())
	}

	return c.Send(
		"✅ Your Gmail registration has been successful. The amount has been added to your Hold Balance. "+
			"Your Main Balance will be updated within 24 hours.",
		userMenuMarkup(),
	)
}

// handleReview builds the handler for one reviewer decision button. A
// tap on an already-resolved entry answers the callback without
// touching the ledger.
func (h *Handler) handleReview(outcome domain.Outcome) tele.HandlerFunc {
	return func(c tele.Context) error {
		if !h.isAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Not allowed"})
		}

		userID, entryID, err := parseReviewRef(c.Data())
		if err != nil {
			h.logger.Warn("malformed review callback", zap.String("data", c.Data()))
			return c.Respond(&tele.CallbackResponse{Text: "Malformed review reference"})
		}

		res, err := h.settlement.Resolve(userID, entryID, outcome)
		if errors.Is(err, domain.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Already handled"})
		}
		if err != nil {
			h.logger.Error("failed to resolve entry",
				zap.Int64("user_id", userID),
				zap.String("entry_id", entryID),
				zap.Error(err),
			)
			return c.Respond(&tele.CallbackResponse{Text: "Failed, see logs"})
		}

		var text string
		switch outcome {
		case domain.OutcomeConfirmed:
			text = fmt.Sprintf("✅ Confirmed user %d (Amount: %s)\nGmail: %s",
				userID, res.Entry.Amount.StringFixed(2), res.Entry.Subject)
		case domain.OutcomeRejected:
			text = fmt.Sprintf("❌ Rejected user %d (not registered)\nGmail: %s",
				userID, res.Entry.Subject)
		case domain.OutcomeBlocked:
			text = fmt.Sprintf("❌ Rejected user %d (blocked)\nGmail: %s",
				userID, res.Entry.Subject)
		}

		if err := c.Edit(text); err != nil {
			return h.handleEditError(err, c)
		}
		return c.Respond()
	}
}

// handleAdjustSelect builds the handler for the admin add/remove
// balance buttons
func (h *Handler) handleAdjustSelect(remove bool) tele.HandlerFunc {
	return func(c tele.Context) error {
		if !h.isAdmin(c.Sender().ID) {
			return c.Respond(&tele.CallbackResponse{Text: "Not allowed"})
		}

		kind, targetID, err := parseAdjustRef(c.Data())
		if err != nil {
			h.logger.Warn("malformed adjust callback", zap.String("data", c.Data()))
			return c.Respond(&tele.CallbackResponse{Text: "Malformed reference"})
		}

		h.SetState(c.Sender().ID, &domain.StateData{
			State:        domain.StateAwaitingAdminAmount,
			TargetID:     targetID,
			AdminBalance: kind,
			AdminRemove:  remove,
		})

		if err := c.Delete(); err != nil {
			h.logger.Debug("failed to delete message", zap.Error(err))
		}

		kindName := "Hold"
		if kind == domain.BalanceMain {
			kindName = "Main"
		}
		direction := "add to"
		if remove {
			direction = "remove from"
		}
		return c.Send(fmt.Sprintf("Enter amount to %s %s Balance:", direction, kindName))
	}
}

// handleCallback catches callbacks whose Unique did not come through
// and re-dispatches them by cleaned data prefix
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: processing callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	unique := data
	if i := strings.Index(data, "|"); i >= 0 {
		unique = data[:i]
	}

	switch unique {
	case btnGmailDone.Unique:
		return h.handleGmailDone(c)
	case btnGmailCancel.Unique:
		return h.handleGmailCancel(c)
	case btnEnable2FA.Unique:
		return h.handleEnable2FA(c)
	case btnSendQR.Unique:
		return h.handleSendQR(c)
	case btnTypeKey.Unique:
		return h.handleTypeKey(c)
	case btnCompleteReg.Unique:
		return h.handleCompleteReg(c)
	}

	h.logger.Warn("unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleEditError handles errors from c.Edit(): an already-modified
// message is acknowledged quietly, anything else falls back to sending
// a new message
func (h *Handler) handleEditError(err error, c tele.Context) error {
	if err == nil {
		return nil
	}

	if strings.Contains(err.Error(), "message is not modified") {
		return c.Respond()
	}

	h.logger.Warn("failed to edit message",
		zap.Error(err),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond()
}
