package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mailmarket/internal/domain"
	"mailmarket/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages: global back/cancel first, then
// menu commands, then the current dialog state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	// Back and cancel short-circuit to idle regardless of state.
	if text == menuBack || text == menuBackToMain || text == menuCancel {
		h.ResetState(userID)
		return h.handleStart(c)
	}

	if !h.isAdmin(userID) && !h.ledger.Enabled() {
		return c.Send("🔴 Bot is currently OFF!")
	}

	h.ledger.EnsureAccount(userID)

	if handled, err := h.dispatchMenu(c, userID, text); handled {
		return err
	}
	return h.dispatchState(c, userID, text)
}

// dispatchMenu handles menu button presses. Menu commands take
// priority over whatever input the active dialog state is awaiting.
func (h *Handler) dispatchMenu(c tele.Context, userID int64, text string) (bool, error) {
	switch text {
	case menuBalance:
		return true, h.showBalance(c, userID)
	case menuRegister:
		return true, h.startFreshRegistration(c, userID)
	case menuOldSell:
		return true, h.startOldSell(c, userID)
	case menuWithdrawal:
		settings := h.ledger.Settings()
		return true, c.Send(
			fmt.Sprintf("Min Withdrawal: %s USDT\nSelect Currency:", settings.MinWithdrawal.StringFixed(2)),
			withdrawalMarkup(),
		)
	case menuTransfer:
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingTransferTarget})
		return true, c.Send("💸 Balance Transfer\nEnter receiver Chat ID:", cancelMarkup())
	case menuReferral:
		return true, h.showReferral(c, userID)
	case menuBuy:
		return true, c.Send(buyInfoText)
	case menuSupport:
		return true, c.Send("🎧 Contact Support:\n@Deploper_Gmail_Ofc_store", userMenuMarkup())
	}

	if h.isAdmin(userID) {
		return h.dispatchAdminMenu(c, userID, text)
	}
	return false, nil
}

// dispatchState interprets the input according to the active dialog
// state
func (h *Handler) dispatchState(c tele.Context, userID int64, text string) error {
	state := h.GetState(userID)

	switch state.State {
	case domain.StateAwaitingAddress:
		state.DraftAddress = strings.ToLower(strings.TrimSpace(text))
		state.State = domain.StateAwaitingPassword
		h.SetState(userID, state)
		return c.Send("Enter Gmail password:")

	case domain.StateAwaitingPassword:
		if h.ledger.IsSold(state.DraftAddress) {
			h.ResetState(userID)
			if err := c.Send("❌ Already sold!"); err != nil {
				return err
			}
			return h.handleStart(c)
		}
		state.DraftPassword = text
		state.State = domain.StateIdle
		h.SetState(userID, state)
		return c.Send("How would you like to proceed?", twoFAChoiceMarkup(true, h.ledger.Settings()))

	case domain.StateAwaiting2FAKey:
		return h.finalizeSubmission(c, true, "Key: "+text)

	case domain.StateAwaitingTransferTarget:
		receiverID, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			// Invalid id: stay in this state, user retries.
			return c.Send("Invalid ID. Please enter a numerical Chat ID.")
		}
		state.TargetID = receiverID
		state.State = domain.StateAwaitingTransferAmount
		h.SetState(userID, state)
		return c.Send("Enter amount to transfer:")

	case domain.StateAwaitingTransferAmount:
		return h.completeTransfer(c, userID, state, text)

	case domain.StateAwaitingAdminTarget:
		return h.adminSelectTarget(c, userID, state, text)

	case domain.StateAwaitingAdminAmount:
		return h.adminApplyAdjustment(c, userID, state, text)

	case domain.StateAwaitingUserInfoTarget:
		return h.adminShowUserInfo(c, userID, text)

	case domain.StateAwaitingBroadcastText:
		count := h.broadcast.BroadcastAll(text)
		h.ResetState(userID)
		if err := c.Send(fmt.Sprintf("✅ Sent to %d users.", count)); err != nil {
			return err
		}
		return h.handleStart(c)

	case domain.StateAwaitingNotifyTarget:
		targetID, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return c.Send("Invalid ID. Please enter a numerical Chat ID.")
		}
		state.TargetID = targetID
		state.State = domain.StateAwaitingNotifyText
		h.SetState(userID, state)
		return c.Send("Enter message for this user:")

	case domain.StateAwaitingNotifyText:
		h.ResetState(userID)
		if err := h.broadcast.NotifyUser(state.TargetID, text); err != nil {
			if err := c.Send("❌ Failed to send."); err != nil {
				return err
			}
		} else if err := c.Send("✅ Message sent."); err != nil {
			return err
		}
		return h.handleStart(c)

	case domain.StateAwaitingPriceEdit:
		return h.adminApplyPrice(c, userID, state, text)

	case domain.StateAwaitingLinkEdit:
		h.ledger.SetHowToLink(text)
		h.saver.SaveNow()
		h.ResetState(userID)
		if err := c.Send("Updated!"); err != nil {
			return err
		}
		return h.handleStart(c)

	default:
		// Idle with no matching menu command: nothing to do.
		return nil
	}
}

// showBalance shows the user's hold and main balances
func (h *Handler) showBalance(c tele.Context, userID int64) error {
	hold, main := h.ledger.Balances(userID)
	text := fmt.Sprintf(
		"💰 Your Balances:\n\n💰 Hold Balance: %s USDT\n💰 Main Balance: %s USDT\n\n👤 Your Chat ID: <code>%d</code>",
		hold.StringFixed(2), main.StringFixed(2), userID,
	)
	return c.Send(text, balanceMarkup(), tele.ModeHTML)
}

// startFreshRegistration generates registration credentials and shows
// them with the Done/Cancel choice
func (h *Handler) startFreshRegistration(c tele.Context, userID int64) error {
	creds := service.GenerateCredentials()
	settings := h.ledger.Settings()

	h.SetState(userID, &domain.StateData{
		State:         domain.StateIdle,
		DraftAddress:  creds.Address,
		DraftPassword: creds.Password,
	})

	text := fmt.Sprintf(
		"Register a Gmail account using the specified data and get %s$ USDT\n\n"+
			"First name: %s\nLast name: %s\nGmail address. 👉 <code>%s</code>\nPassword👉 <code>%s</code>\n\n"+
			"📌 Be sure to use the specified password",
		settings.FreshPrice.StringFixed(2),
		creds.FirstName, creds.LastName, creds.Address, creds.Password,
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data(btnGmailDone.Text, btnGmailDone.Unique)),
		markup.Row(markup.Data(btnGmailCancel.Text, btnGmailCancel.Unique)),
		markup.Row(markup.URL("📢 Channel", settings.HowToLink)),
	)
	return c.Send(text, markup, tele.ModeHTML)
}

// startOldSell begins the previously-owned account submission flow
func (h *Handler) startOldSell(c tele.Context, userID int64) error {
	settings := h.ledger.Settings()
	h.SetState(userID, &domain.StateData{
		State:      domain.StateAwaitingAddress,
		OldAccount: true,
	})
	return c.Send(
		fmt.Sprintf("📧 Sell Your Gmail Account\n💰 Price: %s USDT\n\nEnter Gmail address:", settings.OldPrice.StringFixed(2)),
		cancelMarkup(),
	)
}

// completeTransfer parses the amount and executes the transfer
func (h *Handler) completeTransfer(c tele.Context, userID int64, state *domain.StateData, text string) error {
	amount, err := decimal.NewFromString(text)
	if err != nil {
		// Invalid amount: stay in this state, user retries.
		return c.Send("Invalid amount. Please enter a number.")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return c.Send("Amount must be greater than 0.")
	}

	err = h.ledger.Transfer(userID, state.TargetID, amount)
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		if err := c.Send("❌ Insufficient Main Balance!"); err != nil {
			return err
		}
	case errors.Is(err, domain.ErrInvalidTarget):
		if err := c.Send("❌ You cannot transfer to yourself."); err != nil {
			return err
		}
	case err != nil:
		h.logger.Error("transfer failed", zap.Error(err), zap.Int64("user_id", userID))
		if err := c.Send("Something went wrong. Try again later."); err != nil {
			return err
		}
	default:
		h.saver.SaveNow()
		if err := c.Send(fmt.Sprintf("✅ Successfully transferred %s USDT to %d", amount.StringFixed(2), state.TargetID)); err != nil {
			return err
		}
		// Best-effort receiver notice.
		if _, err := h.bot.Send(tele.ChatID(state.TargetID),
			fmt.Sprintf("💰 You received %s USDT from %d", amount.StringFixed(2), userID)); err != nil {
			h.logger.Debug("transfer notice delivery failed",
				zap.Int64("receiver_id", state.TargetID),
				zap.Error(err),
			)
		}
	}

	h.ResetState(userID)
	return h.handleStart(c)
}

// showReferral shows the user's referral link and statistics
func (h *Handler) showReferral(c tele.Context, userID int64) error {
	link := fmt.Sprintf("https://t.me/%s?start=%d", h.bot.Me.Username, userID)
	invited, income := h.ledger.ReferralStats(userID)
	income24h := h.ledger.Rolling24hIncome(userID)

	text := fmt.Sprintf(
		"🤝 Join Our Referral Program\n\n"+
			"Invite your friends and earn money! If your referred user successfully sells a Gmail account, "+
			"you will receive a %s USDT bonus directly to your Main Balance.\n\n"+
			"🔗 Your Unique Referral Link:\n%s\n\n"+
			"📊 Your Statistics:\n"+
			"• Total Friends Invited: %d\n"+
			"• Total Earned from Referrals: %s USDT\n"+
			"• Earned in Last 24 Hours: %s USDT\n\n"+
			"Start sharing your link now and build your passive income!",
		ledgerCommission(), link, invited, income.StringFixed(2), income24h.StringFixed(2),
	)
	return c.Send(text)
}

const buyInfoText = "🛒 Buy Gmail Service\n\n" +
	"Our automated buying system is currently unavailable. However, if you wish to purchase accounts, " +
	"please message us directly:\n\n" +
	"👤 Support: @Deploper_Gmail_Ofc_store\n\n" +
	"💰 Pricing:\n" +
	"• 1+ Year Old Account: 0.35 USDT\n" +
	"• 2+ Year Old Account: 0.50 USDT\n" +
	"• 5+ Year Old Account: 1.00 USDT\n\n" +
	"✨ Custom Orders: You can also request accounts with specific ages or requirements as per your needs!\n\n" +
	"Please send your requirements to our support handle above."
