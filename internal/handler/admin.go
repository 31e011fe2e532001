package handler

import (
	"fmt"
	"strconv"
	"strings"

	"mailmarket/internal/domain"
	"mailmarket/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// dispatchAdminMenu handles admin-only menu button presses
func (h *Handler) dispatchAdminMenu(c tele.Context, userID int64, text string) (bool, error) {
	switch text {
	case adminHold:
		h.SetState(userID, &domain.StateData{
			State:        domain.StateAwaitingAdminTarget,
			AdminBalance: domain.BalanceHold,
		})
		return true, c.Send("Enter User ID to manage Hold Balance:", backMarkup())

	case adminMain:
		h.SetState(userID, &domain.StateData{
			State:        domain.StateAwaitingAdminTarget,
			AdminBalance: domain.BalanceMain,
		})
		return true, c.Send("Enter User ID to manage Main Balance:", backMarkup())

	case adminUserinfo:
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingUserInfoTarget})
		return true, c.Send("Enter User Chat ID:", backMarkup())

	case adminStats:
		return true, c.Send(formatStats(h.ledger.Stats()))

	case adminNotification:
		return true, c.Send("Choose notification type:", notificationMarkup())

	case adminNotifyAll:
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingBroadcastText})
		return true, c.Send("Enter message for all users:", backMarkup())

	case adminNotifyCustom:
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingNotifyTarget})
		return true, c.Send("Enter User Chat ID:", backMarkup())

	case adminPriceControl:
		return true, c.Send("Choose price to edit:", priceControlMarkup())

	case adminFreshPrice:
		h.SetState(userID, &domain.StateData{
			State:    domain.StateAwaitingPriceEdit,
			PriceKey: domain.PriceFresh,
		})
		return true, c.Send("Enter 2FA Price:", backMarkup())

	case adminCompletePrice:
		h.SetState(userID, &domain.StateData{
			State:    domain.StateAwaitingPriceEdit,
			PriceKey: domain.PriceComplete,
		})
		return true, c.Send("Enter Complete Price:", backMarkup())

	case adminOldPrice:
		h.SetState(userID, &domain.StateData{
			State:    domain.StateAwaitingPriceEdit,
			PriceKey: domain.PriceOld,
		})
		return true, c.Send("Enter Old Gmail Price:", backMarkup())

	case adminMinWithdrawal:
		h.SetState(userID, &domain.StateData{
			State:    domain.StateAwaitingPriceEdit,
			PriceKey: domain.PriceMinWithdrawal,
		})
		return true, c.Send("Enter Min Withdrawal:", backMarkup())

	case adminHowTo:
		h.SetState(userID, &domain.StateData{State: domain.StateAwaitingLinkEdit})
		return true, c.Send("Enter new How-to link:", backMarkup())

	case adminOn:
		h.ledger.SetEnabled(true)
		h.saver.SaveNow()
		return true, c.Send("✅ Bot is now ON")

	case adminOff:
		h.ledger.SetEnabled(false)
		h.saver.SaveNow()
		return true, c.Send("🔴 Bot is now OFF")
	}
	return false, nil
}

// adminSelectTarget validates the target user and shows the add/remove
// choice for the selected balance
func (h *Handler) adminSelectTarget(c tele.Context, userID int64, state *domain.StateData, text string) error {
	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil || !h.ledger.AccountExists(targetID) {
		h.ResetState(userID)
		if err := c.Send("User not found."); err != nil {
			return err
		}
		return h.handleStart(c)
	}

	hold, main := h.ledger.Balances(targetID)
	h.ResetState(userID)

	ref := fmt.Sprintf("%s|%d", state.AdminBalance, targetID)
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data(btnAdjustAdd.Text, btnAdjustAdd.Unique, ref),
		markup.Data(btnAdjustRemove.Text, btnAdjustRemove.Unique, ref),
	))
	return c.Send(
		fmt.Sprintf("👤 User: %d\n💰 Hold: %s\n💰 Main: %s",
			targetID, hold.StringFixed(2), main.StringFixed(2)),
		markup,
	)
}

// adminApplyAdjustment parses the amount and applies the balance
// adjustment selected earlier
func (h *Handler) adminApplyAdjustment(c tele.Context, userID int64, state *domain.StateData, text string) error {
	h.ResetState(userID)

	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		// Parse failure aborts the whole flow.
		if err := c.Send("Invalid amount."); err != nil {
			return err
		}
		return h.handleStart(c)
	}

	delta := amount
	verb := "Added"
	preposition := "to"
	if state.AdminRemove {
		delta = amount.Neg()
		verb = "Removed"
		preposition = "from"
	}

	if _, err := h.ledger.Adjust(state.TargetID, state.AdminBalance, delta); err != nil {
		h.logger.Error("adjustment failed", zap.Error(err), zap.Int64("target_id", state.TargetID))
		if err := c.Send("Something went wrong. Try again later."); err != nil {
			return err
		}
		return h.handleStart(c)
	}
	h.saver.SaveNow()

	kindName := "Hold"
	if state.AdminBalance == domain.BalanceMain {
		kindName = "Main"
	}

	// Best-effort notice to the affected user.
	changeType := strings.ToLower(verb)
	if _, err := h.bot.Send(tele.ChatID(state.TargetID), fmt.Sprintf(
		"🔔 Balance Update\n\nAdmin has %s %s USDT %s your %s Balance.",
		changeType, amount.StringFixed(2), preposition, kindName)); err != nil {
		h.logger.Debug("adjustment notice delivery failed",
			zap.Int64("target_id", state.TargetID),
			zap.Error(err),
		)
	}

	if err := c.Send(fmt.Sprintf("✅ %s %s %s %s Balance of %d",
		verb, amount.StringFixed(2), preposition, kindName, state.TargetID)); err != nil {
		return err
	}
	return h.handleStart(c)
}

// adminShowUserInfo prints one user's balances, counters and history
func (h *Handler) adminShowUserInfo(c tele.Context, userID int64, text string) error {
	h.ResetState(userID)

	targetID, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		if err := c.Send("User not found."); err != nil {
			return err
		}
		return h.handleStart(c)
	}

	info, ierr := h.ledger.UserInfo(targetID)
	if ierr != nil {
		if err := c.Send("User not found."); err != nil {
			return err
		}
		return h.handleStart(c)
	}

	if err := c.Send(formatUserInfo(targetID, info)); err != nil {
		return err
	}
	return h.handleStart(c)
}

// adminApplyPrice parses and stores a price edit
func (h *Handler) adminApplyPrice(c tele.Context, userID int64, state *domain.StateData, text string) error {
	h.ResetState(userID)

	value, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		if err := c.Send("Invalid"); err != nil {
			return err
		}
		return h.handleStart(c)
	}

	if err := h.ledger.SetPrice(state.PriceKey, value); err != nil {
		if err := c.Send("Invalid"); err != nil {
			return err
		}
		return h.handleStart(c)
	}
	h.saver.SaveNow()

	if err := c.Send("Updated!"); err != nil {
		return err
	}
	return h.handleStart(c)
}

// formatStats renders the global statistics screen
func formatStats(s ledger.Stats) string {
	return fmt.Sprintf(
		"📊 Global Statistics\n\n"+
			"✅ Total Confirmed: %d\n"+
			"🚫 Total Blocked: %d\n"+
			"❌ Total Rejected: %d\n\n"+
			"👥 Total Users: %d",
		s.Confirmed, s.Blocked, s.Rejected, s.Users,
	)
}

// formatUserInfo renders the admin user-info screen. Only the last ten
// confirmed subjects are listed.
func formatUserInfo(targetID int64, info *ledger.UserInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👤 User Info: %d\n\n", targetID)
	fmt.Fprintf(&b, "💰 Main Balance: %s USDT\n", info.Main.StringFixed(2))
	fmt.Fprintf(&b, "💰 Hold Balance: %s USDT\n\n", info.Hold.StringFixed(2))
	fmt.Fprintf(&b, "✅ Confirmed: %d\n", info.ConfirmedCount)
	fmt.Fprintf(&b, "🚫 Blocked: %d\n", info.BlockedCount)
	fmt.Fprintf(&b, "❌ Rejected: %d\n\n", info.RejectedCount)

	fmt.Fprintf(&b, "⏳ Pending Requests: %d\n", len(info.Pending))
	for _, entry := range info.Pending {
		fmt.Fprintf(&b, "• %s\n", entry.Subject)
	}

	if len(info.ConfirmedSubjects) > 0 {
		b.WriteString("\n📧 Confirmed Gmails:\n")
		subjects := info.ConfirmedSubjects
		if len(subjects) > 10 {
			subjects = subjects[len(subjects)-10:]
		}
		for _, subject := range subjects {
			fmt.Fprintf(&b, "• %s\n", subject)
		}
	}
	return b.String()
}
