package handler

import (
	tele "gopkg.in/telebot.v3"
)

// Reply keyboard labels
const (
	menuRegister = "➕ Register a new Gmail"
	menuBalance  = "💰 Balance"
	menuTransfer = "💸 Balance Transfer"
	menuReferral = "👥 Referral"
	menuOldSell  = "📧 Old Gmail sell"
	menuBuy      = "🛒 Buy Gmail"
	menuSupport  = "🎧 Support"

	menuWithdrawal = "💸 Withdrawal"
	menuBack       = "🔙 Back"
	menuBackToMain = "🔙 Back to Main Menu"
	menuCancel     = "❌ Cancel"

	adminUserinfo      = "👤 Userinfo"
	adminHold          = "🔄 Hold"
	adminMain          = "💰 Main"
	adminStats         = "📊 Stats"
	adminNotification  = "📢 Notification"
	adminPriceControl  = "💰 Price Control"
	adminMinWithdrawal = "💸 Min Withdrawal"
	adminHowTo         = "🔗 How to"
	adminOn            = "🟢 On"
	adminOff           = "🔴 Off"

	adminNotifyAll    = "All Users"
	adminNotifyCustom = "Custom User"

	adminFreshPrice    = "2FA Price"
	adminCompletePrice = "Complete Price"
	adminOldPrice      = "Old Gmail Price"
)

// Inline keyboard buttons
var (
	btnGmailDone = tele.Btn{
		Unique: "gmail_done",
		Text:   "✅ Done",
	}
	btnGmailCancel = tele.Btn{
		Unique: "gmail_cancel",
		Text:   "❌ Cancel",
	}
	btnEnable2FA = tele.Btn{
		Unique: "enable_2fa",
	}
	btnCompleteReg = tele.Btn{
		Unique: "complete_reg",
	}
	btnSendQR = tele.Btn{
		Unique: "send_qr",
		Text:   "📷 Send QR",
	}
	btnTypeKey = tele.Btn{
		Unique: "type_key",
		Text:   "⌨️ Manual",
	}
	btnAdjustAdd = tele.Btn{
		Unique: "adj_add",
		Text:   "➕ Add",
	}
	btnAdjustRemove = tele.Btn{
		Unique: "adj_rem",
		Text:   "➖ Remove",
	}
)

func replyRows(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var teleRows []tele.Row
	for _, labels := range rows {
		row := tele.Row{}
		for _, label := range labels {
			row = append(row, markup.Text(label))
		}
		teleRows = append(teleRows, row)
	}
	markup.Reply(teleRows...)
	return markup
}

// userMenuMarkup returns the main menu keyboard for regular users
func userMenuMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{menuRegister, menuBalance},
		[]string{menuTransfer, menuReferral},
		[]string{menuOldSell, menuBuy},
		[]string{menuSupport},
	)
}

// adminMenuMarkup returns the main menu keyboard for the admin
func adminMenuMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{adminUserinfo, adminHold, adminMain},
		[]string{adminStats, adminNotification, adminPriceControl},
		[]string{adminMinWithdrawal, adminHowTo, adminOn},
		[]string{adminOff, menuSupport},
	)
}

func backMarkup() *tele.ReplyMarkup {
	return replyRows([]string{menuBack})
}

func cancelMarkup() *tele.ReplyMarkup {
	return replyRows([]string{menuCancel})
}

func balanceMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{menuWithdrawal},
		[]string{menuBackToMain},
	)
}

func withdrawalMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{"USDT", "TON", "ETH"},
		[]string{menuBack},
	)
}

func notificationMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{adminNotifyAll, adminNotifyCustom},
		[]string{menuBack},
	)
}

func priceControlMarkup() *tele.ReplyMarkup {
	return replyRows(
		[]string{adminFreshPrice, adminCompletePrice, adminOldPrice},
		[]string{menuBack},
	)
}
