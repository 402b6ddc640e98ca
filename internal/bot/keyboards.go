package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"bookingbot/internal/models"
)

// Main menu button labels. The reply keyboard sends these back as plain text.
const (
	menuBook       = "📝 Book a class"
	menuBranches   = "🏢 Our branches"
	menuContacts   = "📞 Contacts"
	menuAbout      = "ℹ️ About us"
	menuMyBookings = "👤 My bookings"
)

// mainKeyboard builds the persistent reply keyboard shown after /start
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuBook),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuBranches),
			tgbotapi.NewKeyboardButton(menuContacts),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(menuAbout),
			tgbotapi.NewKeyboardButton(menuMyBookings),
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

// branchKeyboard builds the inline branch selection keyboard
func branchKeyboard(branches []models.Branch) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, branch := range branches {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(branch.Name, Action{Kind: ActionSelectBranch, ID: branch.ID}.Encode()),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", Action{Kind: ActionCancel}.Encode()),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// confirmKeyboard builds the accept/edit/cancel keyboard for the summary step
func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, all correct", Action{Kind: ActionConfirmAccept}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit", Action{Kind: ActionConfirmEdit}.Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", Action{Kind: ActionConfirmCancel}.Encode()),
		),
	)
}

// adminPanelKeyboard builds the /admin panel keyboard
func adminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", Action{Kind: ActionAdminStats}.Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Recent bookings", Action{Kind: ActionAdminBack}.Encode()),
		),
	)
}

// adminDetailKeyboard builds the confirm/reject/back keyboard for one booking
func adminDetailKeyboard(bookingID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", Action{Kind: ActionAdminConfirm, ID: bookingID}.Encode()),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", Action{Kind: ActionAdminReject, ID: bookingID}.Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back to list", Action{Kind: ActionAdminBack}.Encode()),
		),
	)
}

// adminBackKeyboard builds a single back button shown after a decision
func adminBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", Action{Kind: ActionAdminBack}.Encode()),
		),
	)
}
