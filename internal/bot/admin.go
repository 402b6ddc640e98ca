package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bookingbot/internal/models"
	"bookingbot/internal/storage"
)

func (b *Bot) isAdmin(userID int64) bool {
	return b.admins[userID]
}

// handleAdminPanel shows the administrator panel
func (b *Bot) handleAdminPanel(message *tgbotapi.Message) {
	if !b.isAdmin(message.From.ID) {
		msg := tgbotapi.NewMessage(message.Chat.ID, "⛔ Access denied")
		b.sendMessage(msg)
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "🔐 ADMINISTRATOR PANEL\n\nChoose an action:")
	msg.ReplyMarkup = adminPanelKeyboard()
	b.sendMessage(msg)
}

// handleLast shows the last 10 bookings
func (b *Bot) handleLast(ctx context.Context, message *tgbotapi.Message) {
	if !b.isAdmin(message.From.ID) {
		msg := tgbotapi.NewMessage(message.Chat.ID, "⛔ Access denied")
		b.sendMessage(msg)
		return
	}

	bookings, err := b.db.ListRecentBookings(ctx, 10)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Failed to load bookings.")
		b.sendMessage(msg)
		return
	}

	if len(bookings) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "📭 No bookings yet")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("📋 LAST 10 BOOKINGS:\n\n")
	for _, booking := range bookings {
		text.WriteString(fmt.Sprintf("#%d • %s\n", booking.ID, booking.CreatedAt.Format("15:04 02.01")))
		text.WriteString("👤 " + booking.ClientName + "\n")
		text.WriteString("📞 " + booking.ClientPhone + "\n")
		text.WriteString("🏢 " + booking.BranchName + "\n")
		text.WriteString("🎭 " + booking.ServiceType + "\n")
		text.WriteString("──────────────\n")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	b.sendMessage(msg)
}

// handleAdminAction gates and dispatches admin callback buttons
func (b *Bot) handleAdminAction(ctx context.Context, query *tgbotapi.CallbackQuery, action Action) {
	if !b.isAdmin(query.From.ID) {
		b.logger.Info("Unauthorized admin action",
			zap.Int64("user_id", query.From.ID),
			zap.String("callback_data", query.Data),
		)
		b.alertCallback(query.ID, "⛔ Access denied")
		return
	}

	switch action.Kind {
	case ActionAdminDetails:
		b.handleAdminDetails(ctx, query, action.ID)
	case ActionAdminConfirm:
		b.handleAdminDecision(ctx, query, action.ID, models.StatusConfirmed)
	case ActionAdminReject:
		b.handleAdminDecision(ctx, query, action.ID, models.StatusRejected)
	case ActionAdminBack:
		b.handleAdminRecent(ctx, query)
	case ActionAdminStats:
		b.handleAdminStats(ctx, query)
	}
}

// handleAdminDetails renders the full detail view for one booking
func (b *Bot) handleAdminDetails(ctx context.Context, query *tgbotapi.CallbackQuery, bookingID int64) {
	detail, err := b.db.GetBookingDetail(ctx, bookingID)
	if errors.Is(err, storage.ErrNotFound) {
		b.alertCallback(query.ID, "❌ Booking not found")
		return
	}
	if err != nil {
		b.alertCallback(query.ID, "❌ Failed to load booking")
		return
	}

	text := fmt.Sprintf(`📋 FULL BOOKING DATA #%d

👤 CLIENT:
Name: %s
Phone: %s
Status: %s

🏢 BRANCH:
Name: %s
Address: %s
Phone: %s

🎭 SERVICE:
%s

📝 NOTES:
%s

⏰ BOOKED AT:
%s`,
		detail.ID,
		detail.ClientName, detail.ClientPhone, detail.Status,
		detail.BranchName, detail.BranchAddress, detail.BranchPhone,
		detail.ServiceType,
		detail.Notes,
		detail.CreatedAt.Format("2006-01-02 15:04"))

	markup := adminDetailKeyboard(detail.ID)
	b.answerCallback(query.ID)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, text, &markup)
}

// handleAdminRecent renders the last 5 bookings with per-booking detail buttons
func (b *Bot) handleAdminRecent(ctx context.Context, query *tgbotapi.CallbackQuery) {
	bookings, err := b.db.ListRecentBookings(ctx, 5)
	if err != nil {
		b.alertCallback(query.ID, "❌ Failed to load bookings")
		return
	}

	if len(bookings) == 0 {
		b.answerCallback(query.ID)
		b.editMessage(query.Message.Chat.ID, query.Message.MessageID, "📭 No bookings yet", nil)
		return
	}

	var text strings.Builder
	text.WriteString("📋 RECENT BOOKINGS:\n\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, booking := range bookings {
		text.WriteString(fmt.Sprintf("#%d • %s\n", booking.ID, booking.CreatedAt.Format("15:04")))
		text.WriteString("👤 " + booking.ClientName + "\n")
		text.WriteString("📞 " + booking.ClientPhone + "\n")
		text.WriteString("🏢 " + booking.BranchName + "\n")
		text.WriteString("──────────────\n")

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📋 #%d - %s", booking.ID, truncate(booking.ClientName, 10)),
				Action{Kind: ActionAdminDetails, ID: booking.ID}.Encode(),
			),
		))
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.answerCallback(query.ID)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, text.String(), &markup)
}

// handleAdminDecision transitions a booking out of "new" and notifies the client.
// Re-deciding an already processed booking changes nothing.
func (b *Bot) handleAdminDecision(ctx context.Context, query *tgbotapi.CallbackQuery, bookingID int64, status models.BookingStatus) {
	err := b.db.SetBookingStatus(ctx, bookingID, status)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		b.alertCallback(query.ID, "❌ Booking not found")
		return
	case errors.Is(err, storage.ErrInvalidTransition):
		b.alertCallback(query.ID, fmt.Sprintf("Booking #%d was already processed", bookingID))
		return
	case err != nil:
		b.logger.Error("Failed to update booking status",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
			zap.String("status", string(status)),
		)
		b.alertCallback(query.ID, "❌ Failed to update booking")
		return
	}

	detail, err := b.db.GetBookingDetail(ctx, bookingID)
	if err != nil {
		b.logger.Warn("Booking updated but detail lookup failed",
			zap.Error(err),
			zap.Int64("booking_id", bookingID),
		)
	} else {
		// Fire-and-forget relative to the status update
		b.notifier.BookingStatusChanged(ctx, detail)
	}

	icon := "✅"
	verb := "confirmed"
	if status == models.StatusRejected {
		icon = "❌"
		verb = "rejected"
	}

	b.alertCallback(query.ID, fmt.Sprintf("%s Booking #%d %s", icon, bookingID, verb))

	markup := adminBackKeyboard()
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID,
		fmt.Sprintf("%s Booking #%d %s!\nThe client has been notified.", icon, bookingID, verb), &markup)
}

// handleAdminStats renders aggregate booking statistics
func (b *Bot) handleAdminStats(ctx context.Context, query *tgbotapi.CallbackQuery) {
	stats, err := b.db.Stats(ctx)
	if err != nil {
		b.alertCallback(query.ID, "❌ Failed to load statistics")
		return
	}

	var text strings.Builder
	text.WriteString("📊 IGRA THEATRE WORKSHOP STATISTICS\n\n")
	text.WriteString(fmt.Sprintf("👥 Total clients: %d\n", stats.Clients))
	text.WriteString(fmt.Sprintf("📅 Total bookings: %d\n", stats.Bookings))
	text.WriteString(fmt.Sprintf("🎭 Bookings today: %d\n", stats.BookingsToday))

	if len(stats.ByBranch) > 0 {
		text.WriteString("\n🏢 Branch popularity:\n")
		for _, bc := range stats.ByBranch {
			text.WriteString(fmt.Sprintf("%s: %d bookings\n", bc.BranchName, bc.Count))
		}
	}

	b.answerCallback(query.ID)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, text.String(), nil)
}

func statusIcon(status models.BookingStatus) string {
	switch status {
	case models.StatusConfirmed:
		return "✅"
	case models.StatusNew:
		return "🔄"
	default:
		return "❌"
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
