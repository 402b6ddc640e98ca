package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bookingbot/internal/models"
)

// Notifier delivers booking summaries outside the primary operation.
// Implementations never return errors: delivery problems are logged and
// swallowed so they cannot roll back or fail a ledger write.
type Notifier interface {
	// BookingCreated notifies the administrators about a new booking.
	BookingCreated(ctx context.Context, detail models.BookingDetail)
	// BookingStatusChanged notifies the client that an administrator
	// confirmed or rejected their booking.
	BookingStatusChanged(ctx context.Context, detail models.BookingDetail)
}

// TelegramNotifier sends notifications through the bot API.
type TelegramNotifier struct {
	api      *tgbotapi.BotAPI
	adminIDs []int64
	logger   *zap.Logger
}

// NewTelegramNotifier creates a notifier for the configured administrators
func NewTelegramNotifier(api *tgbotapi.BotAPI, adminIDs []int64, logger *zap.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		api:      api,
		adminIDs: adminIDs,
		logger:   logger,
	}
}

// adminBookingSummary formats the new-booking notification for administrators
func adminBookingSummary(detail models.BookingDetail) string {
	return fmt.Sprintf(`🎭 NEW BOOKING AT THE IGRA THEATRE WORKSHOP!

📋 Booking details:
ID: #%d
Branch: %s
Address: %s

👤 Client:
Name: %s
Phone: %s
Telegram ID: %d

🎭 Service:
%s

⏰ Booked at:
%s`,
		detail.ID, detail.BranchName, detail.BranchAddress,
		detail.ClientName, detail.ClientPhone, detail.ClientExternalID,
		detail.ServiceType,
		detail.CreatedAt.Format("15:04 02.01.2006"))
}

// clientStatusMessage formats the decision notification for the client.
// Returns an empty string for statuses that carry no notification.
func clientStatusMessage(detail models.BookingDetail) string {
	switch detail.Status {
	case models.StatusConfirmed:
		return fmt.Sprintf(`✅ Your booking #%d is confirmed!

Service: %s
We look forward to seeing you!

📞 Contact phone:
+7 (967) 655-50-45`, detail.ID, detail.ServiceType)
	case models.StatusRejected:
		return fmt.Sprintf(`❌ Your booking #%d was declined

For questions please call:
+7 (967) 655-50-45`, detail.ID)
	}
	return ""
}

// BookingCreated sends the new-booking summary to every administrator
func (n *TelegramNotifier) BookingCreated(ctx context.Context, detail models.BookingDetail) {
	text := adminBookingSummary(detail)

	markup := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Details and actions", Action{Kind: ActionAdminDetails, ID: detail.ID}.Encode()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("💬 Message the client", fmt.Sprintf("tg://user?id=%d", detail.ClientExternalID)),
		),
	)

	for _, adminID := range n.adminIDs {
		msg := tgbotapi.NewMessage(adminID, text)
		msg.ReplyMarkup = markup
		n.send(msg, adminID)
	}
}

// BookingStatusChanged tells the client the outcome of the admin decision
func (n *TelegramNotifier) BookingStatusChanged(ctx context.Context, detail models.BookingDetail) {
	text := clientStatusMessage(detail)
	if text == "" {
		return
	}

	n.send(tgbotapi.NewMessage(detail.ClientExternalID, text), detail.ClientExternalID)
}

// send delivers one message, logging failures. A recipient who blocked the
// bot must not fail the operation that triggered the notification.
func (n *TelegramNotifier) send(msg tgbotapi.MessageConfig, chatID int64) {
	if n.api == nil {
		return // For testing
	}

	if _, err := n.api.Send(msg); err != nil {
		n.logger.Warn("Failed to deliver notification",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
