package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// handleMessage processes a single message
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	// Recover from panics to prevent bot crashes
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleMessage", zap.Any("panic", r))
			msg := tgbotapi.NewMessage(message.Chat.ID, "An error occurred while processing your request. Please try again.")
			b.sendMessage(msg)
		}
	}()

	userID := message.From.ID
	ctx := context.Background()

	if message.IsCommand() {
		// Any command interrupts an ongoing dialogue; /cancel reports it
		if _, ok := b.sessions.Get(userID); ok && message.Command() != "cancel" {
			b.sessions.Remove(userID)
		}

		switch message.Command() {
		case "start":
			b.handleStart(message)
		case "cancel":
			b.handleCancel(message)
		case "admin":
			b.handleAdminPanel(message)
		case "last":
			b.handleLast(ctx, message)
		default:
			msg := tgbotapi.NewMessage(message.Chat.ID, "Unknown command. Use /start to see what I can do.")
			b.sendMessage(msg)
		}
		return
	}

	// Continue an in-progress booking dialogue
	if draft, ok := b.sessions.Get(userID); ok {
		b.handleDialogueMessage(ctx, message, draft)
		return
	}

	// Main menu buttons arrive as plain text
	switch message.Text {
	case menuBook:
		b.startBooking(ctx, message)
	case menuBranches:
		b.handleBranches(ctx, message)
	case menuContacts:
		b.handleContacts(message)
	case menuAbout:
		b.handleAbout(message)
	case menuMyBookings:
		b.handleMyBookings(ctx, message)
	}
}

// handleCallbackQuery processes inline keyboard button clicks
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Recover from panics
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Recovered from panic in handleCallbackQuery", zap.Any("panic", r))
		}
	}()

	ctx := context.Background()
	action := DecodeAction(query.Data)

	switch action.Kind {
	case ActionSelectBranch:
		b.answerCallback(query.ID)
		b.handleBranchSelection(ctx, query, action.ID)
	case ActionCancel, ActionConfirmCancel:
		b.answerCallback(query.ID)
		b.handleDialogueCancel(query)
	case ActionConfirmAccept:
		b.answerCallback(query.ID)
		b.handleDialogueAccept(ctx, query)
	case ActionConfirmEdit:
		b.answerCallback(query.ID)
		b.handleDialogueEdit(ctx, query)
	case ActionAdminDetails, ActionAdminConfirm, ActionAdminReject, ActionAdminBack, ActionAdminStats:
		b.handleAdminAction(ctx, query, action)
	default:
		b.answerCallback(query.ID)
		b.logger.Debug("Ignoring unknown callback payload",
			zap.Int64("user_id", query.From.ID),
			zap.String("callback_data", query.Data),
		)
	}
}
