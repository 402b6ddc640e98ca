package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// sendMessage sends a message, logging delivery failures
func (b *Bot) sendMessage(msg tgbotapi.Chattable) {
	if b.api == nil {
		return // For testing
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", zap.Error(err))
	}
}

// answerCallback acknowledges a callback query to remove the loading state
func (b *Bot) answerCallback(queryID string) {
	if b.api == nil {
		return // For testing
	}

	if _, err := b.api.Request(tgbotapi.NewCallback(queryID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

// alertCallback answers a callback query with a popup alert
func (b *Bot) alertCallback(queryID, text string) {
	if b.api == nil {
		return // For testing
	}

	if _, err := b.api.Request(tgbotapi.NewCallbackWithAlert(queryID, text)); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

// editMessage replaces the text and keyboard of a previously sent message
func (b *Bot) editMessage(chatID int64, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	if b.api == nil {
		return // For testing
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = markup
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("Failed to edit message", zap.Error(err))
	}
}
