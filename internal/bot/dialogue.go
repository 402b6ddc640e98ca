package bot

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bookingbot/internal/models"
)

// minNameLen is the minimum accepted length of a trimmed full name.
const minNameLen = 5

// minPhoneDigits is the minimum number of digits a phone number must contain.
const minPhoneDigits = 10

// validName reports whether the trimmed name is long enough
func validName(name string) bool {
	return len([]rune(strings.TrimSpace(name))) >= minNameLen
}

// validPhone requires at least 10 digits after stripping non-digit characters
func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// startBooking begins the dialogue by rendering the branch selection keyboard
func (b *Bot) startBooking(ctx context.Context, message *tgbotapi.Message) {
	branches, err := b.db.ListActiveBranches(ctx)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Sorry, something went wrong. Please try again later.")
		b.sendMessage(msg)
		return
	}

	if len(branches) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "No branches are open for booking right now.")
		b.sendMessage(msg)
		return
	}

	b.sessions.Put(message.From.ID, &Draft{Step: StepChoosingBranch})

	msg := tgbotapi.NewMessage(message.Chat.ID, "🏢 Choose a branch:\n\nWhich branch would you like to book a class at?")
	msg.ReplyMarkup = branchKeyboard(branches)
	b.sendMessage(msg)
}

// handleBranchSelection validates the chosen branch and moves on to name entry.
// An unknown or inactive branch leaves the dialogue where it was.
func (b *Bot) handleBranchSelection(ctx context.Context, query *tgbotapi.CallbackQuery, branchID int64) {
	userID := query.From.ID

	branch, err := b.db.GetBranch(ctx, branchID)
	if err != nil || !branch.IsActive {
		b.alertCallback(query.ID, "❌ Branch not found")
		return
	}

	b.sessions.Put(userID, &Draft{
		Step:     StepEnteringName,
		BranchID: branch.ID,
	})

	text := fmt.Sprintf(`✅ Branch selected: %s
📍 Address: %s

👤 Now enter your full name:
(For example: Ivanov Ivan Ivanovich)`, branch.Name, branch.Address)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, text, nil)
}

// handleDialogueMessage routes a free-text message to the current dialogue step
func (b *Bot) handleDialogueMessage(ctx context.Context, message *tgbotapi.Message, draft *Draft) {
	switch draft.Step {
	case StepChoosingBranch:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please pick a branch with the buttons above, or /cancel.")
		b.sendMessage(msg)
	case StepEnteringName:
		b.handleNameInput(message, draft)
	case StepEnteringPhone:
		b.handlePhoneInput(ctx, message, draft)
	case StepConfirming:
		msg := tgbotapi.NewMessage(message.Chat.ID, "Please use the buttons above to confirm, edit or cancel.")
		b.sendMessage(msg)
	}
}

// handleNameInput validates the name and advances to phone entry
func (b *Bot) handleNameInput(message *tgbotapi.Message, draft *Draft) {
	name := strings.TrimSpace(message.Text)

	if !validName(name) {
		msg := tgbotapi.NewMessage(message.Chat.ID,
			fmt.Sprintf("❌ Please enter your full name (at least %d characters):", minNameLen))
		b.sendMessage(msg)
		return
	}

	draft.Name = name
	draft.Step = StepEnteringPhone
	b.sessions.Put(message.From.ID, draft)

	text := fmt.Sprintf(`👤 Name: %s

📞 Now enter your phone number:
(For example: +79161234567 or 89161234567)`, name)
	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handlePhoneInput validates the phone and renders the confirmation summary
func (b *Bot) handlePhoneInput(ctx context.Context, message *tgbotapi.Message, draft *Draft) {
	phone := strings.TrimSpace(message.Text)

	if !validPhone(phone) {
		msg := tgbotapi.NewMessage(message.Chat.ID, "❌ Invalid phone format. Please enter it again:")
		b.sendMessage(msg)
		return
	}

	draft.Phone = phone
	draft.Step = StepConfirming
	b.sessions.Put(message.From.ID, draft)

	branchName := ""
	branchAddress := ""
	if branch, err := b.db.GetBranch(ctx, draft.BranchID); err == nil {
		branchName = branch.Name
		branchAddress = branch.Address
	}

	text := fmt.Sprintf(`✅ BOOKING CONFIRMATION

Branch: %s
Address: %s
Name: %s
Phone: %s
Service: %s

Is everything correct?`, branchName, branchAddress, draft.Name, draft.Phone, ServiceLabel)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = confirmKeyboard()
	b.sendMessage(msg)
}

// handleDialogueCancel discards the draft at any step
func (b *Bot) handleDialogueCancel(query *tgbotapi.CallbackQuery) {
	b.sessions.Remove(query.From.ID)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, "❌ Booking cancelled", nil)
}

// handleDialogueEdit discards the collected data and re-renders the branch list
func (b *Bot) handleDialogueEdit(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	branches, err := b.db.ListActiveBranches(ctx)
	if err != nil {
		b.alertCallback(query.ID, "Sorry, something went wrong. Please try again.")
		return
	}

	b.sessions.Put(userID, &Draft{Step: StepChoosingBranch})

	markup := branchKeyboard(branches)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, "🏢 Choose a branch:", &markup)
}

// handleDialogueAccept commits the booking. On persistence failure the draft
// is kept so the user can retry without re-entering anything.
func (b *Bot) handleDialogueAccept(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	draft, ok := b.sessions.Get(userID)
	if !ok || draft.Step != StepConfirming {
		b.alertCallback(query.ID, "This booking is no longer active. Start again with the menu.")
		return
	}

	booking, err := b.db.CommitBooking(ctx, userID, draft.Name, draft.Phone, draft.BranchID, ServiceLabel, defaultNotes)
	if err != nil {
		b.logger.Error("Failed to commit booking",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("branch_id", draft.BranchID),
		)
		msg := tgbotapi.NewMessage(query.Message.Chat.ID,
			"😔 Could not save your booking right now. Please press the confirm button again in a moment.")
		b.sendMessage(msg)
		return
	}

	b.sessions.Remove(userID)

	detail := models.BookingDetail{
		Booking:          booking,
		ClientName:       draft.Name,
		ClientPhone:      draft.Phone,
		ClientExternalID: userID,
	}
	if branch, err := b.db.GetBranch(ctx, draft.BranchID); err == nil {
		detail.BranchName = branch.Name
		detail.BranchAddress = branch.Address
		detail.BranchPhone = branch.Phone
	}

	text := fmt.Sprintf(`🎉 BOOKING CREATED!

Your booking #%d at the IGRA Theatre Workshop has been received!

📋 Details:
🏢 Branch: %s
📍 Address: %s
👤 Name: %s
📞 Phone: %s
🎭 Service: %s

We will contact you shortly to confirm!

📞 Contact phone:
+7 (967) 655-50-45`,
		booking.ID, detail.BranchName, detail.BranchAddress, draft.Name, draft.Phone, ServiceLabel)
	b.editMessage(query.Message.Chat.ID, query.Message.MessageID, text, nil)

	// Fire-and-forget relative to the ledger write
	b.notifier.BookingCreated(ctx, detail)
}
