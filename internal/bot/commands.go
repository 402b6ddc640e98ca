package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleStart shows the welcome message and the main menu keyboard
func (b *Bot) handleStart(message *tgbotapi.Message) {
	firstName := ""
	if message.From != nil {
		firstName = message.From.FirstName
	}

	text := fmt.Sprintf(`🎭 Hi, %s!

Welcome to the IGRA Theatre Workshop!

✨ What I can do:
• Book you a class at a convenient branch
• Show contacts of all our branches
• Keep your details for follow-up
• Notify the administrator about your booking

Choose an action below 👇`, firstName)

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	msg.ReplyMarkup = mainKeyboard()
	b.sendMessage(msg)
}

// handleCancel discards an in-progress booking dialogue
func (b *Bot) handleCancel(message *tgbotapi.Message) {
	userID := message.From.ID

	if _, ok := b.sessions.Get(userID); !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Nothing to cancel.")
		b.sendMessage(msg)
		return
	}

	b.sessions.Remove(userID)
	msg := tgbotapi.NewMessage(message.Chat.ID, "❌ Booking cancelled")
	b.sendMessage(msg)
}

// handleBranches lists all active branches with addresses and phones
func (b *Bot) handleBranches(ctx context.Context, message *tgbotapi.Message) {
	branches, err := b.db.ListActiveBranches(ctx)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Sorry, something went wrong. Please try again later.")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("🏢 OUR BRANCHES:\n\n")
	for _, branch := range branches {
		text.WriteString(branch.Name + "\n")
		text.WriteString("📍 " + branch.Address + "\n")
		text.WriteString("📞 " + branch.Phone + "\n")
		text.WriteString("──────────────\n")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	b.sendMessage(msg)
}

// handleContacts shows the workshop contact card
func (b *Bot) handleContacts(message *tgbotapi.Message) {
	text := `📞 IGRA THEATRE WORKSHOP CONTACTS:

📱 Main phone:
+7 (967) 655-50-45

🕐 Opening hours:
Daily from 16:00 to 21:00

🌐 Website and social media:
https://taplink.cc/te_ma_igra
https://t.me/te_ma_igra_krasnodar

📍 Our branches in Krasnodar:
• Dzerzhinsky District
• South Riverside
• Festivalny
• German Village`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleAbout shows information about the workshop
func (b *Bot) handleAbout(message *tgbotapi.Message) {
	text := `🎭 IGRA THEATRE WORKSHOP

We are a theatre workshop where everyone can discover their creative potential!

✨ Why people choose us:
✅ Professional teachers with a theatre education
✅ 4 convenient branches in Krasnodar
✅ Classes for children and adults
✅ Individual attention to every student
✅ Stage productions and festival appearances

🎯 Our programs:
• Acting
• Stage speech
• Theatre productions
• Public speaking
• Building self-confidence

Join us and discover the actor in you! ✨`

	msg := tgbotapi.NewMessage(message.Chat.ID, text)
	b.sendMessage(msg)
}

// handleMyBookings lists the caller's bookings, most recent first
func (b *Bot) handleMyBookings(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	bookings, err := b.db.ListBookingsForClient(ctx, userID, 10)
	if err != nil {
		msg := tgbotapi.NewMessage(message.Chat.ID, "Sorry, something went wrong. Please try again later.")
		b.sendMessage(msg)
		return
	}

	if len(bookings) == 0 {
		msg := tgbotapi.NewMessage(message.Chat.ID, "📭 You have no bookings yet.")
		b.sendMessage(msg)
		return
	}

	var text strings.Builder
	text.WriteString("📋 YOUR BOOKINGS:\n\n")
	for _, booking := range bookings {
		text.WriteString(fmt.Sprintf("%s Booking #%d\n", statusIcon(booking.Status), booking.ID))
		text.WriteString("🏢 Branch: " + booking.BranchName + "\n")
		text.WriteString("🎭 Service: " + booking.ServiceType + "\n")
		text.WriteString("📅 Date: " + booking.CreatedAt.Format("2006-01-02") + "\n")
		text.WriteString("📊 Status: " + string(booking.Status) + "\n")
		text.WriteString("──────────────\n")
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, text.String())
	b.sendMessage(msg)
}
