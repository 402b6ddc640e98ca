package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"bookingbot/internal/storage"
)

// Bot represents the Telegram bot wrapper
type Bot struct {
	api      *tgbotapi.BotAPI
	db       storage.Storage
	notifier Notifier
	admins   map[int64]bool
	sessions *SessionStore
	logger   *zap.Logger
}

// Step identifies the current step of a booking dialogue.
type Step int

const (
	StepChoosingBranch Step = iota + 1
	StepEnteringName
	StepEnteringPhone
	StepConfirming
)

// Draft is the in-progress state of one user's booking dialogue.
// It lives only in memory; a restart loses open drafts.
type Draft struct {
	Step     Step
	BranchID int64
	Name     string
	Phone    string
}

// ServiceLabel is the fixed service offered through the dialogue.
const ServiceLabel = "Class booking"

// defaultNotes is stored with bookings submitted without a comment.
const defaultNotes = "No comments"
