package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/synapz/internal/database"
	"github.com/example/synapz/internal/progression"
	"github.com/example/synapz/pkg/models"
)

const notLinkedText = "This chat is not linked to a Synapz account yet. Send /start to see how to link it."

// HandleCommand handles bot commands
func (b *Bot) HandleCommand(ctx context.Context, message *tgbotapi.Message) error {
	if message == nil || message.Chat == nil {
		return fmt.Errorf("invalid message: required fields are missing")
	}
	chatID := message.Chat.ID
	switch message.Command() {
	case "start":
		return b.handleStart(chatID)
	case "help":
		return b.handleHelp(chatID)
	case "due":
		return b.handleDue(ctx, chatID)
	case "stats":
		return b.handleStats(ctx, chatID)
	default:
		return b.reply(chatID, "Unknown command. Use /help to see what I can do.")
	}
}

// HandleCallback handles menu button presses
func (b *Bot) HandleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Debug("failed to answer callback", "error", err)
	}
	if callback.Message == nil || callback.Message.Chat == nil {
		return fmt.Errorf("callback without message")
	}
	chatID := callback.Message.Chat.ID
	switch callback.Data {
	case "due":
		return b.handleDue(ctx, chatID)
	case "stats":
		return b.handleStats(ctx, chatID)
	default:
		return b.handleHelp(chatID)
	}
}

func (b *Bot) handleStart(chatID int64) error {
	text := "👋 Welcome to Synapz!\n\n" +
		"I send you a reminder when saved facts are due for review.\n\n" +
		fmt.Sprintf("Your chat ID is %d. Enter it under notification settings in the app to link this chat.", chatID)
	return b.reply(chatID, text)
}

func (b *Bot) handleHelp(chatID int64) error {
	text := "📖 Commands\n\n" +
		"/start - How to link this chat\n" +
		"/due - Facts due for review today\n" +
		"/stats - Your level, points and streak\n" +
		"/help - Show this message"
	return b.reply(chatID, text)
}

// linkedUser returns nil without error when the chat is not linked
func (b *Bot) linkedUser(ctx context.Context, chatID int64) (*models.User, error) {
	user, err := b.users.GetByTelegramChatID(ctx, chatID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (b *Bot) handleDue(ctx context.Context, chatID int64) error {
	user, err := b.linkedUser(ctx, chatID)
	if err != nil {
		return err
	}
	if user == nil {
		return b.reply(chatID, notLinkedText)
	}

	due, err := b.reviews.DueCount(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to count due facts: %w", err)
	}
	if due == 0 {
		return b.reply(chatID, "✅ Nothing to review right now. Come back tomorrow!")
	}
	return b.SendReminder(chatID, due)
}

func (b *Bot) handleStats(ctx context.Context, chatID int64) error {
	user, err := b.linkedUser(ctx, chatID)
	if err != nil {
		return err
	}
	if user == nil {
		return b.reply(chatID, notLinkedText)
	}

	lvl, err := progression.ComputeLevel(user.TotalXP)
	if err != nil {
		return err
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("📊 Stats for %s\n\n", user.Username))
	text.WriteString(fmt.Sprintf("%s Level %d: %s\n", lvl.Icon, lvl.Level, lvl.Title))
	text.WriteString(fmt.Sprintf("XP: %d", user.TotalXP))
	if lvl.XPForNextLevel > 0 {
		text.WriteString(fmt.Sprintf(" (%d to next level)", lvl.XPForNextLevel))
	}
	text.WriteString("\n")
	text.WriteString(fmt.Sprintf("Points: %d\n", user.TotalPoints))
	text.WriteString(fmt.Sprintf("🔥 Streak: %d days (best %d)\n", user.StreakCount, user.LongestStreak))
	text.WriteString(fmt.Sprintf("🏅 Badges: %d", len(user.Badges)))
	return b.reply(chatID, text.String())
}
