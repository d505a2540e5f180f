package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/pkg/models"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// MainMenuButtons are attached to every reply
func (b *Bot) MainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "🧠 Due reviews", CallbackData: "due"}, {Text: "📊 My stats", CallbackData: "stats"}},
	}
}

// sender is the part of the Telegram API the bot uses
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UserFinder resolves the account linked to a chat
type UserFinder interface {
	GetByTelegramChatID(ctx context.Context, chatID int64) (*models.User, error)
}

// DueCounter counts a user's saved facts due today
type DueCounter interface {
	DueCount(ctx context.Context, userID string) (int, error)
}

// Bot represents the Telegram bot application
type Bot struct {
	api     sender
	botAPI  *tgbotapi.BotAPI
	config  BotConfig
	users   UserFinder
	reviews DueCounter
	log     *logger.Logger
}

// New connects to Telegram with the configured token
func New(config BotConfig, users UserFinder, reviews DueCounter, log *logger.Logger) (*Bot, error) {
	if config.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	botAPI, err := tgbotapi.NewBotAPI(config.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create bot: %v", err)
	}
	b := newBot(botAPI, config, users, reviews, log)
	b.botAPI = botAPI
	b.log.Info("authorized on account", "username", botAPI.Self.UserName)
	return b, nil
}

func newBot(api sender, config BotConfig, users UserFinder, reviews DueCounter, log *logger.Logger) *Bot {
	if log == nil {
		log = logger.Nop()
	}
	return &Bot{
		api:     api,
		config:  config,
		users:   users,
		reviews: reviews,
		log:     log.With("component", "bot"),
	}
}

// Start handles incoming updates until ctx is cancelled
func (b *Bot) Start(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = b.config.UpdateTimeout
	updates := b.botAPI.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop() {
	if b.botAPI != nil {
		b.botAPI.StopReceivingUpdates()
	}
	b.log.Info("bot stopped")
}

// SendReminder implements the scheduler.Notifier interface
func (b *Bot) SendReminder(chatID int64, dueCount int) error {
	noun := "facts"
	if dueCount == 1 {
		noun = "fact"
	}
	text := fmt.Sprintf("🧠 You have %d %s to review today! Keep your synapses firing.", dueCount, noun)
	if b.config.AppURL != "" {
		text += "\n\n" + b.config.AppURL + "/review"
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	b.log.Debug("reminder sent", "chat_id", chatID, "due", dueCount)
	return nil
}

// handleUpdate handles incoming updates from Telegram
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var err error
	switch {
	case update.Message != nil && update.Message.IsCommand():
		err = b.HandleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Chat != nil:
		err = b.reply(update.Message.Chat.ID, "I don't understand. Use /help to see what I can do.")
	case update.CallbackQuery != nil:
		err = b.HandleCallback(ctx, update.CallbackQuery)
	}
	if err != nil {
		b.log.Warn("failed to handle update", "update_id", update.UpdateID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(b.MainMenuButtons())
	_, err := b.api.Send(msg)
	return err
}
