package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/sleeperbot/internal/config"
)

var ErrChatNotSet = errors.New("chat ID not set")

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
	channel string
}

// NewTelegramBot authorizes against the Telegram API. handler may be nil
// when the bot is only used to send alerts.
func NewTelegramBot(cfg config.TelegramBot, handler *Handler) (*TelegramBot, error) {
	return NewTelegramBotWithEndpoint(cfg, tgbotapi.APIEndpoint, handler)
}

// NewTelegramBotWithEndpoint is NewTelegramBot against a custom API endpoint
// in the tgbotapi.APIEndpoint format.
func NewTelegramBotWithEndpoint(cfg config.TelegramBot, endpoint string, handler *Handler) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(cfg.Token, endpoint)
	if err != nil {
		return nil, err
	}

	t := &TelegramBot{bot: bot, handler: handler}
	if id, ok := cfg.NumericChatID(); ok {
		t.chatID = id
	} else {
		t.channel = strings.TrimSpace(cfg.ChatID)
	}
	return t, nil
}

// SetHandler attaches the handler used by Start.
func (t *TelegramBot) SetHandler(h *Handler) {
	t.handler = h
}

func (t *TelegramBot) Start(ctx context.Context) error {
	if t.handler == nil {
		return errors.New("no handler configured")
	}

	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			for _, msg := range t.handler.HandleUpdate(ctx, update) {
				if _, err := t.bot.Send(msg); err != nil {
					slog.Error("Error sending message", "error", err)
				}
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// SendMessage posts text to the configured chat or channel as Markdown.
func (t *TelegramBot) SendMessage(text string) error {
	var msg tgbotapi.MessageConfig
	switch {
	case t.chatID != 0:
		msg = tgbotapi.NewMessage(t.chatID, text)
	case t.channel != "":
		msg = tgbotapi.NewMessageToChannel(t.channel, text)
	default:
		return ErrChatNotSet
	}

	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := t.bot.Send(msg)
	return err
}
