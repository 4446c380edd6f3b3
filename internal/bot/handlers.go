package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/omarshaarawi/sleeperbot/internal/models"
	"github.com/omarshaarawi/sleeperbot/internal/service"
)

const welcomeMessage = "👋 Hello, welcome to the Fantasy Football Bot!\n\n" +
	"🇧🇷 Olá, bem-vindo ao Bot de Fantasy Football!\n\n" +
	"Available commands / Comandos disponíveis:\n" +
	"- 'standings' / 'classificação' → Current league standings\n" +
	"- /daily → High ownership drops and waivers\n" +
	"- /live → Live stats for your roster\n"

const noStandingsMessage = "No standings available at the moment."

var standingsKeywords = []string{"standings", "classificação", "classificacao"}

// AlertBuilder produces alerts for a mode without sending them.
type AlertBuilder interface {
	Build(ctx context.Context, mode service.Mode, userID string) ([]models.Alert, error)
}

type Handler struct {
	builder AlertBuilder
	userID  string
}

func NewHandler(builder AlertBuilder, userID string) *Handler {
	return &Handler{builder: builder, userID: userID}
}

// HandleUpdate answers a single incoming message. Commands and free text
// mentioning standings are supported; anything else gets the welcome text.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) []tgbotapi.MessageConfig {
	chatID := update.Message.Chat.ID

	if update.Message.IsCommand() {
		switch strings.ToLower(update.Message.Command()) {
		case "start", "help":
			return []tgbotapi.MessageConfig{plain(chatID, welcomeMessage)}
		case "standings":
			return h.handleMode(ctx, chatID, service.ModeWeekly, noStandingsMessage)
		case "daily":
			return h.handleMode(ctx, chatID, service.ModeDaily, "No high ownership drops or waivers.")
		case "live":
			if h.userID == "" {
				return []tgbotapi.MessageConfig{plain(chatID, "Live alerts need SLEEPER_USER_ID to be configured.")}
			}
			return h.handleMode(ctx, chatID, service.ModeLive, "Nothing notable in today's games yet.")
		default:
			return []tgbotapi.MessageConfig{plain(chatID, welcomeMessage)}
		}
	}

	if mentionsStandings(update.Message.Text) {
		return h.handleMode(ctx, chatID, service.ModeWeekly, noStandingsMessage)
	}
	return []tgbotapi.MessageConfig{plain(chatID, welcomeMessage)}
}

func (h *Handler) handleMode(ctx context.Context, chatID int64, mode service.Mode, empty string) []tgbotapi.MessageConfig {
	alerts, err := h.builder.Build(ctx, mode, h.userID)
	if err != nil {
		slog.Error("Error building alerts", "alert_type", mode, "error", err)
		return []tgbotapi.MessageConfig{plain(chatID, fmt.Sprintf("Error fetching %s alerts: %v", mode, err))}
	}
	if len(alerts) == 0 {
		return []tgbotapi.MessageConfig{plain(chatID, empty)}
	}

	msgs := make([]tgbotapi.MessageConfig, 0, len(alerts))
	for _, a := range alerts {
		msg := tgbotapi.NewMessage(chatID, a.Text())
		msg.ParseMode = tgbotapi.ModeMarkdown
		msgs = append(msgs, msg)
	}
	return msgs
}

func plain(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// mentionsStandings matches each word against the keywords ignoring case
// and diacritics, tolerating a couple of typos.
func mentionsStandings(text string) bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, word := range words {
		if utf8.RuneCountInString(word) < 5 {
			continue
		}
		for _, rank := range fuzzy.RankFindNormalizedFold(word, standingsKeywords) {
			if rank.Distance <= 2 {
				return true
			}
		}
	}
	return false
}
