package telegram

import (
	"fmt"
	"strings"
	"time"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot delivers contact requests and error reports to the operator chat.
type Bot struct {
	api    sender
	chatID int64
	now    func() time.Time
}

func NewBot(cfg config.TelegramConfig) (*Bot, error) {
	if !cfg.Enabled() {
		return nil, apperr.Configuration("telegram is not configured, set TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID")
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//api.Debug = true

	return &Bot{
		api:    api,
		chatID: cfg.ChatID,
		now:    time.Now,
	}, nil
}

var markdownReplacer = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!", "\\", "\\\\",
)

func escapeMarkdown(text string) string {
	return markdownReplacer.Replace(text)
}

func formatContact(req models.ContactRequest, at time.Time) string {
	msgText := "📬 *New contact request*\n"
	msgText += fmt.Sprintf("👤 %s\n", escapeMarkdown(req.Name))
	msgText += fmt.Sprintf("✉️ %s\n", escapeMarkdown(req.Email))
	msgText += fmt.Sprintf("📝 %s\n", escapeMarkdown(req.Message))
	msgText += fmt.Sprintf("🕒 %s\n", escapeMarkdown(at.UTC().Format("2006-01-02 15:04 MST")))
	return msgText
}

// SendContact forwards a contact form submission
func (b *Bot) SendContact(req models.ContactRequest) error {
	msg := tgbotapi.NewMessage(b.chatID, formatContact(req, b.now()))
	msg.ParseMode = "MarkdownV2"

	//reply straight from telegram
	if req.Email != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("✉️ Reply", "mailto:"+req.Email),
			),
		)
	}

	_, err := b.api.Send(msg)
	return err
}

// SendError reports a failed upstream call so the operator notices broken credentials
func (b *Bot) SendError(op string, err error) error {
	text := fmt.Sprintf("❌ Error during %s: %v", op, err)
	if kind := apperr.KindOf(err); kind != "" {
		text += fmt.Sprintf("\nkind: %s", kind)
	}
	msg := tgbotapi.NewMessage(b.chatID, text)
	_, sendErr := b.api.Send(msg)
	return sendErr
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, "ℹ️ "+message)
	_, err := b.api.Send(msg)
	return err
}
