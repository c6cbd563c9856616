package telegram

import (
	"errors"
	"testing"
	"time"

	"go-resume-coach/internal/apperr"
	"go-resume-coach/internal/config"
	"go-resume-coach/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"jane.doe@example.com", "jane\\.doe@example\\.com"},
		{"C++ (senior) - 100%!", "C\\+\\+ \\(senior\\) \\- 100%\\!"},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeMarkdown(tt.in))
		})
	}
}

func TestFormatContact(t *testing.T) {
	at := time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC)
	text := formatContact(models.ContactRequest{
		Name:    "Jane_Doe",
		Email:   "jane@example.com",
		Message: "Loved the demo!",
	}, at)

	assert.Contains(t, text, "*New contact request*")
	assert.Contains(t, text, "👤 Jane\\_Doe")
	assert.Contains(t, text, "✉️ jane@example\\.com")
	assert.Contains(t, text, "📝 Loved the demo\\!")
	assert.Contains(t, text, "2026\\-03\\-04 05:06 UTC")
}

func TestSendContact(t *testing.T) {
	fake := &fakeSender{}
	b := &Bot{api: fake, chatID: 42, now: time.Now}

	require.NoError(t, b.SendContact(models.ContactRequest{Name: "Jane", Email: "jane@example.com", Message: "hi"}))
	require.Len(t, fake.sent, 1)

	msg := fake.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "MarkdownV2", msg.ParseMode)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Equal(t, "mailto:jane@example.com", *markup.InlineKeyboard[0][0].URL)
}

func TestSendErrorIncludesKind(t *testing.T) {
	fake := &fakeSender{}
	b := &Bot{api: fake, chatID: 1, now: time.Now}

	require.NoError(t, b.SendError("upload", apperr.Upstream("PDF conversion failed", 401, "{}")))
	require.Len(t, fake.sent, 1)
	assert.Contains(t, fake.sent[0].Text, "upload")
	assert.Contains(t, fake.sent[0].Text, "status 401")
	assert.Contains(t, fake.sent[0].Text, "kind: upstream")
}

func TestSendPropagatesTelegramError(t *testing.T) {
	b := &Bot{api: &fakeSender{err: errors.New("chat not found")}, chatID: 1, now: time.Now}
	assert.EqualError(t, b.SendStatus("ping"), "chat not found")
}

func TestNewBotNeedsConfig(t *testing.T) {
	_, err := NewBot(config.TelegramConfig{Token: "t"})
	assert.True(t, errors.Is(err, apperr.ErrConfiguration))
}
