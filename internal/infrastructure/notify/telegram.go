// Package notify menejer chatiga Telegram orqali xabar yuboradi.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

// Sender tgbotapi.BotAPI ning bizga kerakli qismi
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type telegramMessenger struct {
	bot    Sender
	chatID int64
}

// NewMessenger mavjud bot orqali yuboruvchi messenger
func NewMessenger(bot Sender, chatID int64) repository.Messenger {
	return &telegramMessenger{bot: bot, chatID: chatID}
}

// Send HTML formatdagi matnni yuborish
func (m *telegramMessenger) Send(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(m.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := m.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}
