package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func TestMessengerSend(t *testing.T) {
	bot := &fakeSender{}
	messenger := NewMessenger(bot, -100500)

	require.NoError(t, messenger.Send(context.Background(), "🛒 Новый заказ!"))
	require.Len(t, bot.sent, 1)

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(-100500), msg.ChatID)
	assert.Equal(t, "🛒 Новый заказ!", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)
}

func TestMessengerSend_Errors(t *testing.T) {
	sendErr := errors.New("Bad Request: chat not found")
	err := NewMessenger(&fakeSender{err: sendErr}, 1).Send(context.Background(), "x")
	assert.ErrorIs(t, err, sendErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bot := &fakeSender{}
	err = NewMessenger(bot, 1).Send(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.sent)
}
