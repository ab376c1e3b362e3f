package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"go.uber.org/zap/zaptest"
)

func TestRenderLead_Quiz(t *testing.T) {
	text := RenderLead(entity.Lead{
		Type: entity.LeadQuiz,
		Answers: []entity.QuizAnswer{
			{Question: entity.QuestionType, Answer: "gift"},
			{Question: entity.QuestionBudget, Answer: ""},
			{Question: 9, Answer: "x"},
		},
		Recommendation: "Белуга империал",
		Contact:        "@ivan",
	})

	assert.Equal(t, "🎯 Новая заявка с квиза!\n\n"+
		"• Какую икру ищет: В подарок\n"+
		"• Бюджет на кг: не указано\n"+
		"• Вопрос 10: x\n"+
		"\n✅ Рекомендация: Белуга империал"+
		"\n📞 Контакт: @ivan", text)
}

func TestRenderLead_Order(t *testing.T) {
	text := RenderLead(entity.Lead{
		Type: entity.LeadOrder,
		Products: []entity.OrderLine{
			{Name: "Кета премиум", Quantity: 2, Price: 11000},
			{Price: 100},
		},
		Total:    11100,
		Contact:  "Иван, +7 900",
		Delivery: "Самовывоз",
		Comment:  "<b>срочно</b>",
	})

	assert.Equal(t, "🛒 Новый заказ!\n\n"+
		"Товары:\n"+
		"• Кета премиум - 2 шт. (11 000 ₽)\n"+
		"• Товар - 1 шт. (100 ₽)\n"+
		"\n💰 Итого: 11 100 ₽"+
		"\n📞 Контакт: Иван, +7 900"+
		"\n🚚 Доставка: Самовывоз"+
		"\n💬 Комментарий: &lt;b&gt;срочно&lt;/b&gt;", text)
}

func TestRenderLead_ContactAndOther(t *testing.T) {
	text := RenderLead(entity.Lead{Type: entity.LeadContact, Name: "Иван", Phone: "+7 900"})
	assert.Equal(t, "📩 Новая заявка на обратную связь!\n\nИмя: Иван\nТелефон: +7 900\n", text)

	assert.Equal(t, "Новое сообщение", RenderLead(entity.Lead{Type: "other"}))
	assert.Equal(t, "a &amp; b", RenderLead(entity.Lead{Type: "other", Message: "a & b"}))
}

func TestRelay(t *testing.T) {
	ctx := context.Background()
	messenger := &recordingMessenger{}
	journal := storage.NewMemoryLeadJournal(10)
	relay := NewRelayUseCase(messenger, journal, zaptest.NewLogger(t))

	record, err := relay.Relay(ctx, []byte(`{"products":[{"name":"Кета премиум","quantity":1,"price":5500}],"total":5500}`))
	require.NoError(t, err)

	assert.Equal(t, entity.LeadOrder, record.Type)
	assert.True(t, record.Delivered)
	assert.NotEmpty(t, record.ID)
	require.Len(t, messenger.sent, 1)
	assert.Equal(t, record.Text, messenger.sent[0])

	recent, err := journal.Recent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, record.ID, recent[0].ID)
	assert.True(t, recent[0].Delivered)
}

func TestRelay_EmptyBodyIsOrder(t *testing.T) {
	messenger := &recordingMessenger{}
	relay := NewRelayUseCase(messenger, nil, nil)

	record, err := relay.Relay(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.LeadOrder, record.Type)
	assert.Equal(t, "🛒 Новый заказ!\n\n", messenger.sent[0])
}

func TestRelay_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewRelayUseCase(nil, nil, nil).Relay(ctx, []byte(`{}`))
	assert.ErrorIs(t, err, ErrMessengerNotConfigured)

	_, err = NewRelayUseCase(&recordingMessenger{}, nil, nil).Relay(ctx, []byte(`{"type":`))
	assert.ErrorIs(t, err, ErrMalformedLead)

	journal := storage.NewMemoryLeadJournal(10)
	sendErr := errors.New("telegram down")
	record, err := NewRelayUseCase(&recordingMessenger{err: sendErr}, journal, nil).Relay(ctx, []byte(`{"type":"contact"}`))
	assert.ErrorIs(t, err, sendErr)
	assert.False(t, record.Delivered)

	recent, err := journal.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.False(t, recent[0].Delivered)
}

func TestRelaySender(t *testing.T) {
	messenger := &recordingMessenger{}
	sender := NewRelaySender(NewRelayUseCase(messenger, nil, nil))

	err := sender.Submit(context.Background(), entity.Lead{Type: entity.LeadContact, Name: "Иван", Phone: "+7 900"})
	require.NoError(t, err)
	require.Len(t, messenger.sent, 1)
	assert.Contains(t, messenger.sent[0], "Имя: Иван")
}
