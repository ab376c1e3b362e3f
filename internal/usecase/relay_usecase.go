package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// Relay xatolari
var (
	ErrMessengerNotConfigured = errors.New("telegram credentials not configured")
	ErrMalformedLead          = errors.New("malformed lead payload")
)

// RelayUseCase endpointga kelgan leadni menejer chatiga uzatish
type RelayUseCase interface {
	// Relay JSON tanani o'qib, xabar yasaydi, jurnalga yozadi va yuboradi
	Relay(ctx context.Context, body []byte) (entity.LeadRecord, error)
}

type relayUseCase struct {
	messenger repository.Messenger
	journal   repository.LeadJournal
	logger    *zap.Logger
}

// NewRelayUseCase yangi RelayUseCase yaratish. messenger nil bo'lishi mumkin.
func NewRelayUseCase(messenger repository.Messenger, journal repository.LeadJournal, logger *zap.Logger) RelayUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &relayUseCase{
		messenger: messenger,
		journal:   journal,
		logger:    logger,
	}
}

// Relay leadni uzatish
func (u *relayUseCase) Relay(ctx context.Context, body []byte) (entity.LeadRecord, error) {
	if u.messenger == nil {
		return entity.LeadRecord{}, ErrMessengerNotConfigured
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	var lead entity.Lead
	if err := json.Unmarshal(body, &lead); err != nil {
		return entity.LeadRecord{}, fmt.Errorf("%w: %v", ErrMalformedLead, err)
	}
	if lead.Type == "" {
		lead.Type = entity.LeadOrder
	}

	record := entity.LeadRecord{
		ID:        uuid.New().String(),
		Type:      lead.Type,
		Text:      RenderLead(lead),
		Payload:   json.RawMessage(body),
		CreatedAt: time.Now(),
	}

	if u.journal != nil {
		if err := u.journal.Save(ctx, record); err != nil {
			// Jurnal ixtiyoriy, xabar baribir yuboriladi
			u.logger.Warn("failed to journal lead", zap.String("id", record.ID), zap.Error(err))
		}
	}

	if err := u.messenger.Send(ctx, record.Text); err != nil {
		u.logger.Error("failed to relay lead", zap.String("id", record.ID), zap.Error(err))
		return record, err
	}
	record.Delivered = true

	if u.journal != nil {
		if err := u.journal.MarkDelivered(ctx, record.ID); err != nil {
			u.logger.Warn("failed to mark lead delivered", zap.String("id", record.ID), zap.Error(err))
		}
	}

	u.logger.Info("lead relayed", zap.String("id", record.ID), zap.String("type", string(record.Type)))
	return record, nil
}

// RenderLead leadni menejer uchun HTML-xavfsiz matnga aylantirish
func RenderLead(lead entity.Lead) string {
	esc := html.EscapeString
	var sb strings.Builder

	switch lead.Type {
	case entity.LeadQuiz:
		sb.WriteString("🎯 Новая заявка с квиза!\n\n")
		for _, ans := range lead.Answers {
			title, ok := entity.QuestionTitle(ans.Question)
			if !ok {
				title = fmt.Sprintf("Вопрос %d", ans.Question+1)
			}
			answer := "не указано"
			if ans.Answer != "" {
				answer = entity.OptionLabel(ans.Question, ans.Answer)
			}
			sb.WriteString(fmt.Sprintf("• %s: %s\n", title, esc(answer)))
		}
		if lead.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("\n✅ Рекомендация: %s", esc(lead.Recommendation)))
		}
		if lead.Contact != "" {
			sb.WriteString(fmt.Sprintf("\n📞 Контакт: %s", esc(lead.Contact)))
		}

	case entity.LeadOrder:
		sb.WriteString("🛒 Новый заказ!\n\n")
		if len(lead.Products) > 0 {
			sb.WriteString("Товары:\n")
			for _, p := range lead.Products {
				name := p.Name
				if name == "" {
					name = "Товар"
				}
				quantity := p.Quantity
				if quantity == 0 {
					quantity = 1
				}
				sb.WriteString(fmt.Sprintf("• %s - %d шт. (%s ₽)\n", esc(name), quantity, entity.FormatPrice(p.Price)))
			}
		}
		if lead.Total != 0 {
			sb.WriteString(fmt.Sprintf("\n💰 Итого: %s ₽", entity.FormatPrice(lead.Total)))
		}
		if lead.Contact != "" {
			sb.WriteString(fmt.Sprintf("\n📞 Контакт: %s", esc(lead.Contact)))
		}
		if lead.Delivery != "" {
			sb.WriteString(fmt.Sprintf("\n🚚 Доставка: %s", esc(lead.Delivery)))
		}
		if lead.Comment != "" {
			sb.WriteString(fmt.Sprintf("\n💬 Комментарий: %s", esc(lead.Comment)))
		}

	case entity.LeadContact:
		sb.WriteString("📩 Новая заявка на обратную связь!\n\n")
		if lead.Name != "" {
			sb.WriteString(fmt.Sprintf("Имя: %s\n", esc(lead.Name)))
		}
		if lead.Phone != "" {
			sb.WriteString(fmt.Sprintf("Телефон: %s\n", esc(lead.Phone)))
		}
		if lead.Email != "" {
			sb.WriteString(fmt.Sprintf("Email: %s\n", esc(lead.Email)))
		}
		if lead.Comment != "" {
			sb.WriteString(fmt.Sprintf("Комментарий: %s\n", esc(lead.Comment)))
		}

	default:
		message := lead.Message
		if message == "" {
			message = "Новое сообщение"
		}
		sb.WriteString(esc(message))
	}

	return sb.String()
}

type relaySender struct {
	relay RelayUseCase
}

// NewRelaySender leadni HTTP siz, shu jarayon ichidagi relay orqali yuboruvchi LeadSender
func NewRelaySender(relay RelayUseCase) repository.LeadSender {
	return &relaySender{relay: relay}
}

// Submit leadni JSON qilib relayga berish
func (s *relaySender) Submit(ctx context.Context, lead entity.Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}
	_, err = s.relay.Relay(ctx, body)
	return err
}
