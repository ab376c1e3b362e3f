package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/usecase"
	"go.uber.org/zap"
)

type formKind int

const (
	formOrder formKind = iota
	formContact
	formInterest
)

type formStage int

const (
	formStageNeedName formStage = iota
	formStageNeedPhone
	formStageNeedAddress
	formStageNeedComment
	formStageDone
)

// skipAnswer ixtiyoriy maydonni o'tkazib yuborish
const skipAnswer = "-"

type formSession struct {
	Kind       formKind
	Stage      formStage
	Name       string
	Phone      string
	Address    string
	Comment    string
	ProductIDs []string
}

// stages har bir forma turining bosqichlari
func (k formKind) stages() []formStage {
	switch k {
	case formOrder:
		return []formStage{formStageNeedName, formStageNeedPhone, formStageNeedAddress, formStageNeedComment}
	case formContact:
		return []formStage{formStageNeedName, formStageNeedPhone, formStageNeedComment}
	default:
		return []formStage{formStageNeedName, formStageNeedPhone}
	}
}

// next keyingi bosqich; oxirgisidan keyin formStageDone
func (k formKind) next(stage formStage) formStage {
	stages := k.stages()
	for i, s := range stages {
		if s == stage && i+1 < len(stages) {
			return stages[i+1]
		}
	}
	return formStageDone
}

func (h *BotHandler) startForm(chatID int64, kind formKind, productIDs []string) {
	h.formMu.Lock()
	h.formSessions[chatID] = &formSession{
		Kind:       kind,
		Stage:      formStageNeedName,
		ProductIDs: productIDs,
	}
	h.formMu.Unlock()

	switch kind {
	case formOrder:
		h.sendMessage(chatID, "📝 Оформление заказа.\n\nКак вас зовут?")
	case formContact:
		h.sendMessage(chatID, "📞 Обратный звонок.\n\nКак вас зовут?")
	default:
		h.sendMessage(chatID, "📝 Заявка на подобранные товары.\n\nКак вас зовут?")
	}
}

// startOrder bo'sh bo'lmagan savatcha uchun buyurtma formasini ochish
func (h *BotHandler) startOrder(ctx context.Context, chatID int64) {
	state, err := h.carts(chatID).Get(ctx)
	if err != nil {
		h.logger.Error("cart read failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(chatID, "Не удалось открыть корзину.")
		return
	}
	if state.IsEmpty() {
		h.sendMessage(chatID, "🛒 Корзина пуста. Добавьте товары из /catalog.")
		return
	}
	h.startForm(chatID, formOrder, nil)
}

func (h *BotHandler) startInterest(chatID int64) {
	ids := h.lastRecommendation(chatID)
	if len(ids) == 0 {
		h.sendMessage(chatID, "Сначала пройдите подбор: /quiz")
		return
	}
	h.startForm(chatID, formInterest, ids)
}

func (h *BotHandler) clearFormSession(chatID int64) {
	h.formMu.Lock()
	defer h.formMu.Unlock()
	delete(h.formSessions, chatID)
}

func (h *BotHandler) hasFormSession(chatID int64) bool {
	h.formMu.RLock()
	defer h.formMu.RUnlock()
	_, ok := h.formSessions[chatID]
	return ok
}

// handleFormInput joriy bosqich javobini qabul qilish
func (h *BotHandler) handleFormInput(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	h.formMu.Lock()
	session, ok := h.formSessions[chatID]
	if !ok {
		h.formMu.Unlock()
		return
	}
	text := strings.TrimSpace(msg.Text)

	switch session.Stage {
	case formStageNeedName:
		if text == "" {
			h.formMu.Unlock()
			h.sendMessage(chatID, "Пожалуйста, напишите ваше имя.")
			return
		}
		session.Name = text
	case formStageNeedPhone:
		if msg.Contact != nil && msg.Contact.PhoneNumber != "" {
			text = msg.Contact.PhoneNumber
		}
		if text == "" {
			h.formMu.Unlock()
			h.sendPhoneRequest(chatID)
			return
		}
		session.Phone = text
	case formStageNeedAddress:
		if text == skipAnswer || strings.EqualFold(text, usecase.PickupDelivery) {
			text = ""
		}
		session.Address = text
	case formStageNeedComment:
		if text == skipAnswer {
			text = ""
		}
		session.Comment = text
	}

	session.Stage = session.Kind.next(session.Stage)
	snapshot := *session
	if snapshot.Stage == formStageDone {
		delete(h.formSessions, chatID)
	}
	h.formMu.Unlock()

	switch snapshot.Stage {
	case formStageNeedPhone:
		h.sendPhoneRequest(chatID)
	case formStageNeedAddress:
		h.sendAddressRequest(chatID)
	case formStageNeedComment:
		h.sendMessageWithMarkup(chatID, "💬 Комментарий к заявке (или «-», чтобы пропустить):", tgbotapi.NewRemoveKeyboard(true))
	case formStageDone:
		h.submitForm(ctx, chatID, snapshot)
	}
}

// submitForm tayyor formani yuborish
func (h *BotHandler) submitForm(ctx context.Context, chatID int64, session formSession) {
	var (
		reply string
		err   error
	)

	switch session.Kind {
	case formOrder:
		unlock := h.lockChat(chatID)
		var lead entity.Lead
		lead, err = h.leadUseCase.PlaceOrder(ctx, h.carts(chatID), usecase.OrderForm{
			Name:    session.Name,
			Phone:   session.Phone,
			Address: session.Address,
			Comment: session.Comment,
		})
		unlock()
		reply = fmt.Sprintf("✅ Заказ оформлен!\n\n💰 Итого: %s ₽\n🚚 %s\n\nМенеджер свяжется с вами в ближайшее время.",
			entity.FormatPrice(lead.Total), lead.Delivery)
	case formContact:
		err = h.leadUseCase.SubmitContact(ctx, usecase.ContactForm{
			Name:    session.Name,
			Phone:   session.Phone,
			Comment: session.Comment,
		})
		reply = "✅ Спасибо! Мы перезвоним вам в ближайшее время."
	default:
		err = h.leadUseCase.SubmitInterest(ctx, usecase.InterestForm{
			Name:       session.Name,
			Phone:      session.Phone,
			ProductIDs: session.ProductIDs,
		})
		reply = "✅ Заявка отправлена! Менеджер свяжется с вами и поможет с выбором."
	}

	switch {
	case err == nil:
		h.sendMessageWithMarkup(chatID, reply, tgbotapi.NewRemoveKeyboard(true))
	case errors.Is(err, usecase.ErrEmptyCart):
		h.sendMessageWithMarkup(chatID, "🛒 Корзина пуста. Добавьте товары из /catalog.", tgbotapi.NewRemoveKeyboard(true))
	case errors.Is(err, usecase.ErrNoProductsSelected):
		h.sendMessageWithMarkup(chatID, "Не выбрано ни одного товара. Пройдите /quiz ещё раз.", tgbotapi.NewRemoveKeyboard(true))
	default:
		h.logger.Warn("form submission failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendFailureNotice(chatID)
	}
}

// sendFailureNotice yuborilmadi: zaxira telefon raqami bilan xabar
func (h *BotHandler) sendFailureNotice(chatID int64) {
	text := fmt.Sprintf("⚠️ Не удалось отправить заявку. Пожалуйста, позвоните нам: %s", h.fallbackPhone)
	h.sendMessageWithMarkup(chatID, text, tgbotapi.NewRemoveKeyboard(true))
}

func (h *BotHandler) sendPhoneRequest(chatID int64) {
	btn := tgbotapi.NewKeyboardButtonContact("📞 Отправить номер")
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(btn))
	kb.OneTimeKeyboard = true
	h.sendMessageWithMarkup(chatID, "📞 Ваш номер телефона (или нажмите кнопку):", kb)
}

func (h *BotHandler) sendAddressRequest(chatID int64) {
	btn := tgbotapi.NewKeyboardButton(usecase.PickupDelivery)
	kb := tgbotapi.NewReplyKeyboard(tgbotapi.NewKeyboardButtonRow(btn))
	kb.OneTimeKeyboard = true
	h.sendMessageWithMarkup(chatID, "🚚 Адрес доставки (или «Самовывоз»):", kb)
}
