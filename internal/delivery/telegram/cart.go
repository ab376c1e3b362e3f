package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// cartView chatdagi jonli savatcha xabari
type cartView struct {
	messageID int
	cancel    func()
}

// addToCart mahsulotni savatchaga qo'shish, toast matnini qaytaradi
func (h *BotHandler) addToCart(ctx context.Context, chatID int64, productID string) string {
	product, err := h.productUseCase.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return "Товар не найден"
		}
		h.logger.Warn("product lookup failed", zap.String("id", productID), zap.Error(err))
		return "Ошибка, попробуйте ещё раз"
	}
	if !product.InStock {
		return "Нет в наличии"
	}

	unlock := h.lockChat(chatID)
	defer unlock()

	state, err := h.carts(chatID).Add(ctx, product.CartItem())
	if err != nil {
		h.logger.Error("cart add failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return "Ошибка, попробуйте ещё раз"
	}
	return fmt.Sprintf("✅ %s в корзине (%d шт.)", product.Name, state.Count())
}

// stepQuantity sonini bittaga oshirish yoki kamaytirish
func (h *BotHandler) stepQuantity(ctx context.Context, chatID int64, productID string, up bool) string {
	unlock := h.lockChat(chatID)
	defer unlock()

	cart := h.carts(chatID)
	state, err := cart.Get(ctx)
	if err != nil {
		h.logger.Error("cart read failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return "Ошибка, попробуйте ещё раз"
	}

	quantity := 0
	for _, item := range state.Items {
		if item.ID == productID {
			quantity = item.Quantity
			break
		}
	}
	if quantity == 0 {
		return "Товара уже нет в корзине"
	}

	if up {
		quantity++
	} else {
		quantity--
	}
	if _, err := cart.UpdateQuantity(ctx, productID, quantity); err != nil {
		h.logger.Error("cart update failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return "Ошибка, попробуйте ещё раз"
	}
	return ""
}

func (h *BotHandler) removeFromCart(ctx context.Context, chatID int64, productID string) {
	unlock := h.lockChat(chatID)
	defer unlock()

	if _, err := h.carts(chatID).Remove(ctx, productID); err != nil {
		h.logger.Error("cart remove failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *BotHandler) clearCart(ctx context.Context, chatID int64) {
	unlock := h.lockChat(chatID)
	defer unlock()

	if _, err := h.carts(chatID).Clear(ctx); err != nil {
		h.logger.Error("cart clear failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// showCart savatcha xabarini yuborib, uni jonli ko'rinishga aylantirish
func (h *BotHandler) showCart(ctx context.Context, chatID int64) {
	state, err := h.carts(chatID).Get(ctx)
	if err != nil {
		h.logger.Error("cart read failed", zap.Int64("chat_id", chatID), zap.Error(err))
		h.sendMessage(chatID, "Не удалось открыть корзину.")
		return
	}

	var markup interface{}
	if !state.IsEmpty() {
		markup = cartKeyboard(state)
	}
	sent, err := h.sendMessageWithResp(chatID, renderCart(state), markup)
	if err != nil {
		return
	}
	h.watchCart(ctx, chatID, sent.MessageID)
}

// watchCart chat topic'iga obuna bo'lib, har o'zgarishda xabarni qayta chizish.
// Chatda faqat oxirgi savatcha xabari jonli qoladi.
func (h *BotHandler) watchCart(ctx context.Context, chatID int64, messageID int) {
	if h.subscriber == nil {
		return
	}
	signals, cancel := h.subscriber.Subscribe(CartTopic(chatID))

	h.viewMu.Lock()
	if prev, ok := h.cartViews[chatID]; ok {
		prev.cancel()
	}
	h.cartViews[chatID] = cartView{messageID: messageID, cancel: cancel}
	h.viewMu.Unlock()

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case <-ctx.Done():
				cancel()
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				h.refreshCartView(ctx, chatID, messageID)
			}
		}
	}()
}

func (h *BotHandler) refreshCartView(ctx context.Context, chatID int64, messageID int) {
	state, err := h.carts(chatID).Get(ctx)
	if err != nil {
		h.logger.Warn("cart read failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, messageID, renderCart(state))
	markup := cartKeyboard(state)
	edit.ReplyMarkup = &markup
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Debug("cart view refresh failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// renderCart savatcha matni
func renderCart(state entity.CartState) string {
	if state.IsEmpty() {
		return "🛒 Корзина пуста.\n\n/catalog — выбрать икру"
	}

	var sb strings.Builder
	sb.WriteString("🛒 Ваша корзина:\n\n")
	for i, item := range state.Items {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n   %d × %s ₽ = %s ₽\n",
			i+1, item.Name, item.Weight, item.Quantity,
			entity.FormatPrice(item.Price), entity.FormatPrice(item.LineTotal())))
	}
	sb.WriteString(fmt.Sprintf("\nТоваров: %d\n💰 Итого: %s ₽", state.Count(), entity.FormatPrice(state.Total)))
	return sb.String()
}

// cartKeyboard har qator uchun -/+/x tugmalari; bo'sh savatchada tugmalar yo'q
func cartKeyboard(state entity.CartState) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(state.Items)+1)
	for _, item := range state.Items {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", "dec:"+item.ID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s × %d", item.Name, item.Quantity), "noop"),
			tgbotapi.NewInlineKeyboardButtonData("➕", "inc:"+item.ID),
			tgbotapi.NewInlineKeyboardButtonData("❌", "rm:"+item.ID),
		))
	}
	if len(state.Items) > 0 {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Оформить заказ", "order"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Очистить", "clear"),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// productKeyboard har mahsulot uchun "savatchaga" tugmasi
func productKeyboard(products []entity.Product) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products))
	for _, p := range products {
		if !p.InStock {
			continue
		}
		label := fmt.Sprintf("➕ %s — %s ₽", p.Name, entity.FormatPrice(p.Price))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "add:"+p.ID),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// renderProductList sarlavha va mahsulotlar ro'yxati
func renderProductList(title string, products []entity.Product) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(":\n")
	for i, p := range products {
		sb.WriteString(fmt.Sprintf("\n%d. %s — %s ₽ / %s\n", i+1, p.Name, entity.FormatPrice(p.Price), p.Weight))
		if p.Description != "" {
			sb.WriteString("   " + p.Description + "\n")
		}
		if len(p.Features) > 0 {
			sb.WriteString("   • " + strings.Join(p.Features, " • ") + "\n")
		}
		if !p.InStock {
			sb.WriteString("   нет в наличии\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
