package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"go.uber.org/zap"
)

type quizSession struct {
	Step        int
	Answers     []entity.QuizAnswer
	Done        bool
	Recommended []string
}

// startQuiz birinchi savolni yuborish
func (h *BotHandler) startQuiz(chatID int64) {
	questions := h.quizUseCase.Questions()
	if len(questions) == 0 {
		return
	}

	h.quizMu.Lock()
	h.quizSessions[chatID] = &quizSession{}
	h.quizMu.Unlock()

	h.sendMessageWithMarkup(chatID, renderQuestion(questions[0], len(questions)), quizKeyboard(questions[0]))
}

func (h *BotHandler) clearQuizSession(chatID int64) {
	h.quizMu.Lock()
	defer h.quizMu.Unlock()
	delete(h.quizSessions, chatID)
}

func (h *BotHandler) lastRecommendation(chatID int64) []string {
	h.quizMu.RLock()
	defer h.quizMu.RUnlock()
	session, ok := h.quizSessions[chatID]
	if !ok || !session.Done {
		return nil
	}
	return append([]string(nil), session.Recommended...)
}

// handleQuizAnswer "quiz:<step>:<token>" callbacki, toast matnini qaytaradi
func (h *BotHandler) handleQuizAnswer(ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) string {
	chatID := cq.Message.Chat.ID
	questions := h.quizUseCase.Questions()

	rawStep, token, _ := strings.Cut(arg, ":")
	step, err := strconv.Atoi(rawStep)
	if err != nil || step < 0 || step >= len(questions) || !hasOption(questions[step], token) {
		return "Неизвестный ответ"
	}

	h.quizMu.Lock()
	session, ok := h.quizSessions[chatID]
	if !ok || session.Done || session.Step != step {
		h.quizMu.Unlock()
		return "Начните подбор заново: /quiz"
	}
	session.Answers = append(session.Answers, entity.QuizAnswer{Question: step, Answer: token})
	session.Step++
	finished := session.Step >= len(questions)
	answers := append([]entity.QuizAnswer(nil), session.Answers...)
	h.quizMu.Unlock()

	if !finished {
		next := questions[step+1]
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cq.Message.MessageID, renderQuestion(next, len(questions)), quizKeyboard(next))
		if _, err := h.bot.Request(edit); err != nil {
			h.logger.Debug("quiz edit failed", zap.Error(err))
		}
		return ""
	}

	products := h.quizUseCase.Complete(ctx, answers, quizContact(cq.From))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}

	h.quizMu.Lock()
	if session, ok := h.quizSessions[chatID]; ok {
		session.Done = true
		session.Recommended = ids
	}
	h.quizMu.Unlock()

	markup := productKeyboard(products)
	markup.InlineKeyboard = append(markup.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📝 Хочу эти товары", "interest"),
	))
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cq.Message.MessageID, renderRecommendation(products), markup)
	if _, err := h.bot.Request(edit); err != nil {
		h.logger.Debug("quiz result edit failed", zap.Error(err))
	}
	return "Подбор готов!"
}

func hasOption(q entity.QuizQuestion, token string) bool {
	for _, opt := range q.Options {
		if opt.Value == token {
			return true
		}
	}
	return false
}

// quizContact quiz leadidagi kontakt: Telegram username yoki ism
func quizContact(user *tgbotapi.User) string {
	if user == nil {
		return ""
	}
	if user.UserName != "" {
		return "@" + user.UserName + " (Telegram)"
	}
	return fmt.Sprintf("%s (Telegram id %d)", strings.TrimSpace(user.FirstName+" "+user.LastName), user.ID)
}

func renderQuestion(q entity.QuizQuestion, total int) string {
	return fmt.Sprintf("🎯 Вопрос %d из %d\n\n%s", q.Index+1, total, q.Prompt)
}

func quizKeyboard(q entity.QuizQuestion) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.Options))
	for _, opt := range q.Options {
		data := fmt.Sprintf("quiz:%d:%s", q.Index, opt.Value)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(opt.Label, data)))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func renderRecommendation(products []entity.Product) string {
	if len(products) == 0 {
		return "🎯 Подбор завершён. Напишите нам: /contact — менеджер поможет с выбором."
	}
	return renderProductList("🎯 Мы подобрали для вас", products)
}
