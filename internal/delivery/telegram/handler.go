package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/internal/usecase"
	"go.uber.org/zap"
)

// maxCatalogFileSize menejer yuklaydigan xlsx uchun chegara (5MB)
const maxCatalogFileSize = 5 * 1024 * 1024

// BotAPI tgbotapi.BotAPI ning handler ishlatadigan qismi
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetFileDirectURL(fileID string) (string, error)
	StopReceivingUpdates()
}

// CartFactory chat uchun savatcha use case
type CartFactory func(chatID int64) usecase.CartUseCase

// Subscriber savatcha signallariga obuna (broadcast.Bus)
type Subscriber interface {
	Subscribe(topic string) (<-chan struct{}, func())
}

// CartTopic chat savatchasining signal kanali va saqlash slot nomi
func CartTopic(chatID int64) string {
	return fmt.Sprintf("cart:%d", chatID)
}

// Deps bot handler bog'liqliklari
type Deps struct {
	Products      usecase.ProductUseCase
	Quiz          usecase.QuizUseCase
	Leads         usecase.LeadUseCase
	Carts         CartFactory
	Subscriber    Subscriber
	ManagerChatID int64
	FallbackPhone string
	Logger        *zap.Logger
}

// BotHandler Telegram do'kon boti handleri
type BotHandler struct {
	bot           BotAPI
	username      string
	managerChatID int64
	fallbackPhone string

	productUseCase usecase.ProductUseCase
	quizUseCase    usecase.QuizUseCase
	leadUseCase    usecase.LeadUseCase
	carts          CartFactory
	subscriber     Subscriber
	logger         *zap.Logger
	httpClient     *http.Client

	formMu       sync.RWMutex
	formSessions map[int64]*formSession
	quizMu       sync.RWMutex
	quizSessions map[int64]*quizSession
	viewMu       sync.Mutex
	cartViews    map[int64]cartView
	chatMu       sync.Mutex
	chatLocks    map[int64]*sync.Mutex

	wg sync.WaitGroup
}

// NewBotHandler mavjud BotAPI bilan handler yaratish
func NewBotHandler(bot BotAPI, username string, deps Deps) *BotHandler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BotHandler{
		bot:            bot,
		username:       username,
		managerChatID:  deps.ManagerChatID,
		fallbackPhone:  deps.FallbackPhone,
		productUseCase: deps.Products,
		quizUseCase:    deps.Quiz,
		leadUseCase:    deps.Leads,
		carts:          deps.Carts,
		subscriber:     deps.Subscriber,
		logger:         logger,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		formSessions:   make(map[int64]*formSession),
		quizSessions:   make(map[int64]*quizSession),
		cartViews:      make(map[int64]cartView),
		chatLocks:      make(map[int64]*sync.Mutex),
	}
}

// Start botni ishga tushirish; ctx tugaguncha ishlaydi
func (h *BotHandler) Start(ctx context.Context) error {
	h.logger.Info("bot started", zap.String("username", h.username))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bot stopping")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.dispatch(ctx, update)
		}
	}
}

func (h *BotHandler) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.goHandle(func() { h.handleCallback(ctx, update.CallbackQuery) })
		return
	}
	if update.Message == nil {
		return
	}
	h.goHandle(func() { h.handleMessage(ctx, update.Message) })
}

func (h *BotHandler) goHandle(fn func()) {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		fn()
	}()
}

// shutdown jonli ko'rinishlarni to'xtatish va fondagi ishlarni kutish
func (h *BotHandler) shutdown() {
	h.viewMu.Lock()
	for chatID, view := range h.cartViews {
		view.cancel()
		delete(h.cartViews, chatID)
	}
	h.viewMu.Unlock()

	h.wg.Wait()
	if h.quizUseCase != nil {
		h.quizUseCase.Wait()
	}
}

// lockChat bitta chat ichidagi savatcha o'zgarishlarini ketma-ket qilish
func (h *BotHandler) lockChat(chatID int64) func() {
	h.chatMu.Lock()
	mu, ok := h.chatLocks[chatID]
	if !ok {
		mu = &sync.Mutex{}
		h.chatLocks[chatID] = mu
	}
	h.chatMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID

	// Fayl faqat menejer chatidan qabul qilinadi
	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if h.hasFormSession(chatID) {
		h.handleFormInput(ctx, message)
		return
	}

	if text := strings.TrimSpace(message.Text); text != "" {
		h.handleSearch(ctx, chatID, text)
	}
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.sendMessage(chatID, h.getWelcomeMessage())
	case "help":
		h.sendMessage(chatID, h.getHelpMessage())
	case "catalog":
		h.handleCatalogCommand(ctx, chatID, args)
	case "search":
		if args == "" {
			h.sendMessage(chatID, "Напишите, что ищете: /search кета")
			return
		}
		h.handleSearch(ctx, chatID, args)
	case "info":
		h.handleInfoCommand(ctx, chatID)
	case "cart":
		h.showCart(ctx, chatID)
	case "clear":
		h.clearCart(ctx, chatID)
		h.sendMessage(chatID, "🗑 Корзина очищена.")
	case "quiz":
		h.startQuiz(chatID)
	case "order":
		h.startOrder(ctx, chatID)
	case "contact":
		h.startForm(chatID, formContact, nil)
	case "cancel":
		h.clearFormSession(chatID)
		h.clearQuizSession(chatID)
		h.sendMessageWithMarkup(chatID, "Действие отменено.", tgbotapi.NewRemoveKeyboard(true))
	case "export":
		h.handleExportCommand(ctx, chatID)
	default:
		h.sendMessage(chatID, "Неизвестная команда. /help — список команд.")
	}
}

// handleCatalogCommand katalog yoki bitta kategoriya
func (h *BotHandler) handleCatalogCommand(ctx context.Context, chatID int64, category string) {
	if category == "" {
		text, err := h.productUseCase.GetProductsAsText(ctx)
		if err != nil {
			h.logger.Warn("catalog unavailable", zap.Error(err))
			h.sendMessage(chatID, "Каталог временно недоступен.")
			return
		}
		products, _ := h.productUseCase.GetAll(ctx)
		h.sendMessageWithMarkup(chatID, "🐟 Наш каталог\n\n"+text, productKeyboard(products))
		return
	}

	products, err := h.productUseCase.GetByCategory(ctx, category)
	if err != nil || len(products) == 0 {
		h.sendMessage(chatID, "Категория не найдена. Доступные: premium, classic, gift, wholesale, black.")
		return
	}
	h.sendMessageWithMarkup(chatID, renderProductList(usecase.CategoryTitle(strings.ToLower(category)), products), productKeyboard(products))
}

// handleSearch mahsulot qidirish natijasini yuborish
func (h *BotHandler) handleSearch(ctx context.Context, chatID int64, query string) {
	products, err := h.productUseCase.Search(ctx, query)
	if err != nil {
		h.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		h.sendMessage(chatID, "Поиск временно недоступен.")
		return
	}
	if len(products) == 0 {
		h.sendMessage(chatID, fmt.Sprintf("По запросу «%s» ничего не найдено. /catalog — весь каталог, /quiz — подобрать икру.", query))
		return
	}
	h.sendMessageWithMarkup(chatID, renderProductList("🔎 Найдено", products), productKeyboard(products))
}

// handleInfoCommand katalog haqida ma'lumot
func (h *BotHandler) handleInfoCommand(ctx context.Context, chatID int64) {
	info, err := h.productUseCase.GetCatalogInfo(ctx)
	if err != nil {
		h.sendMessage(chatID, "Каталог временно недоступен.")
		return
	}
	h.sendMessage(chatID, info)
}

// handleExportCommand menejerga katalogni xlsx qilib yuborish
func (h *BotHandler) handleExportCommand(ctx context.Context, chatID int64) {
	if !h.isManagerChat(chatID) {
		h.sendMessage(chatID, "❌ Команда доступна только менеджерам.")
		return
	}
	data, err := h.productUseCase.ExportCatalog(ctx)
	if err != nil {
		h.logger.Error("catalog export failed", zap.Error(err))
		h.sendMessage(chatID, fmt.Sprintf("❌ Не удалось выгрузить каталог: %v", err))
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "catalog.xlsx", Bytes: data})
	if _, err := h.bot.Send(doc); err != nil {
		h.logger.Error("failed to send catalog file", zap.Error(err))
	}
}

// handleDocumentMessage menejer yuborgan xlsx bilan katalogni yangilash
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !h.isManagerChat(chatID) {
		h.sendMessage(chatID, "❌ Файлы принимаются только от менеджеров.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxCatalogFileSize {
		h.sendMessage(chatID, "❌ Размер файла не должен превышать 5MB!")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(chatID, "❌ Принимаются только файлы Excel (.xlsx)!")
		return
	}

	h.sendMessage(chatID, "⏳ Файл загружается и обрабатывается...")

	fileBytes, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		h.logger.Error("file download failed", zap.Error(err))
		h.sendMessage(chatID, "❌ Не удалось загрузить файл.")
		return
	}

	count, err := h.productUseCase.ImportCatalog(ctx, fileBytes, doc.FileName)
	if err != nil {
		h.logger.Error("catalog import failed", zap.String("file", doc.FileName), zap.Error(err))
		h.sendMessage(chatID, fmt.Sprintf("❌ Ошибка обновления каталога: %v", err))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Каталог обновлён!\n\n📦 Товаров: %d\n📄 Файл: %s\n\n/info — сведения о каталоге", count, doc.FileName))
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCatalogFileSize+1))
}

func (h *BotHandler) isManagerChat(chatID int64) bool {
	return h.managerChatID != 0 && chatID == h.managerChatID
}

// handleCallback inline tugmalarni qayta ishlash
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	action, arg := parseCallback(cq.Data)

	var toast string
	switch action {
	case "add":
		toast = h.addToCart(ctx, chatID, arg)
	case "inc", "dec":
		toast = h.stepQuantity(ctx, chatID, arg, action == "inc")
	case "rm":
		h.removeFromCart(ctx, chatID, arg)
	case "clear":
		h.clearCart(ctx, chatID)
		toast = "Корзина очищена"
	case "order":
		h.startOrder(ctx, chatID)
	case "quiz":
		toast = h.handleQuizAnswer(ctx, cq, arg)
	case "noop":
	case "interest":
		h.startInterest(chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cq.Data))
	}

	// Callback ga javob (spinnerni to'xtatish)
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, toast)); err != nil {
		h.logger.Debug("callback answer failed", zap.Error(err))
	}
}

// parseCallback "action:arg" ni ajratish
func parseCallback(data string) (string, string) {
	action, arg, _ := strings.Cut(data, ":")
	return action, arg
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (h *BotHandler) sendMessageWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// sendMessageWithResp yuborilgan xabarni qaytarish
func (h *BotHandler) sendMessageWithResp(chatID int64, text string, markup interface{}) (*tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	sent, err := h.bot.Send(msg)
	if err != nil {
		h.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
		return nil, err
	}
	return &sent, nil
}

func (h *BotHandler) getWelcomeMessage() string {
	return `🐟 Добро пожаловать в магазин икры!

Камчатская красная и отборная чёрная икра с доставкой.

/catalog — каталог
/quiz — подобрать икру за 7 вопросов
/cart — корзина
/help — все команды`
}

func (h *BotHandler) getHelpMessage() string {
	return `📖 Команды:

/catalog — весь каталог
/catalog premium — категория (premium, classic, gift, wholesale, black)
/search кета — поиск
/cart — корзина
/clear — очистить корзину
/order — оформить заказ
/quiz — подбор икры
/contact — заказать обратный звонок
/info — сведения о каталоге
/cancel — отменить ввод

Просто напишите название — я найду товар.`
}

// GetBotUsername bot username
func (h *BotHandler) GetBotUsername() string {
	return h.username
}
