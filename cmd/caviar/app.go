package main

import (
	"context"
	"database/sql"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/caviar-shop/config"
	"github.com/yourusername/caviar-shop/internal/delivery/telegram"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"github.com/yourusername/caviar-shop/internal/infrastructure/broadcast"
	"github.com/yourusername/caviar-shop/internal/infrastructure/leadclient"
	"github.com/yourusername/caviar-shop/internal/infrastructure/notify"
	"github.com/yourusername/caviar-shop/internal/infrastructure/parser"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"github.com/yourusername/caviar-shop/internal/usecase"
	"go.uber.org/zap"
)

// app jarayon bo'ylab umumiy bog'liqliklar
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	db          *sql.DB
	productRepo repository.ProductRepository
	excelParser repository.ExcelParser
	kv          repository.KeyValueStore
	journal     repository.LeadJournal
	bus         *broadcast.Bus
	bot         *tgbotapi.BotAPI

	products usecase.ProductUseCase
}

// newApp katalogni tayyorlash. Ombor va Telegram kerak bo'lganda ochiladi.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{
		cfg:         cfg,
		logger:      logger,
		productRepo: storage.NewBuiltinProductRepository(),
		excelParser: parser.NewExcelParser(logger.Named("parser")),
		bus:         broadcast.NewBus(),
	}
	a.products = usecase.NewProductUseCase(a.productRepo, a.excelParser, logger.Named("catalog"))

	if cfg.CatalogXLSX != "" {
		if err := a.loadCatalogFile(ctx, cfg.CatalogXLSX); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// openStorage savatcha slotlari va lead jurnali uchun sqlite
func (a *app) openStorage() error {
	if a.db != nil {
		return nil
	}
	db, err := storage.OpenSQLite(a.cfg.DBPath)
	if err != nil {
		return err
	}
	a.db = db
	a.kv = storage.NewSQLiteKeyValueStore(db)
	a.journal = storage.NewSQLiteLeadJournal(db)
	a.logger.Debug("storage opened", zap.String("path", a.cfg.DBPath))
	return nil
}

// loadCatalogFile ishga tushishda xlsx katalogni yuklash
func (a *app) loadCatalogFile(ctx context.Context, path string) error {
	products, err := a.excelParser.ParseProducts(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", path, err)
	}
	if len(products) == 0 {
		return fmt.Errorf("catalog %s has no products", path)
	}

	catalog := storage.DefaultCatalog()
	catalog.Products = products
	catalog.Source = path
	if err := a.productRepo.UpdateCatalog(ctx, catalog); err != nil {
		return err
	}
	a.logger.Info("catalog loaded", zap.String("path", path), zap.Int("products", len(products)))
	return nil
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}

// botAPI bitta BotAPI ni bot va messenger o'rtasida bo'lishish
func (a *app) botAPI() (*tgbotapi.BotAPI, error) {
	if a.bot != nil {
		return a.bot, nil
	}
	if a.cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	bot, err := tgbotapi.NewBotAPI(a.cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	a.bot = bot
	return bot, nil
}

// messenger menejer chati; ma'lumotlar bo'lmasa nil
func (a *app) messenger() (repository.Messenger, error) {
	if !a.cfg.HasMessenger() {
		a.logger.Warn("telegram credentials not configured, leads will be rejected")
		return nil, nil
	}
	bot, err := a.botAPI()
	if err != nil {
		return nil, err
	}
	return notify.NewMessenger(bot, a.cfg.ManagerChatID), nil
}

func (a *app) relay() (usecase.RelayUseCase, error) {
	messenger, err := a.messenger()
	if err != nil {
		return nil, err
	}
	return usecase.NewRelayUseCase(messenger, a.journal, a.logger.Named("relay")), nil
}

// leadSender tashqi endpoint bo'lsa HTTP, aks holda shu jarayondagi relay
func (a *app) leadSender() (repository.LeadSender, error) {
	if a.cfg.LeadEndpointURL != "" {
		return leadclient.NewHTTPLeadSender(a.cfg.LeadEndpointURL, a.cfg.LeadTimeout, a.logger.Named("leadclient")), nil
	}
	relay, err := a.relay()
	if err != nil {
		return nil, err
	}
	return usecase.NewRelaySender(relay), nil
}

// cartFor chat uchun sqlite slotidagi savatcha
func (a *app) cartFor(chatID int64) usecase.CartUseCase {
	topic := telegram.CartTopic(chatID)
	return usecase.NewCartUseCase(storage.Namespace(a.kv, topic), a.bus, topic, a.logger.Named("cart"))
}

func (a *app) botHandler() (*telegram.BotHandler, error) {
	bot, err := a.botAPI()
	if err != nil {
		return nil, err
	}
	sender, err := a.leadSender()
	if err != nil {
		return nil, err
	}

	return telegram.NewBotHandler(bot, bot.Self.UserName, telegram.Deps{
		Products:      a.products,
		Quiz:          usecase.NewQuizUseCase(a.productRepo, sender, a.cfg.LeadTimeout, a.logger.Named("quiz")),
		Leads:         usecase.NewLeadUseCase(sender, a.productRepo, a.logger.Named("leads")),
		Carts:         a.cartFor,
		Subscriber:    a.bus,
		ManagerChatID: a.cfg.ManagerChatID,
		FallbackPhone: a.cfg.FallbackPhone,
		Logger:        a.logger.Named("bot"),
	}), nil
}
