package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Standart qiymatlar
const (
	DefaultHTTPAddr      = ":8080"
	DefaultDBPath        = "data/caviar.db"
	DefaultFallbackPhone = "+7 (905) 178-57-69"
	DefaultLogLevel      = "info"
	DefaultLeadTimeout   = 10 * time.Second
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken   string        `yaml:"telegram_bot_token"`
	ManagerChatID   int64         `yaml:"telegram_chat_id"`
	LeadEndpointURL string        `yaml:"lead_endpoint_url"`
	HTTPAddr        string        `yaml:"http_addr"`
	DBPath          string        `yaml:"db_path"`
	CatalogXLSX     string        `yaml:"catalog_xlsx"`
	FallbackPhone   string        `yaml:"fallback_phone"`
	LogLevel        string        `yaml:"log_level"`
	LeadTimeout     time.Duration `yaml:"lead_timeout"`
}

// Load konfiguratsiyani yuklash: .env, CONFIG_FILE (yaml), keyin environment
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv berilgan lookup funksiyasi orqali konfiguratsiya yig'ish
func FromEnv(getenv func(string) string) (*Config, error) {
	config := &Config{
		HTTPAddr:      DefaultHTTPAddr,
		DBPath:        DefaultDBPath,
		FallbackPhone: DefaultFallbackPhone,
		LogLevel:      DefaultLogLevel,
		LeadTimeout:   DefaultLeadTimeout,
	}

	if path := getenv("CONFIG_FILE"); path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, err
		}
	}

	setString(&config.TelegramToken, getenv("TELEGRAM_BOT_TOKEN"))
	setString(&config.LeadEndpointURL, getenv("LEAD_ENDPOINT_URL"))
	setString(&config.HTTPAddr, getenv("HTTP_ADDR"))
	setString(&config.DBPath, getenv("DB_PATH"))
	setString(&config.CatalogXLSX, getenv("CATALOG_XLSX"))
	setString(&config.FallbackPhone, getenv("FALLBACK_PHONE"))
	setString(&config.LogLevel, getenv("LOG_LEVEL"))

	if raw := strings.TrimSpace(getenv("TELEGRAM_CHAT_ID")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID noto'g'ri formatda: %w", err)
		}
		config.ManagerChatID = parsed
	}

	if raw := strings.TrimSpace(getenv("LEAD_TIMEOUT")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("LEAD_TIMEOUT noto'g'ri formatda: %w", err)
		}
		config.LeadTimeout = parsed
	}

	return config, nil
}

// mergeFile yaml fayldagi bo'sh bo'lmagan qiymatlarni qo'shish
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config faylini o'qib bo'lmadi: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("config fayli noto'g'ri: %w", err)
	}

	setString(&c.TelegramToken, file.TelegramToken)
	setString(&c.LeadEndpointURL, file.LeadEndpointURL)
	setString(&c.HTTPAddr, file.HTTPAddr)
	setString(&c.DBPath, file.DBPath)
	setString(&c.CatalogXLSX, file.CatalogXLSX)
	setString(&c.FallbackPhone, file.FallbackPhone)
	setString(&c.LogLevel, file.LogLevel)
	if file.ManagerChatID != 0 {
		c.ManagerChatID = file.ManagerChatID
	}
	if file.LeadTimeout > 0 {
		c.LeadTimeout = file.LeadTimeout
	}
	return nil
}

func setString(dst *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = value
	}
}

// HasMessenger menejer chatiga yuborish uchun ma'lumotlar bormi
func (c *Config) HasMessenger() bool {
	return c.TelegramToken != "" && c.ManagerChatID != 0
}

// ValidateServer lead endpoint uchun tekshiruv.
// Telegram ma'lumotlari bo'lmasa ham server ishlaydi va 500 qaytaradi.
func (c *Config) ValidateServer() error {
	var errs []error
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("HTTP_ADDR bo'sh"))
	}
	if c.LeadTimeout <= 0 {
		errs = append(errs, errors.New("LEAD_TIMEOUT musbat bo'lishi kerak"))
	}
	return errors.Join(errs...)
}

// ValidateBot do'kon boti uchun tekshiruv
func (c *Config) ValidateBot() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN environment variable bo'sh"))
	}
	// Endpoint bo'lmasa leadlar to'g'ridan-to'g'ri menejer chatiga yuboriladi
	if c.LeadEndpointURL == "" && c.ManagerChatID == 0 {
		errs = append(errs, errors.New("LEAD_ENDPOINT_URL yoki TELEGRAM_CHAT_ID kerak"))
	}
	if c.LeadTimeout <= 0 {
		errs = append(errs, errors.New("LEAD_TIMEOUT musbat bo'lishi kerak"))
	}
	return errors.Join(errs...)
}

// NewLogger LogLevel bo'yicha zap logger yaratish
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL noto'g'ri: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.Encoding = "console"
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	return zc.Build()
}
