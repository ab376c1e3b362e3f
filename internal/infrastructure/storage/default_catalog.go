package storage

import (
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
)

const imageBase = "https://cdn.poehali.dev/projects/c5a0e973-2c22-4703-9858-8c5d2cf6fb75/files/"

const (
	imageRed   = imageBase + "3cf5f1db-0a37-4dc7-9e45-684c93b8085d.jpg"
	imageRed2  = imageBase + "35ed52f9-6d71-4d5a-b665-2f9752703e04.jpg"
	imageGift  = imageBase + "a805a0e1-eb09-4142-a586-3b54e2b3004a.jpg"
	imageBlack = imageBase + "c3abc963-c76d-45bf-8c2e-a44ee3124fde.jpg"
)

// DefaultCatalog do'konning standart 11 ta mahsuloti
func DefaultCatalog() entity.ProductCatalog {
	return entity.ProductCatalog{
		Products:  defaultProducts(),
		UpdatedAt: time.Time{},
		Source:    "builtin",
	}
}

func defaultProducts() []entity.Product {
	return []entity.Product{
		{
			ID:          "keta-premium",
			Name:        "Кета премиум",
			Description: "Крупная икра насыщенного оранжево-красного цвета с деликатным вкусом",
			Price:       5500,
			Weight:      "1 кг",
			Image:       imageRed,
			Category:    entity.CategoryPremium,
			Features:    []string{"Крупные икринки 5-6 мм", "Насыщенный вкус", "Высшая категория"},
			InStock:     true,
		},
		{
			ID:          "gorbuscha-classic",
			Name:        "Горбуша классик",
			Description: "Традиционный выбор с ярким вкусом и средним размером икринок",
			Price:       4200,
			Weight:      "1 кг",
			Image:       imageRed2,
			Category:    entity.CategoryClassic,
			Features:    []string{"Икринки 4-5 мм", "Классический вкус", "Лучшая цена"},
			InStock:     true,
		},
		{
			ID:          "nerka-elite",
			Name:        "Нерка элит",
			Description: "Редкая икра с пикантным вкусом и мелкими икринками",
			Price:       6200,
			Weight:      "1 кг",
			Image:       imageRed,
			Category:    entity.CategoryPremium,
			Features:    []string{"Уникальный вкус", "Мелкие икринки 3-4 мм", "Ограниченная партия"},
			InStock:     true,
		},
		{
			ID:          "kijuch-gold",
			Name:        "Кижуч голд",
			Description: "Икра с нежным вкусом и характерной горчинкой",
			Price:       4800,
			Weight:      "1 кг",
			Image:       imageRed2,
			Category:    entity.CategoryClassic,
			Features:    []string{"Средние икринки 4 мм", "Нежный вкус", "Для гурманов"},
			InStock:     true,
		},
		{
			ID:          "chawych-royal",
			Name:        "Чавыча роял",
			Description: "Королевская икра с самыми крупными икринками",
			Price:       7500,
			Weight:      "1 кг",
			Image:       imageRed,
			Category:    entity.CategoryPremium,
			Features:    []string{"Гигантские икринки 6-7 мм", "Королевский сорт", "Эксклюзив"},
			InStock:     true,
		},
		{
			ID:          "gift-set-luxury",
			Name:        "Подарочный набор \"Люкс\"",
			Description: "Элегантная упаковка с золотой лентой, 3 вида икры",
			Price:       18000,
			Weight:      "3 кг (3x1кг)",
			Image:       imageGift,
			Category:    entity.CategoryGift,
			Features:    []string{"3 вида икры", "Подарочная упаковка", "Идеально для подарка"},
			InStock:     true,
		},
		{
			ID:          "gift-set-premium",
			Name:        "Подарочный набор \"Премиум\"",
			Description: "Изысканный набор с кетой и горбушей",
			Price:       9500,
			Weight:      "2 кг (2x1кг)",
			Image:       imageGift,
			Category:    entity.CategoryGift,
			Features:    []string{"2 вида икры", "Красивая упаковка", "Отличная цена"},
			InStock:     true,
		},
		{
			ID:          "wholesale-13kg",
			Name:        "Оптовая партия 13 кг",
			Description: "Минимальная оптовая партия с максимальной выгодой",
			Price:       52000,
			Weight:      "13 кг",
			Image:       imageRed,
			Category:    entity.CategoryWholesale,
			Features:    []string{"Оптовая цена", "Свежий улов", "Для ресторанов"},
			InStock:     true,
		},
		{
			ID:          "beluga-imperial",
			Name:        "Белуга империал",
			Description: "Королева чёрной икры с крупными икринками и нежным вкусом",
			Price:       45000,
			Weight:      "500 г",
			Image:       imageBlack,
			Category:    entity.CategoryBlack,
			Features:    []string{"Крупные икринки 3-4 мм", "Самый деликатный вкус", "Элитный сорт"},
			InStock:     true,
		},
		{
			ID:          "osetr-classic",
			Name:        "Осетр классик",
			Description: "Классическая чёрная икра с насыщенным вкусом",
			Price:       28000,
			Weight:      "500 г",
			Image:       imageBlack,
			Category:    entity.CategoryBlack,
			Features:    []string{"Средние икринки 2-3 мм", "Насыщенный вкус", "Лучшее соотношение цена-качество"},
			InStock:     true,
		},
		{
			ID:          "sevruga-select",
			Name:        "Севрюга селект",
			Description: "Изысканная чёрная икра с пикантным послевкусием",
			Price:       22000,
			Weight:      "500 г",
			Image:       imageBlack,
			Category:    entity.CategoryBlack,
			Features:    []string{"Мелкие икринки 1-2 мм", "Пикантный вкус", "Доступная цена"},
			InStock:     true,
		},
	}
}
