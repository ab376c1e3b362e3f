package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// ProductUseCase mahsulot bilan bog'liq business logic
type ProductUseCase interface {
	// Search mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// GetByID ID bo'yicha mahsulot
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// GetByCategory kategoriya bo'yicha mahsulotlarni olish
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)

	// GetAll barcha mahsulotlarni olish
	GetAll(ctx context.Context) ([]entity.Product, error)

	// GetProductsAsText mahsulotlarni text formatda olish
	GetProductsAsText(ctx context.Context) (string, error)

	// GetCatalogInfo katalog haqida ma'lumot
	GetCatalogInfo(ctx context.Context) (string, error)

	// ImportCatalog Excel fayldan katalogni almashtirish
	ImportCatalog(ctx context.Context, data []byte, filename string) (int, error)

	// ExportCatalog katalogni xlsx ga yozish
	ExportCatalog(ctx context.Context) ([]byte, error)
}

type productUseCase struct {
	productRepo repository.ProductRepository
	excelParser repository.ExcelParser
	logger      *zap.Logger
}

// NewProductUseCase yangi ProductUseCase yaratish
func NewProductUseCase(productRepo repository.ProductRepository, excelParser repository.ExcelParser, logger *zap.Logger) ProductUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &productUseCase{
		productRepo: productRepo,
		excelParser: excelParser,
		logger:      logger,
	}
}

// Search mahsulot qidirish
func (u *productUseCase) Search(ctx context.Context, query string) ([]entity.Product, error) {
	return u.productRepo.Search(ctx, query)
}

// GetByID ID bo'yicha mahsulot
func (u *productUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (u *productUseCase) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return u.productRepo.GetByCategory(ctx, category)
}

// GetAll barcha mahsulotlarni olish
func (u *productUseCase) GetAll(ctx context.Context) ([]entity.Product, error) {
	return u.productRepo.GetAll(ctx)
}

// GetProductsAsText mahsulotlarni kategoriyalar bo'yicha matn qilish
func (u *productUseCase) GetProductsAsText(ctx context.Context) (string, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}

	if len(products) == 0 {
		return "", fmt.Errorf("no products available")
	}

	// Kategoriyalar bo'yicha guruhlash (birinchi uchragan tartibda)
	var categories []string
	byCategory := make(map[string][]entity.Product)
	for _, product := range products {
		category := product.Category
		if category == "" {
			category = "other"
		}
		if _, seen := byCategory[category]; !seen {
			categories = append(categories, category)
		}
		byCategory[category] = append(byCategory[category], product)
	}

	var sb strings.Builder
	for _, category := range categories {
		sb.WriteString(fmt.Sprintf("📂 %s:\n", CategoryTitle(category)))
		for i, p := range byCategory[category] {
			sb.WriteString(fmt.Sprintf("%d. %s — %s ₽ / %s", i+1, p.Name, entity.FormatPrice(p.Price), p.Weight))
			if !p.InStock {
				sb.WriteString(" (нет в наличии)")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

// GetCatalogInfo katalog haqida ma'lumot
func (u *productUseCase) GetCatalogInfo(ctx context.Context) (string, error) {
	catalog, err := u.productRepo.GetCatalog(ctx)
	if err != nil {
		return "", err
	}

	// Kategoriyalarni sanash
	var order []string
	counts := make(map[string]int)
	for _, product := range catalog.Products {
		if _, seen := counts[product.Category]; !seen {
			order = append(order, product.Category)
		}
		counts[product.Category]++
	}

	info := fmt.Sprintf("📦 Каталог: %s\n", catalog.Source)
	if !catalog.UpdatedAt.IsZero() {
		info += fmt.Sprintf("📅 Обновлён: %s\n", catalog.UpdatedAt.Format("2006-01-02 15:04"))
	}
	info += fmt.Sprintf("📊 Всего товаров: %d\n\n", len(catalog.Products))
	info += "📂 Категории:\n"
	for _, cat := range order {
		info += fmt.Sprintf("  • %s: %d\n", CategoryTitle(cat), counts[cat])
	}

	return info, nil
}

// ImportCatalog Excel fayldan katalogni yuklash
func (u *productUseCase) ImportCatalog(ctx context.Context, data []byte, filename string) (int, error) {
	if u.excelParser == nil {
		return 0, fmt.Errorf("excel parser is not configured")
	}

	products, err := u.excelParser.ParseProductsFromBytes(ctx, data, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse excel: %w", err)
	}

	if len(products) == 0 {
		return 0, fmt.Errorf("no products found in excel file")
	}

	catalog := entity.ProductCatalog{
		Products:  products,
		UpdatedAt: time.Now(),
		Source:    filename,
	}

	if err := u.productRepo.UpdateCatalog(ctx, catalog); err != nil {
		return 0, fmt.Errorf("failed to update catalog: %w", err)
	}

	u.logger.Info("catalog imported", zap.String("source", filename), zap.Int("products", len(products)))
	return len(products), nil
}

// ExportCatalog katalogni xlsx ga yozish
func (u *productUseCase) ExportCatalog(ctx context.Context) ([]byte, error) {
	if u.excelParser == nil {
		return nil, fmt.Errorf("excel parser is not configured")
	}
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.excelParser.WriteProducts(ctx, products)
}

// CategoryTitle kategoriya tegining ruscha nomi
func CategoryTitle(category string) string {
	switch category {
	case entity.CategoryPremium:
		return "Премиум"
	case entity.CategoryClassic:
		return "Классика"
	case entity.CategoryGift:
		return "Подарочные наборы"
	case entity.CategoryWholesale:
		return "Опт"
	case entity.CategoryBlack:
		return "Чёрная икра"
	default:
		return category
	}
}
