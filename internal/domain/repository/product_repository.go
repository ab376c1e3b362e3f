package repository

import (
	"context"
	"errors"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
)

// ErrProductNotFound mahsulot topilmadi
var ErrProductNotFound = errors.New("product not found")

// ProductRepository mahsulotlar bilan ishlash uchun interface
type ProductRepository interface {
	// GetByID ID bo'yicha mahsulotni olish
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// Search mahsulot qidirish
	Search(ctx context.Context, query string) ([]entity.Product, error)

	// GetByCategory kategoriya bo'yicha mahsulotlarni olish
	GetByCategory(ctx context.Context, category string) ([]entity.Product, error)

	// GetAll barcha mahsulotlarni katalog tartibida olish
	GetAll(ctx context.Context) ([]entity.Product, error)

	// UpdateCatalog butun katalogni almashtirish
	UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error

	// GetCatalog katalogni olish
	GetCatalog(ctx context.Context) (*entity.ProductCatalog, error)
}
