package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	order    []string                  // katalog tartibi
	products map[string]entity.Product // key: product ID
	catalog  *entity.ProductCatalog
}

// NewMemoryProductRepository in-memory product repository yaratish
func NewMemoryProductRepository(catalog entity.ProductCatalog) repository.ProductRepository {
	m := &memoryProductRepository{}
	m.replace(catalog)
	return m
}

// NewBuiltinProductRepository standart katalog bilan repository
func NewBuiltinProductRepository() repository.ProductRepository {
	return NewMemoryProductRepository(DefaultCatalog())
}

func (m *memoryProductRepository) replace(catalog entity.ProductCatalog) {
	m.order = make([]string, 0, len(catalog.Products))
	m.products = make(map[string]entity.Product, len(catalog.Products))
	for _, product := range catalog.Products {
		if _, dup := m.products[product.ID]; !dup {
			m.order = append(m.order, product.ID)
		}
		m.products[product.ID] = product
	}
	m.catalog = &catalog
}

// GetByID ID bo'yicha mahsulotni olish
func (m *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	product, exists := m.products[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrProductNotFound, id)
	}
	return &product, nil
}

// Search mahsulot qidirish
func (m *memoryProductRepository) Search(ctx context.Context, query string) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	tokens := queryTokens(query)

	var results []entity.Product
	for _, id := range m.order {
		product := m.products[id]
		haystack := strings.ToLower(strings.Join(append([]string{
			product.Name, product.Description, product.Category, product.ID,
		}, product.Features...), " "))

		if strings.Contains(haystack, query) || matchAllTokens(tokens, haystack) {
			results = append(results, product)
		}
	}
	return results, nil
}

// GetByCategory kategoriya bo'yicha mahsulotlarni olish
func (m *memoryProductRepository) GetByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	category = strings.ToLower(strings.TrimSpace(category))
	var results []entity.Product

	for _, id := range m.order {
		product := m.products[id]
		if strings.ToLower(product.Category) == category {
			results = append(results, product)
		}
	}

	return results, nil
}

// GetAll barcha mahsulotlarni olish
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, 0, len(m.order))
	for _, id := range m.order {
		products = append(products, m.products[id])
	}

	return products, nil
}

// UpdateCatalog butun katalogni yangilash
func (m *memoryProductRepository) UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if catalog.UpdatedAt.IsZero() {
		catalog.UpdatedAt = time.Now()
	}
	m.replace(catalog)
	return nil
}

// GetCatalog katalogni olish
func (m *memoryProductRepository) GetCatalog(ctx context.Context) (*entity.ProductCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, fmt.Errorf("catalog not found")
	}

	catalog := *m.catalog
	return &catalog, nil
}

// Qidiruv yordamchi funksiyalar
func queryTokens(q string) []string {
	separators := []string{",", ".", "?", "!", ";", ":", "/", "\\", "-", "_", "\""}
	for _, sep := range separators {
		q = strings.ReplaceAll(q, sep, " ")
	}

	var tokens []string
	for _, f := range strings.Fields(q) {
		if len([]rune(f)) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func matchAllTokens(tokens []string, haystack string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}
