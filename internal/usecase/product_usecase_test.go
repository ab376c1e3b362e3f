package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/caviar-shop/internal/infrastructure/parser"
	"github.com/yourusername/caviar-shop/internal/infrastructure/storage"
	"go.uber.org/zap/zaptest"
)

func newProducts(t *testing.T) ProductUseCase {
	t.Helper()
	logger := zaptest.NewLogger(t)
	return NewProductUseCase(storage.NewBuiltinProductRepository(), parser.NewExcelParser(logger), logger)
}

func TestProducts_TextGroupsByCategory(t *testing.T) {
	text, err := newProducts(t).GetProductsAsText(context.Background())
	require.NoError(t, err)

	assert.Contains(t, text, "📂 Премиум:\n1. Кета премиум — 5 500 ₽ / 1 кг")
	assert.Contains(t, text, "📂 Чёрная икра:\n1. Белуга империал — 45 000 ₽ / 500 г")
	assert.Less(t, strings.Index(text, "Премиум"), strings.Index(text, "Классика"))
}

func TestProducts_CatalogInfo(t *testing.T) {
	info, err := newProducts(t).GetCatalogInfo(context.Background())
	require.NoError(t, err)

	assert.Contains(t, info, "📦 Каталог: builtin")
	assert.Contains(t, info, "Всего товаров: 11")
	assert.Contains(t, info, "• Подарочные наборы: 2")
	assert.Contains(t, info, "• Чёрная икра: 3")
}

func TestProducts_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	products := newProducts(t)

	data, err := products.ExportCatalog(ctx)
	require.NoError(t, err)

	before, err := products.GetAll(ctx)
	require.NoError(t, err)

	count, err := products.ImportCatalog(ctx, data, "catalog.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 11, count)

	after, err := products.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	info, err := products.GetCatalogInfo(ctx)
	require.NoError(t, err)
	assert.Contains(t, info, "📦 Каталог: catalog.xlsx")
	assert.Contains(t, info, "📅 Обновлён:")
}

func TestProducts_ImportRejectsGarbage(t *testing.T) {
	_, err := newProducts(t).ImportCatalog(context.Background(), []byte("not a spreadsheet"), "x.xlsx")
	assert.Error(t, err)

	withoutParser := NewProductUseCase(storage.NewBuiltinProductRepository(), nil, nil)
	_, err = withoutParser.ImportCatalog(context.Background(), nil, "x.xlsx")
	assert.Error(t, err)
}

func TestCategoryTitle(t *testing.T) {
	assert.Equal(t, "Опт", CategoryTitle("wholesale"))
	assert.Equal(t, "misc", CategoryTitle("misc"))
}
