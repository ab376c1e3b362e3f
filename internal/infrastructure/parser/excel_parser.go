package parser

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// CatalogSheet eksport qilinadigan sheet nomi
const CatalogSheet = "Catalog"

// featureSeparator xususiyatlar bitta katakda shu belgi bilan ajratiladi
const featureSeparator = ";"

var exportHeader = []string{"ID", "Название", "Описание", "Цена", "Вес", "Изображение", "Категория", "Особенности", "В наличии"}

type excelParser struct {
	logger *zap.Logger
}

// NewExcelParser yangi Excel parser yaratish
func NewExcelParser(logger *zap.Logger) repository.ExcelParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excelParser{logger: logger}
}

// ParseProducts Excel fayldan mahsulotlarni o'qish
func (e *excelParser) ParseProducts(ctx context.Context, filePath string) ([]entity.Product, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel file: %w", err)
	}
	defer f.Close()

	return e.parseExcelFile(f)
}

// ParseProductsFromBytes byte array dan parse qilish
func (e *excelParser) ParseProductsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open excel from bytes: %w", err)
	}
	defer f.Close()

	products, err := e.parseExcelFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return products, nil
}

// WriteProducts katalogni xlsx ga yozish (ParseProducts bilan mos format)
func (e *excelParser) WriteProducts(ctx context.Context, products []entity.Product) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", CatalogSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(CatalogSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		inStock := "нет"
		if p.InStock {
			inStock = "да"
		}
		row := []interface{}{
			p.ID, p.Name, p.Description, p.Price, p.Weight, p.Image, p.Category,
			strings.Join(p.Features, featureSeparator+" "), inStock,
		}
		if err := f.SetSheetRow(CatalogSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// parseExcelFile birinchi sheetni parse qilish. Birinchi qator - sarlavha.
func (e *excelParser) parseExcelFile(f *excelize.File) ([]entity.Product, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("excel file has no data")
	}

	columnMap := e.mapColumns(rows[0])
	nameCol, okName := columnMap["name"]
	priceCol, okPrice := columnMap["price"]
	if !okName || !okPrice {
		return nil, fmt.Errorf("header must contain name and price columns")
	}
	e.logger.Debug("excel column mapping", zap.Any("columns", columnMap), zap.Int("rows", len(rows)))

	seen := make(map[string]bool)
	var products []entity.Product
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		name := cellAt(row, nameCol)
		priceStr := cellAt(row, priceCol)
		if name == "" || priceStr == "" {
			continue
		}

		price, err := parsePrice(priceStr)
		if err != nil || price <= 0 {
			e.logger.Warn("invalid price, skipping row", zap.Int("row", i+1), zap.String("price", priceStr))
			continue
		}

		product := entity.Product{
			ID:       e.column(row, columnMap, "id"),
			Name:     name,
			Price:    price,
			InStock:  true,
			Category: strings.ToLower(e.column(row, columnMap, "category")),
		}
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		if seen[product.ID] {
			e.logger.Warn("duplicate product id, skipping row", zap.Int("row", i+1), zap.String("id", product.ID))
			continue
		}
		seen[product.ID] = true

		product.Description = e.column(row, columnMap, "description")
		product.Weight = e.column(row, columnMap, "weight")
		product.Image = e.column(row, columnMap, "image")
		product.Features = splitFeatures(e.column(row, columnMap, "features"))
		if raw := e.column(row, columnMap, "stock"); raw != "" {
			product.InStock = parseBool(raw)
		}

		products = append(products, product)
	}

	return products, nil
}

func (e *excelParser) column(row []string, columnMap map[string]int, key string) string {
	idx, ok := columnMap[key]
	if !ok {
		return ""
	}
	return cellAt(row, idx)
}

// mapColumns sarlavhadan ustunlar xaritasini yaratish
func (e *excelParser) mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int)

	for i, col := range header {
		colName := strings.ToLower(strings.TrimSpace(col))
		if colName == "" {
			continue
		}

		var key string
		switch {
		case colName == "id" || contains(colName, "артикул", "sku", "slug"):
			key = "id"
		case contains(colName, "description", "описание", "tavsif"):
			key = "description"
		case contains(colName, "name", "название", "наименование", "товар", "nomi"):
			key = "name"
		case contains(colName, "price", "цена", "стоимость", "narx"):
			key = "price"
		case contains(colName, "weight", "вес", "фасовка"):
			key = "weight"
		case contains(colName, "image", "изображение", "фото", "картинка"):
			key = "image"
		case contains(colName, "category", "категория", "kategoriya"):
			key = "category"
		case contains(colName, "feature", "особенност", "характеристик"):
			key = "features"
		case contains(colName, "stock", "наличи", "available"):
			key = "stock"
		default:
			continue
		}
		if _, exists := columnMap[key]; !exists {
			columnMap[key] = i
		}
	}

	return columnMap
}

func contains(str string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(str, keyword) {
			return true
		}
	}
	return false
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parsePrice "5 500 ₽", "5500 руб.", "5500.00" kabi formatlarni o'qish
func parsePrice(priceStr string) (int64, error) {
	priceStr = strings.ToLower(strings.TrimSpace(priceStr))
	if priceStr == "" {
		return 0, fmt.Errorf("empty price")
	}

	for _, junk := range []string{" ", " ", " ", "₽", "руб.", "руб", "р.", "rub"} {
		priceStr = strings.ReplaceAll(priceStr, junk, "")
	}
	priceStr = strings.ReplaceAll(priceStr, ",", ".")

	value, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}
	return int64(math.Round(value)), nil
}

func splitFeatures(raw string) []string {
	if raw == "" {
		return nil
	}
	var features []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == '|' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			features = append(features, part)
		}
	}
	return features
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "нет", "no", "false", "0", "-":
		return false
	default:
		return true
	}
}
