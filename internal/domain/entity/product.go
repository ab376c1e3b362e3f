package entity

import "time"

// Product katalogdagi mahsulot
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int64    `json:"price"` // rubl, butun son
	Weight      string   `json:"weight"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Features    []string `json:"features"`
	InStock     bool     `json:"inStock"`
}

// CartItem savatchaga qo'shiladigan qism
func (p Product) CartItem() CartItem {
	return CartItem{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price,
		Image:  p.Image,
		Weight: p.Weight,
	}
}

// Mahsulot kategoriyalari
const (
	CategoryPremium   = "premium"
	CategoryClassic   = "classic"
	CategoryGift      = "gift"
	CategoryWholesale = "wholesale"
	CategoryBlack     = "black"
)

// ProductCatalog mahsulotlar katalogi
type ProductCatalog struct {
	Products  []Product
	UpdatedAt time.Time
	Source    string // "builtin" yoki Excel fayl nomi
}
