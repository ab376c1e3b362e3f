package entity

// CartItem savatchadagi qator
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Image    string `json:"image"`
	Weight   string `json:"weight"`
}

// LineTotal qator summasi
func (i CartItem) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// CartState saqlanadigan savatcha holati
type CartState struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}

// EmptyCart bo'sh savatcha
func EmptyCart() CartState {
	return CartState{Items: []CartItem{}, Total: 0}
}

// CalculateTotal items bo'yicha jami summani hisoblash
func (s CartState) CalculateTotal() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.LineTotal()
	}
	return total
}

// Count savatchadagi jami donalar soni
func (s CartState) Count() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty savatcha bo'shligini tekshirish
func (s CartState) IsEmpty() bool {
	return len(s.Items) == 0
}
