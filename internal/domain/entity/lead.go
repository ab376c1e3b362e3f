package entity

import (
	"encoding/json"
	"time"
)

// LeadType lead diskriminatori
type LeadType string

const (
	LeadContact LeadType = "contact"
	LeadOrder   LeadType = "order"
	LeadQuiz    LeadType = "quiz"
)

// OrderLine buyurtmadagi mahsulot qatori (price = qator summasi)
type OrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Weight   string `json:"weight,omitempty"`
}

// Lead endpointga yuboriladigan JSON. Type bo'yicha kerakli maydonlar to'ldiriladi.
type Lead struct {
	Type LeadType `json:"type"`

	// contact
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Comment string `json:"comment,omitempty"`

	// order
	Products []OrderLine `json:"products,omitempty"`
	Total    int64       `json:"total,omitempty"`
	Contact  string      `json:"contact,omitempty"`
	Delivery string      `json:"delivery,omitempty"`

	// quiz
	Answers        []QuizAnswer `json:"answers,omitempty"`
	Recommendation string       `json:"recommendation,omitempty"`

	// noma'lum turlar uchun
	Message string `json:"message,omitempty"`
}

// LeadRecord endpoint tomonida saqlanadigan jurnal yozuvi
type LeadRecord struct {
	ID        string
	Type      LeadType
	Text      string
	Payload   json.RawMessage
	Delivered bool
	CreatedAt time.Time
}
