package repository

import (
	"context"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
)

// LeadSender leadni tashqi endpointga yuborish
type LeadSender interface {
	Submit(ctx context.Context, lead entity.Lead) error
}

// Messenger menejer chatiga matnli xabar yuborish
type Messenger interface {
	Send(ctx context.Context, text string) error
}

// LeadJournal qabul qilingan leadlar jurnali
type LeadJournal interface {
	// Save yozuvni saqlash
	Save(ctx context.Context, record entity.LeadRecord) error

	// MarkDelivered yuborilganini belgilash
	MarkDelivered(ctx context.Context, id string) error

	// Recent so'nggi limit ta yozuv (yangidan eskiga)
	Recent(ctx context.Context, limit int) ([]entity.LeadRecord, error)
}
