package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

type memoryLeadJournal struct {
	mu      sync.RWMutex
	records []entity.LeadRecord
	maxSize int
}

// NewMemoryLeadJournal in-memory lead jurnali (maxSize dan oshganlari kesiladi)
func NewMemoryLeadJournal(maxSize int) repository.LeadJournal {
	return &memoryLeadJournal{maxSize: maxSize}
}

// Save yozuvni saqlash
func (m *memoryLeadJournal) Save(ctx context.Context, record entity.LeadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	m.records = append(m.records, record)

	// Maksimal hajmni nazorat qilish
	if m.maxSize > 0 && len(m.records) > m.maxSize {
		m.records = m.records[len(m.records)-m.maxSize:]
	}
	return nil
}

// MarkDelivered yuborilganini belgilash
func (m *memoryLeadJournal) MarkDelivered(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.records {
		if m.records[i].ID == id {
			m.records[i].Delivered = true
			return nil
		}
	}
	return fmt.Errorf("lead not found: %s", id)
}

// Recent so'nggi yozuvlar (yangidan eskiga)
func (m *memoryLeadJournal) Recent(ctx context.Context, limit int) ([]entity.LeadRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.LeadRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.records[i])
	}
	return out, nil
}
