package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
)

type sqliteLeadJournal struct {
	db *sql.DB
}

// NewSQLiteLeadJournal SQLite asosidagi lead jurnali
func NewSQLiteLeadJournal(db *sql.DB) repository.LeadJournal {
	return &sqliteLeadJournal{db: db}
}

// Save yozuvni saqlash
func (s *sqliteLeadJournal) Save(ctx context.Context, record entity.LeadRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO leads (id, type, text, payload, delivered, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, string(record.Type), record.Text, []byte(record.Payload), record.Delivered, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("lead saqlanmadi: %w", err)
	}
	return nil
}

// MarkDelivered yuborilganini belgilash
func (s *sqliteLeadJournal) MarkDelivered(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE leads SET delivered = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("lead not found: %s", id)
	}
	return nil
}

// Recent so'nggi yozuvlar
func (s *sqliteLeadJournal) Recent(ctx context.Context, limit int) ([]entity.LeadRecord, error) {
	query := `SELECT id, type, text, payload, delivered, ts FROM leads ORDER BY ts DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entity.LeadRecord
	for rows.Next() {
		var rec entity.LeadRecord
		var typ string
		var payload []byte
		if err := rows.Scan(&rec.ID, &typ, &rec.Text, &payload, &rec.Delivered, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Type = entity.LeadType(typ)
		rec.Payload = payload
		records = append(records, rec)
	}
	return records, rows.Err()
}
