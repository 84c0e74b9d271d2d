package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kiezjagd_backend/internals/features/checkout/invoices/model"
	"kiezjagd_backend/internals/helpers/dbtime"
)

type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// Next atomically bumps today's counter and returns R-YYYYMMDD-0001 style numbers.
func (s *InvoiceService) Next(ctx context.Context, now time.Time) (string, error) {
	day := dbtime.DayStamp(now)
	row := model.InvoiceCounterModel{CounterName: CounterName(day), CounterSeq: 1}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "counter_name"}},
				DoUpdates: clause.Assignments(map[string]any{"counter_seq": gorm.Expr("invoice_counters.counter_seq + 1")}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "counter_seq"}}},
		).
		Create(&row).Error
	if err != nil {
		return "", err
	}
	return Format(day, row.CounterSeq), nil
}

func CounterName(day string) string { return "invoice-" + day }

func Format(day string, seq int64) string {
	return fmt.Sprintf("R-%s-%04d", day, seq)
}
