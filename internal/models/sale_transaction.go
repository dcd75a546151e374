package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleTransaction: one row per completed sale. DailyID is the per-calendar-day
// ticket number shown on receipts; it restarts at 1 every day. It is nullable
// because rows written before the column existed carry no number.
type SaleTransaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	DailyID   *int            `gorm:"index" json:"daily_id"`
	Date      string          `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Items     string          `gorm:"size:500;not null" json:"items"`     // "Pen x3, Eraser x1"
	Total     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

func (SaleTransaction) TableName() string { return "transactions" }
