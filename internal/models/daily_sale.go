package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySale: running revenue total per calendar date. Created lazily on the
// first sale of the day, afterwards only ever incremented.
type DailySale struct {
	Date        string          `gorm:"primaryKey;size:10" json:"date"` // YYYY-MM-DD
	TotalIncome decimal.Decimal `gorm:"not null;type:decimal(14,2)" json:"total_income"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (DailySale) TableName() string { return "daily_sales" }
