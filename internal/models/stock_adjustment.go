package models

import "time"

// StockAdjustment: one row per stock-affecting event. Manual restock writes a
// positive delta, a sale writes a negative one. Rows are never updated.
type StockAdjustment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ItemID     uint      `gorm:"index;not null" json:"item_id"`
	Item       Item      `json:"-"`
	Adjustment int       `gorm:"not null" json:"adjustment"` // signed delta
	CreatedAt  time.Time `json:"created_at"`
}

func (StockAdjustment) TableName() string { return "stock_history" }
