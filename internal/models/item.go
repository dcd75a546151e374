package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(12,2)" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Item) TableName() string { return "items" }
