package ledger

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"bakkal-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger owns the sellable catalog, stock levels, the stock history and the
// sale settlement that ties them together. It is handed its database at
// construction so tests can run it against their own connection.
type Ledger struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// ListItems returns the catalog ordered by id.
func (l *Ledger) ListItems() ([]models.Item, error) {
	var items []models.Item
	if err := l.db.Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem creates a catalog entry. The initial stock, when positive, gets a
// matching stock history row in the same transaction so every quantity the
// system has ever held is accounted for.
func (l *Ledger) AddItem(name string, price decimal.Decimal, initialStock int) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidItem)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidItem)
	}
	if initialStock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidItem)
	}

	item := models.Item{Name: name, Price: price, Stock: initialStock}
	err := l.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Item{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		if err := tx.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: %s", ErrDuplicateName, name)
			}
			return err
		}
		if initialStock > 0 {
			return tx.Create(&models.StockAdjustment{ItemID: item.ID, Adjustment: initialStock}).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem renames and/or reprices an item. Stock is not touched here;
// that only ever happens through AdjustStock and SettleSale.
func (l *Ledger) UpdateItem(id uint, name string, price decimal.Decimal) (*models.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidItem)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidItem)
	}

	var item models.Item
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, id)
			}
			return err
		}
		if name != item.Name {
			var count int64
			if err := tx.Model(&models.Item{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return fmt.Errorf("%w: %s", ErrDuplicateName, name)
			}
		}
		item.Name = name
		item.Price = price
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AdjustStock applies a signed delta to an item's stock and appends the
// matching stock history row, atomically. Deltas that would push stock below
// zero are rejected without touching anything.
func (l *Ledger) AdjustStock(itemID uint, delta int) error {
	if delta == 0 {
		return nil
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrItemNotFound, itemID)
			}
			return err
		}
		if item.Stock+delta < 0 {
			return fmt.Errorf("%w: %s has %d, adjustment %d", ErrInsufficientStock, item.Name, item.Stock, delta)
		}
		if err := tx.Model(&item).Update("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Create(&models.StockAdjustment{ItemID: itemID, Adjustment: delta}).Error
	})
}

// RemoveItem deletes an item together with its stock history. Removing an id
// that does not exist is a no-op success, matching how the desktop shell has
// always treated it.
func (l *Ledger) RemoveItem(itemID uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&models.StockAdjustment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Item{}, itemID).Error
	})
}

// GetStock returns the current quantity, 0 when the item does not exist.
func (l *Ledger) GetStock(itemID uint) (int, error) {
	var item models.Item
	if err := l.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return item.Stock, nil
}

// StockHistory lists an item's adjustments, newest first.
func (l *Ledger) StockHistory(itemID uint) ([]models.StockAdjustment, error) {
	var history []models.StockAdjustment
	if err := l.db.Where("item_id = ?", itemID).Order("id DESC").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// SettleSale turns a cart into a completed sale: stock deductions with their
// history rows, a transaction record carrying today's ticket number, and the
// daily revenue increment. The whole thing commits as one unit; any failure
// leaves every table exactly as it was.
//
// expectedTotal is what the shell displayed to the customer. The recorded
// total is always recomputed from current catalog prices; a disagreement is
// logged but does not fail the sale.
func (l *Ledger) SettleSale(cart *Cart, expectedTotal decimal.Decimal) (*models.SaleTransaction, error) {
	if cart == nil || cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	lines := cart.Lines()
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for %s must be positive", ErrInvalidItem, line.ItemName)
		}
	}

	var sale models.SaleTransaction
	err := l.db.Transaction(func(tx *gorm.DB) error {
		// Validate: resolve every line before mutating anything, so a bad
		// line further down the cart can never leave earlier deductions
		// behind.
		items := make([]models.Item, len(lines))
		for i, line := range lines {
			var item models.Item
			if err := tx.Where("name = ?", line.ItemName).First(&item).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrItemNotFound, line.ItemName)
				}
				return err
			}
			if item.Stock < line.Quantity {
				return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, item.Name, item.Stock, line.Quantity)
			}
			items[i] = item
		}

		// Apply: deduct stock, one history row per line.
		total := decimal.Zero
		parts := make([]string, len(lines))
		for i, line := range lines {
			item := items[i]
			if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.StockAdjustment{ItemID: item.ID, Adjustment: -line.Quantity}).Error; err != nil {
				return err
			}
			total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			parts[i] = fmt.Sprintf("%s x%d", item.Name, line.Quantity)
		}

		// Record: the ticket number restarts at 1 each calendar day.
		date := l.now().Format("2006-01-02")
		var maxDaily int
		if err := tx.Model(&models.SaleTransaction{}).Where("date = ?", date).
			Select("COALESCE(MAX(daily_id), 0)").Scan(&maxDaily).Error; err != nil {
			return err
		}
		dailyID := maxDaily + 1
		sale = models.SaleTransaction{
			DailyID: &dailyID,
			Date:    date,
			Items:   strings.Join(parts, ", "),
			Total:   total,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		// Aggregate: create the day's revenue row lazily, then add to it.
		var day models.DailySale
		if err := tx.Where("date = ?", date).First(&day).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			day = models.DailySale{Date: date, TotalIncome: decimal.Zero}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}
		day.TotalIncome = day.TotalIncome.Add(total)
		return tx.Save(&day).Error
	})
	if err != nil {
		return nil, err
	}

	if !expectedTotal.IsZero() && !expectedTotal.Equal(sale.Total) {
		log.Printf("[WARN] settled total %s differs from expected %s (transaction %d)",
			sale.Total.StringFixed(2), expectedTotal.StringFixed(2), sale.ID)
	}
	return &sale, nil
}

// Transactions lists completed sales, optionally filtered to one date,
// newest first.
func (l *Ledger) Transactions(date string) ([]models.SaleTransaction, error) {
	q := l.db.Order("id DESC")
	if date != "" {
		q = q.Where("date = ?", date)
	}
	var sales []models.SaleTransaction
	if err := q.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// DailySales lists per-day revenue rows for an inclusive date range; empty
// bounds mean unbounded.
func (l *Ledger) DailySales(from, to string) ([]models.DailySale, error) {
	q := l.db.Order("date")
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}
	var days []models.DailySale
	if err := q.Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}
