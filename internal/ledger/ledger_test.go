package ledger

import (
	"path/filepath"
	"testing"
	"time"

	"bakkal-backend/internal/database"
	"bakkal-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type LedgerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	ledger *Ledger
}

// SetupTest gives every test a fresh sqlite database.
func (s *LedgerTestSuite) SetupTest() {
	db, err := database.Open(filepath.Join(s.T().TempDir(), "test.db"))
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.Migrate(db))

	s.db = db
	s.ledger = New(db)
}

func (s *LedgerTestSuite) TearDownTest() {
	sqlDB, _ := s.db.DB()
	sqlDB.Close()
}

func (s *LedgerTestSuite) addItem(name string, price string, stock int) *models.Item {
	item, err := s.ledger.AddItem(name, decimal.RequireFromString(price), stock)
	require.NoError(s.T(), err)
	return item
}

func (s *LedgerTestSuite) historyCount(itemID uint) int64 {
	var count int64
	q := s.db.Model(&models.StockAdjustment{})
	if itemID != 0 {
		q = q.Where("item_id = ?", itemID)
	}
	require.NoError(s.T(), q.Count(&count).Error)
	return count
}

func (s *LedgerTestSuite) TestAddItem() {
	item := s.addItem("Pen", "2.00", 100)

	require.NotZero(s.T(), item.ID)
	require.Equal(s.T(), 100, item.Stock)

	// Initial stock is accounted for in the history.
	history, err := s.ledger.StockHistory(item.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), history, 1)
	require.Equal(s.T(), 100, history[0].Adjustment)
}

func (s *LedgerTestSuite) TestAddItemZeroStockHasNoHistory() {
	item := s.addItem("Pen", "2.00", 0)
	require.Zero(s.T(), s.historyCount(item.ID))
}

func (s *LedgerTestSuite) TestAddItemDuplicateName() {
	original := s.addItem("Pen", "2.00", 100)

	_, err := s.ledger.AddItem("Pen", decimal.RequireFromString("9.99"), 5)
	require.ErrorIs(s.T(), err, ErrDuplicateName)

	// The original is untouched.
	var item models.Item
	require.NoError(s.T(), s.db.First(&item, original.ID).Error)
	require.True(s.T(), item.Price.Equal(decimal.RequireFromString("2.00")))
	require.Equal(s.T(), 100, item.Stock)
}

func (s *LedgerTestSuite) TestAddItemValidation() {
	_, err := s.ledger.AddItem("  ", decimal.RequireFromString("1.00"), 0)
	require.ErrorIs(s.T(), err, ErrInvalidItem)

	_, err = s.ledger.AddItem("Pen", decimal.Zero, 0)
	require.ErrorIs(s.T(), err, ErrInvalidItem)

	_, err = s.ledger.AddItem("Pen", decimal.RequireFromString("1.00"), -1)
	require.ErrorIs(s.T(), err, ErrInvalidItem)
}

func (s *LedgerTestSuite) TestUpdateItem() {
	item := s.addItem("Pen", "2.00", 10)

	updated, err := s.ledger.UpdateItem(item.ID, "Gel Pen", decimal.RequireFromString("2.50"))
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Gel Pen", updated.Name)
	require.True(s.T(), updated.Price.Equal(decimal.RequireFromString("2.50")))
	require.Equal(s.T(), 10, updated.Stock)
}

func (s *LedgerTestSuite) TestUpdateItemRejectsTakenName() {
	s.addItem("Pen", "2.00", 10)
	other := s.addItem("Eraser", "1.00", 10)

	_, err := s.ledger.UpdateItem(other.ID, "Pen", decimal.RequireFromString("1.00"))
	require.ErrorIs(s.T(), err, ErrDuplicateName)
}

func (s *LedgerTestSuite) TestAdjustStock() {
	item := s.addItem("Pen", "2.00", 10)

	require.NoError(s.T(), s.ledger.AdjustStock(item.ID, 5))

	stock, err := s.ledger.GetStock(item.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 15, stock)

	history, err := s.ledger.StockHistory(item.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), history, 2)
	require.Equal(s.T(), 5, history[0].Adjustment) // newest first
}

func (s *LedgerTestSuite) TestAdjustStockUnknownItem() {
	err := s.ledger.AdjustStock(12345, 5)
	require.ErrorIs(s.T(), err, ErrItemNotFound)
}

func (s *LedgerTestSuite) TestAdjustStockNeverBelowZero() {
	item := s.addItem("Pen", "2.00", 3)

	err := s.ledger.AdjustStock(item.ID, -4)
	require.ErrorIs(s.T(), err, ErrInsufficientStock)

	stock, err := s.ledger.GetStock(item.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, stock)
	require.EqualValues(s.T(), 1, s.historyCount(item.ID))
}

func (s *LedgerTestSuite) TestGetStockUnknownItemIsZero() {
	stock, err := s.ledger.GetStock(999)
	require.NoError(s.T(), err)
	require.Zero(s.T(), stock)
}

func (s *LedgerTestSuite) TestRemoveItemDeletesHistory() {
	item := s.addItem("Pen", "2.00", 10)
	require.NoError(s.T(), s.ledger.AdjustStock(item.ID, 5))

	require.NoError(s.T(), s.ledger.RemoveItem(item.ID))

	items, err := s.ledger.ListItems()
	require.NoError(s.T(), err)
	require.Empty(s.T(), items)
	require.Zero(s.T(), s.historyCount(item.ID))
}

func (s *LedgerTestSuite) TestRemoveUnknownItemIsNoop() {
	require.NoError(s.T(), s.ledger.RemoveItem(999))
}

func (s *LedgerTestSuite) TestListItemsIdempotent() {
	s.addItem("Pen", "2.00", 10)
	s.addItem("Eraser", "1.00", 5)

	first, err := s.ledger.ListItems()
	require.NoError(s.T(), err)
	second, err := s.ledger.ListItems()
	require.NoError(s.T(), err)
	require.Equal(s.T(), first, second)
}

func (s *LedgerTestSuite) TestSettleSale() {
	item := s.addItem("Pen", "2.00", 100)

	var cart Cart
	cart.Add("Pen", 3)

	sale, err := s.ledger.SettleSale(&cart, decimal.RequireFromString("6.00"))
	require.NoError(s.T(), err)

	require.NotNil(s.T(), sale.DailyID)
	require.Equal(s.T(), 1, *sale.DailyID)
	require.Equal(s.T(), "Pen x3", sale.Items)
	require.True(s.T(), sale.Total.Equal(decimal.RequireFromString("6.00")))

	stock, err := s.ledger.GetStock(item.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 97, stock)

	history, err := s.ledger.StockHistory(item.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), -3, history[0].Adjustment)

	var day models.DailySale
	require.NoError(s.T(), s.db.First(&day, "date = ?", sale.Date).Error)
	require.True(s.T(), day.TotalIncome.Equal(decimal.RequireFromString("6.00")))
}

func (s *LedgerTestSuite) TestSettleSaleIsAtomic() {
	a := s.addItem("A", "1.00", 10)
	b := s.addItem("B", "1.00", 5)

	var cart Cart
	cart.Add("A", 2)
	cart.Add("B", 1000)

	_, err := s.ledger.SettleSale(&cart, decimal.Zero)
	require.ErrorIs(s.T(), err, ErrInsufficientStock)

	// A was satisfiable on its own but must not have been deducted.
	stockA, err := s.ledger.GetStock(a.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 10, stockA)
	stockB, err := s.ledger.GetStock(b.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 5, stockB)

	var txCount int64
	require.NoError(s.T(), s.db.Model(&models.SaleTransaction{}).Count(&txCount).Error)
	require.Zero(s.T(), txCount)

	var dayCount int64
	require.NoError(s.T(), s.db.Model(&models.DailySale{}).Count(&dayCount).Error)
	require.Zero(s.T(), dayCount)

	// Only the two initial-stock rows exist.
	require.EqualValues(s.T(), 2, s.historyCount(0))
}

func (s *LedgerTestSuite) TestSettleSaleUnknownItem() {
	s.addItem("A", "1.00", 10)

	var cart Cart
	cart.Add("A", 1)
	cart.Add("Ghost", 1)

	_, err := s.ledger.SettleSale(&cart, decimal.Zero)
	require.ErrorIs(s.T(), err, ErrItemNotFound)

	var txCount int64
	require.NoError(s.T(), s.db.Model(&models.SaleTransaction{}).Count(&txCount).Error)
	require.Zero(s.T(), txCount)
}

func (s *LedgerTestSuite) TestSettleSaleEmptyCart() {
	_, err := s.ledger.SettleSale(&Cart{}, decimal.Zero)
	require.ErrorIs(s.T(), err, ErrEmptyCart)

	_, err = s.ledger.SettleSale(nil, decimal.Zero)
	require.ErrorIs(s.T(), err, ErrEmptyCart)
}

func (s *LedgerTestSuite) TestSettleSaleRejectsNonPositiveQuantity() {
	s.addItem("Pen", "2.00", 10)

	var cart Cart
	cart.Add("Pen", -1)

	_, err := s.ledger.SettleSale(&cart, decimal.Zero)
	require.ErrorIs(s.T(), err, ErrInvalidItem)
}

func (s *LedgerTestSuite) TestDailySequenceRestartsEachDay() {
	s.addItem("Pen", "2.00", 100)

	day1 := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	s.ledger.now = func() time.Time { return day1 }

	settle := func() *models.SaleTransaction {
		var cart Cart
		cart.Add("Pen", 1)
		sale, err := s.ledger.SettleSale(&cart, decimal.Zero)
		require.NoError(s.T(), err)
		return sale
	}

	first := settle()
	second := settle()
	require.Equal(s.T(), 1, *first.DailyID)
	require.Equal(s.T(), 2, *second.DailyID)

	s.ledger.now = func() time.Time { return day1.AddDate(0, 0, 1) }
	third := settle()
	require.Equal(s.T(), 1, *third.DailyID)
	require.Equal(s.T(), "2025-03-11", third.Date)
}

func (s *LedgerTestSuite) TestDailyRevenueAdds() {
	s.addItem("Pen", "2.00", 100)
	s.addItem("Notebook", "15.50", 10)

	day := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s.ledger.now = func() time.Time { return day }

	var cart1 Cart
	cart1.Add("Pen", 5) // 10.00
	_, err := s.ledger.SettleSale(&cart1, decimal.Zero)
	require.NoError(s.T(), err)

	var cart2 Cart
	cart2.Add("Notebook", 1) // 15.50
	_, err = s.ledger.SettleSale(&cart2, decimal.Zero)
	require.NoError(s.T(), err)

	var dayRow models.DailySale
	require.NoError(s.T(), s.db.First(&dayRow, "date = ?", "2025-03-10").Error)
	require.True(s.T(), dayRow.TotalIncome.Equal(decimal.RequireFromString("25.50")))
}

func (s *LedgerTestSuite) TestSettleSaleExpectedTotalMismatchStillSettles() {
	s.addItem("Pen", "2.00", 100)

	var cart Cart
	cart.Add("Pen", 3)

	// The shell showed a stale price; the catalog price wins.
	sale, err := s.ledger.SettleSale(&cart, decimal.RequireFromString("5.00"))
	require.NoError(s.T(), err)
	require.True(s.T(), sale.Total.Equal(decimal.RequireFromString("6.00")))
}

func (s *LedgerTestSuite) TestSettleSaleMultipleLines() {
	s.addItem("Pen", "2.00", 10)
	s.addItem("Eraser", "1.25", 10)

	var cart Cart
	cart.Add("Pen", 2)
	cart.Add("Eraser", 4)

	sale, err := s.ledger.SettleSale(&cart, decimal.Zero)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "Pen x2, Eraser x4", sale.Items)
	require.True(s.T(), sale.Total.Equal(decimal.RequireFromString("9.00")))
}

func TestLedgerTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}
