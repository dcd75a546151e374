package inventory

import (
	"bakkal-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

type AdjustStockRequest struct {
	Delta int `json:"delta"`
}

type StockAdjustmentResponse struct {
	ID         uint   `json:"id"`
	Adjustment int    `json:"adjustment"`
	CreatedAt  string `json:"created_at"`
}

// POST /api/items/:id/stock
//
// The shell only sends positive deltas (restock); negative manual
// corrections are accepted too as long as stock stays at or above zero.
func AdjustStockHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Delta cannot be zero")
		}

		if err := l.AdjustStock(uint(id), body.Delta); err != nil {
			return ledgerError(err, "Could not adjust stock")
		}

		stock, err := l.GetStock(uint(id))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read stock")
		}
		return c.JSON(fiber.Map{"item_id": id, "stock": stock})
	}
}

// GET /api/items/:id/stock
func GetStockHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		stock, err := l.GetStock(uint(id))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read stock")
		}
		return c.JSON(fiber.Map{"item_id": id, "stock": stock})
	}
}

// GET /api/items/:id/history
func StockHistoryHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		history, err := l.StockHistory(uint(id))
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock history")
		}

		res := make([]StockAdjustmentResponse, 0, len(history))
		for _, adj := range history {
			res = append(res, StockAdjustmentResponse{
				ID:         adj.ID,
				Adjustment: adj.Adjustment,
				CreatedAt:  adj.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		return c.JSON(res)
	}
}
