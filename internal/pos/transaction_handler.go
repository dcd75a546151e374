package pos

import (
	"time"

	"bakkal-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// GET /api/transactions?date=YYYY-MM-DD
//
// Without a date the full history is returned, newest first.
func ListTransactionsHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		date := c.Query("date")
		if date != "" {
			if _, err := time.Parse("2006-01-02", date); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
			}
		}

		sales, err := l.Transactions(date)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list transactions")
		}

		res := make([]TransactionResponse, 0, len(sales))
		for _, sale := range sales {
			res = append(res, toTransactionResponse(sale))
		}
		return c.JSON(res)
	}
}
