package pos

import (
	"errors"
	"strings"

	"bakkal-backend/internal/ledger"
	"bakkal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CheckoutLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CheckoutRequest struct {
	Items         []CheckoutLine `json:"items"`
	ExpectedTotal string         `json:"expected_total"` // what the shell displayed, optional
}

type TransactionResponse struct {
	ID        uint   `json:"id"`
	DailyID   *int   `json:"daily_id"`
	Date      string `json:"date"`
	Items     string `json:"items"`
	Total     string `json:"total"`
	CreatedAt string `json:"created_at"`
}

func toTransactionResponse(sale models.SaleTransaction) TransactionResponse {
	return TransactionResponse{
		ID:        sale.ID,
		DailyID:   sale.DailyID,
		Date:      sale.Date,
		Items:     sale.Items,
		Total:     sale.Total.StringFixed(2),
		CreatedAt: sale.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/checkout
//
// Settles the cart as one unit of work: either every line is deducted and
// the sale is recorded, or nothing changes at all.
func CheckoutHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var cart ledger.Cart
		for _, line := range body.Items {
			cart.Add(strings.TrimSpace(line.Name), line.Quantity)
		}

		expectedTotal := decimal.Zero
		if strings.TrimSpace(body.ExpectedTotal) != "" {
			var err error
			expectedTotal, err = decimal.NewFromString(strings.TrimSpace(body.ExpectedTotal))
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "expected_total must be a decimal number")
			}
		}

		sale, err := l.SettleSale(&cart, expectedTotal)
		if err != nil {
			switch {
			case errors.Is(err, ledger.ErrItemNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			case errors.Is(err, ledger.ErrInsufficientStock):
				return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
			case errors.Is(err, ledger.ErrEmptyCart), errors.Is(err, ledger.ErrInvalidItem):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Could not settle sale")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(*sale))
	}
}
