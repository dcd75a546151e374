package inventory

import (
	"errors"
	"strings"

	"bakkal-backend/internal/ledger"
	"bakkal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ItemResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"` // fixed two decimals
	Stock int    `json:"stock"`
}

type CreateItemRequest struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	InitialStock int    `json:"initial_stock"`
}

type UpdateItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

func toItemResponse(item models.Item) ItemResponse {
	return ItemResponse{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price.StringFixed(2),
		Stock: item.Stock,
	}
}

// ledgerError translates the ledger's typed failures into HTTP errors.
func ledgerError(err error, fallback string) error {
	switch {
	case errors.Is(err, ledger.ErrDuplicateName):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrItemNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ledger.ErrInvalidItem), errors.Is(err, ledger.ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fiber.NewError(fiber.StatusBadRequest, "Price must be a decimal number")
	}
	return price, nil
}

// GET /api/items
func ListItemsHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := l.ListItems()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list items")
		}

		res := make([]ItemResponse, 0, len(items))
		for _, item := range items {
			res = append(res, toItemResponse(item))
		}
		return c.JSON(res)
	}
}

// POST /api/items
func CreateItemHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			return err
		}

		item, err := l.AddItem(body.Name, price, body.InitialStock)
		if err != nil {
			return ledgerError(err, "Could not create item")
		}
		return c.Status(fiber.StatusCreated).JSON(toItemResponse(*item))
	}
}

// PUT /api/items/:id
func UpdateItemHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		price, err := parsePrice(body.Price)
		if err != nil {
			return err
		}

		item, err := l.UpdateItem(uint(id), body.Name, price)
		if err != nil {
			return ledgerError(err, "Could not update item")
		}
		return c.JSON(toItemResponse(*item))
	}
}

// DELETE /api/items/:id
//
// Deleting an unknown id succeeds; the shell treats "gone" as the goal
// state either way.
func DeleteItemHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid item id")
		}

		if err := l.RemoveItem(uint(id)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete item")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
