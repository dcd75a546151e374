package report

import (
	"fmt"
	"time"

	"bakkal-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type DailySaleResponse struct {
	Date        string `json:"date"`
	TotalIncome string `json:"total_income"`
}

func parseRange(c *fiber.Ctx) (string, string, error) {
	from := c.Query("from")
	to := c.Query("to")
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return "", "", fiber.NewError(fiber.StatusBadRequest, "from/to must be YYYY-MM-DD")
		}
	}
	return from, to, nil
}

// GET /api/reports/daily?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// Both bounds are optional; without them every recorded day is returned.
func DailySalesHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		days, err := l.DailySales(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list daily sales")
		}

		res := make([]DailySaleResponse, 0, len(days))
		grandTotal := decimal.Zero
		for _, day := range days {
			res = append(res, DailySaleResponse{
				Date:        day.Date,
				TotalIncome: day.TotalIncome.StringFixed(2),
			})
			grandTotal = grandTotal.Add(day.TotalIncome)
		}
		return c.JSON(fiber.Map{
			"days":        res,
			"grand_total": grandTotal.StringFixed(2),
		})
	}
}

// GET /api/reports/daily/export?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// Same data as the daily report, written as an .xlsx download.
func ExportDailySalesHandler(l *ledger.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseRange(c)
		if err != nil {
			return err
		}

		days, err := l.DailySales(from, to)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list daily sales")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		f.SetCellValue(sheet, "A1", "Date")
		f.SetCellValue(sheet, "B1", "Total Income")

		grandTotal := decimal.Zero
		row := 2
		for _, day := range days {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), day.Date)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), day.TotalIncome.StringFixed(2))
			grandTotal = grandTotal.Add(day.TotalIncome)
			row++
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), grandTotal.StringFixed(2))

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build report file")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="daily-sales.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
