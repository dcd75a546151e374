package main

import (
	"log"
	"strings"

	"bakkal-backend/internal/auth"
	"bakkal-backend/internal/config"
	"bakkal-backend/internal/database"
	"bakkal-backend/internal/inventory"
	"bakkal-backend/internal/ledger"
	"bakkal-backend/internal/pos"
	"bakkal-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	db := database.Init(cfg)

	lgr := ledger.New(db)
	authenticator := auth.FromConfig(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(cfg, authenticator))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	// Catalog
	protected.Get("/items", inventory.ListItemsHandler(lgr))
	protected.Post("/items", inventory.CreateItemHandler(lgr))
	protected.Put("/items/:id", inventory.UpdateItemHandler(lgr))
	protected.Delete("/items/:id", inventory.DeleteItemHandler(lgr))

	// Stock
	protected.Post("/items/:id/stock", inventory.AdjustStockHandler(lgr))
	protected.Get("/items/:id/stock", inventory.GetStockHandler(lgr))
	protected.Get("/items/:id/history", inventory.StockHistoryHandler(lgr))

	// Billing
	protected.Post("/checkout", pos.CheckoutHandler(lgr))
	protected.Get("/transactions", pos.ListTransactionsHandler(lgr))

	// Daily sales report
	protected.Get("/reports/daily", report.DailySalesHandler(lgr))
	protected.Get("/reports/daily/export", report.ExportDailySalesHandler(lgr))

	log.Println("Server running on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
