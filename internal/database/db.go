package database

import (
	"log"
	"strings"

	"bakkal-backend/internal/config"
	"bakkal-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open picks the driver from the DSN: anything that looks like a postgres
// connection string gets the postgres driver, everything else is treated as
// a path to a local sqlite file.
func Open(dsn string) (*gorm.DB, error) {
	if strings.Contains(dsn, "host=") || strings.HasPrefix(dsn, "postgres://") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// Migrate creates the schema if absent and upgrades older databases.
func Migrate(db *gorm.DB) error {
	// Databases created before ticket numbering existed have a transactions
	// table without the daily_id column. Add it up front so AutoMigrate does
	// not have to guess; legacy rows keep a NULL daily_id.
	if db.Migrator().HasTable(&models.SaleTransaction{}) {
		if !db.Migrator().HasColumn(&models.SaleTransaction{}, "daily_id") {
			log.Println("Adding transactions.daily_id column...")
			if err := db.Exec("ALTER TABLE transactions ADD COLUMN daily_id INTEGER").Error; err != nil {
				return err
			}
		}
	}

	return db.AutoMigrate(
		&models.Item{},
		&models.StockAdjustment{},
		&models.SaleTransaction{},
		&models.DailySale{},
	)
}

func Init(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Database connection established, migration complete.")
	return db
}
