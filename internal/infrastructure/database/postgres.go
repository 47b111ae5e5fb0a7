package database

import (
	"fmt"
	"log"

	"github.com/instabill/instabill-api/internal/config"
	"github.com/instabill/instabill-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog
		&entity.Product{},

		// Customers
		&entity.Customer{},

		// Ledger
		&entity.Transaction{},
		&entity.TransactionItem{},

		// Terminal session write-through
		&entity.SessionState{},

		// System entities
		&entity.StoreProfile{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// defaultCatalog is the starter inventory loaded into an empty catalog so
// a fresh terminal can bill common items before the admin maintains it.
var defaultCatalog = []entity.Product{
	{Name: "Balaji wafers", PriceCents: 1000, Category: "snacks", Barcode: "8906010501259"},
	{Name: "Himalya Neem Face Wash", PriceCents: 8500, Category: "personal care", Barcode: "8901138512187"},
	{Name: "Kangaro", PriceCents: 1200, Category: "stationary", Barcode: "8901057510028"},
	{Name: "Spinz BB Face Powder", PriceCents: 1000, Category: "Personal Care", Barcode: "8902979026925"},
	{Name: "compass", PriceCents: 15000, Category: "General", Barcode: "6980682959046"},
	{Name: "Pen", PriceCents: 20000, Category: "stationary", Barcode: "8904155905062"},
	{Name: "Honey & Almonds", PriceCents: 1000, Category: "Personal Care", Barcode: "8904035416763"},
	{Name: "ZEDEX Dry cough relief", PriceCents: 19100, Category: "Personal care", Barcode: "8901148251120"},
	{Name: "IODEX body pain expert", PriceCents: 4200, Category: "Personal care", Barcode: "89006245"},
}

// SeedDefaultData loads the default catalog and store profile on first run.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count == 0 {
		log.Println("Seeding default catalog...")
		for i := range defaultCatalog {
			product := defaultCatalog[i]
			if err := db.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %q: %w", product.Name, err)
			}
		}
	}

	if err := db.Model(&entity.StoreProfile{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count store profile: %w", err)
	}
	if count == 0 {
		if err := db.Create(entity.DefaultStoreProfile()).Error; err != nil {
			return fmt.Errorf("failed to seed store profile: %w", err)
		}
	}

	return nil
}
