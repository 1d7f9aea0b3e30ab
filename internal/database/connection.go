package database

import (
	"fmt"
	"time"

	"github.com/mroshb/buynothing/internal/config"
	"github.com/mroshb/buynothing/internal/models"
	"github.com/mroshb/buynothing/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Settlement and trade paths open their own transactions; skip the
		// implicit per-write one.
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true, // surface gorm.ErrDuplicatedKey on unique violations
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(200)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Purchase{},
		&models.PaymentRecord{},
		&models.Lootbox{},
		&models.Trade{},
		&models.TradeItem{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedProducts inserts the catalog when the products table is empty: the
// storefront items plus the lootbox reward pools per rarity tier.
func SeedProducts(db *gorm.DB) error {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	logger.Info("Seeding product catalog...")

	products := []models.Product{
		{Name: "Dad's Approval (Nothing)", Slug: "dads-approval", Description: "Buy it to finally hear 'I'm proud of you'. No refund.", Category: "Relatable", Price: 200},
		{Name: "Asmongold's Hair (Nothing)", Slug: "asmongolds-hair", Description: "A rare and mythical collectible.", Category: "Gaming", Price: 300},
		{Name: "My Confidence (Nothing)", Slug: "my-confidence", Description: "Good luck finding it after purchase.", Category: "Mental Health", Price: 200},
		{Name: "Elon's Promises (Nothing)", Slug: "elons-promises", Description: "Expect greatness. Receive nothing.", Category: "Edgy", Price: 500},

		// Lootbox reward pools
		{Name: "A Single Sock (Nothing)", Slug: "a-single-sock", Description: "The other one is gone forever.", Category: "Lootbox", Price: 100, Rarity: models.RarityCommon},
		{Name: "Expired Coupon (Nothing)", Slug: "expired-coupon", Description: "It was valid until yesterday.", Category: "Lootbox", Price: 100, Rarity: models.RarityCommon},
		{Name: "Motivation (Nothing)", Slug: "motivation", Description: "Appears briefly on Monday mornings.", Category: "Lootbox", Price: 500, Rarity: models.RarityRare},
		{Name: "Inner Peace (Nothing)", Slug: "inner-peace", Description: "Shatters on first notification.", Category: "Lootbox", Price: 500, Rarity: models.RarityRare},
		{Name: "Free Time (Nothing)", Slug: "free-time", Description: "Legendary among adults.", Category: "Lootbox", Price: 5000, Rarity: models.RarityEpic},
		{Name: "A Finished Side Project (Nothing)", Slug: "a-finished-side-project", Description: "Spotted once, never confirmed.", Category: "Lootbox", Price: 50000, Rarity: models.RarityLegendary},
	}

	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	logger.Info("Product catalog seeded", "count", len(products))
	return nil
}
