package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
)

// InitDB initializes the database connection with configuration
func InitDB(dbConfig config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dbConfig.URL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdle)
	sqlDB.SetMaxOpenConns(dbConfig.MaxConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Migrate runs database migrations
func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	return db.AutoMigrate(
		// Accounts
		&models.User{},
		&models.StaffUser{},

		// Reference data
		&models.Governorate{},
		&models.Address{},
		&models.Membership{},
		&models.UserMembership{},

		// Catalog
		&models.Category{},
		&models.Product{},

		// Orders and payments
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentTransaction{},
		&models.RefundTransaction{},

		// KYC verification
		&models.KycDocument{},
		&models.KycStatusLog{},

		// Notifications and audit
		&models.Notification{},
		&models.AuditLog{},

		// Background jobs
		&queue.Job{},
	)
}
