package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func enableExtensionsMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_enable_extensions",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return nil
		},
	}
}

func init() {
	migrationsList = append(migrationsList, enableExtensionsMigration())
}
