package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Refund status lookups read the most recent refund per order, ordered by
// created_at descending.
func refundOrderCreatedIndexMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_refund_order_created_index",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE INDEX IF NOT EXISTS idx_refund_transactions_order_created
				ON refund_transactions (order_id, created_at DESC)
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP INDEX IF EXISTS idx_refund_transactions_order_created`).Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, refundOrderCreatedIndexMigration())
}
