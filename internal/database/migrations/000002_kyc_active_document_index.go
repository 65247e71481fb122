package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// At most one active KYC document per (user, document type) may sit in a
// blocking status at any time. The application performs the same check
// inside a locking transaction; this partial unique index makes the
// invariant hold even under concurrent submissions.
func kycActiveDocumentIndexMigration() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_kyc_active_document_index",
		Migrate: func(tx *gorm.DB) error {
			return tx.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_kyc_one_active_per_user_type
				ON kyc_documents (user_id, document_type)
				WHERE is_active = true
				  AND deleted_at IS NULL
				  AND status IN ('submitted', 'under_review', 'approved')
			`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Exec(`DROP INDEX IF EXISTS idx_kyc_one_active_per_user_type`).Error
		},
	}
}

func init() {
	migrationsList = append(migrationsList, kycActiveDocumentIndexMigration())
}
