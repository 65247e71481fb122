package seed

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/souqsyria/backend/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.StaffUser{},
		&models.Governorate{},
		&models.Membership{},
		&models.Category{},
		&models.Product{},
	))
	return db
}

func TestRunSeedsEverything(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Run(db))

	var governorates int64
	require.NoError(t, db.Model(&models.Governorate{}).Count(&governorates).Error)
	assert.Equal(t, int64(14), governorates)

	var plans int64
	require.NoError(t, db.Model(&models.Membership{}).Count(&plans).Error)
	assert.Equal(t, int64(3), plans)

	var staff int64
	require.NoError(t, db.Model(&models.StaffUser{}).Count(&staff).Error)
	assert.Equal(t, int64(1), staff)

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(3), products)
}

func TestRunIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Run(db))
	require.NoError(t, Run(db))

	var governorates int64
	require.NoError(t, db.Model(&models.Governorate{}).Count(&governorates).Error)
	assert.Equal(t, int64(14), governorates)

	var products int64
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	assert.Equal(t, int64(3), products)
}
