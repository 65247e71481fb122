package membership

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/queue"
)

type fakeEnqueuer struct {
	jobs []queue.JobType
}

func (f *fakeEnqueuer) EnqueueJob(jobType queue.JobType, payload interface{}) (string, error) {
	f.jobs = append(f.jobs, jobType)
	return uuid.New().String(), nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Membership{},
		&models.UserMembership{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	user := models.User{
		Email:    uuid.New().String() + "@example.sy",
		FullName: "Member",
		Role:     models.UserRoleBuyer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestPlans(t *testing.T, db *gorm.DB) {
	plans := []models.Membership{
		{Tier: models.MembershipTierBasic, NameEn: "Basic", NameAr: "أساسية", MonthlyFee: 0, DurationDays: 30, IsActive: true},
		{Tier: models.MembershipTierPremium, NameEn: "Premium", NameAr: "مميزة", MonthlyFee: 50000, DurationDays: 30, IsActive: true},
		{Tier: models.MembershipTierVendor, NameEn: "Vendor", NameAr: "بائع", MonthlyFee: 150000, CommissionRate: 0.05, DurationDays: 30, IsActive: true},
	}
	require.NoError(t, db.Create(&plans).Error)
}

func TestListPlansOrderedByFee(t *testing.T) {
	db := setupTestDB(t)
	createTestPlans(t, db)
	svc := NewService(db, nil, nil)

	plans, err := svc.ListPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, models.MembershipTierBasic, plans[0].Tier)
	assert.Equal(t, models.MembershipTierVendor, plans[2].Tier)
}

func TestEnroll(t *testing.T) {
	db := setupTestDB(t)
	createTestPlans(t, db)
	svc := NewService(db, nil, nil)
	user := createTestUser(t, db)

	enrollment, err := svc.Enroll(context.Background(), user.ID, models.MembershipTierPremium)
	require.NoError(t, err)

	assert.True(t, enrollment.IsActive)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), enrollment.ExpiresAt, time.Minute)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, "id = ?", user.ID).Error)
	require.NotNil(t, reloaded.MembershipID)
	assert.Equal(t, enrollment.MembershipID, *reloaded.MembershipID)
}

func TestEnrollUnknownTier(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, nil)
	user := createTestUser(t, db)

	_, err := svc.Enroll(context.Background(), user.ID, models.MembershipTierPremium)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEnrollReplacesActiveMembership(t *testing.T) {
	db := setupTestDB(t)
	createTestPlans(t, db)
	svc := NewService(db, nil, nil)
	user := createTestUser(t, db)

	first, err := svc.Enroll(context.Background(), user.ID, models.MembershipTierBasic)
	require.NoError(t, err)

	second, err := svc.Enroll(context.Background(), user.ID, models.MembershipTierPremium)
	require.NoError(t, err)

	var old models.UserMembership
	require.NoError(t, db.First(&old, "id = ?", first.ID).Error)
	assert.False(t, old.IsActive)

	active, err := svc.GetActiveMembership(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
	assert.Equal(t, models.MembershipTierPremium, active.Membership.Tier)
}

func TestGetActiveMembershipNone(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, nil)
	user := createTestUser(t, db)

	_, err := svc.GetActiveMembership(context.Background(), user.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestExpireMemberships(t *testing.T) {
	db := setupTestDB(t)
	createTestPlans(t, db)
	enqueuer := &fakeEnqueuer{}
	svc := NewService(db, nil, enqueuer)

	expiredUser := createTestUser(t, db)
	currentUser := createTestUser(t, db)

	expiredEnrollment, err := svc.Enroll(context.Background(), expiredUser.ID, models.MembershipTierBasic)
	require.NoError(t, err)
	_, err = svc.Enroll(context.Background(), currentUser.ID, models.MembershipTierBasic)
	require.NoError(t, err)

	// push one enrollment past its expiry
	require.NoError(t, db.Model(&models.UserMembership{}).
		Where("id = ?", expiredEnrollment.ID).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	count, err := svc.ExpireMemberships(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	var reloaded models.UserMembership
	require.NoError(t, db.First(&reloaded, "id = ?", expiredEnrollment.ID).Error)
	assert.False(t, reloaded.IsActive)

	require.Len(t, enqueuer.jobs, 1)
	assert.Equal(t, queue.JobTypeNotifyMembershipExpiry, enqueuer.jobs[0])

	active, err := svc.GetActiveMembership(context.Background(), currentUser.ID)
	require.NoError(t, err)
	assert.True(t, active.IsActive)
}
