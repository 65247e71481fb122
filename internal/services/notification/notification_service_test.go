package notification

import (
	"context"
	"encoding/json"
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

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Membership{},
		&models.Notification{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	user := models.User{
		Email:    uuid.New().String() + "@example.sy",
		FullName: "Recipient",
		Role:     models.UserRoleBuyer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func jobWithPayload(t *testing.T, jobType queue.JobType, payload interface{}) queue.Job {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return queue.Job{ID: uuid.New(), Type: jobType, Payload: data}
}

func TestHandleKycDecisionApproved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	job := jobWithPayload(t, queue.JobTypeNotifyKycDecision, map[string]string{
		"document_id": uuid.New().String(),
		"user_id":     user.ID.String(),
		"new_status":  "approved",
		"notes_en":    "All documents verified",
		"notes_ar":    "تم التحقق من جميع المستندات",
	})

	_, err := svc.handleKycDecision(context.Background(), job)
	require.NoError(t, err)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)

	notification := notifications[0]
	assert.Equal(t, models.NotificationTypeKycDecision, notification.Type)
	assert.Equal(t, "Your identity verification was approved", notification.TitleEn)
	assert.Equal(t, "All documents verified", notification.BodyEn)
	assert.Equal(t, "approved", notification.Metadata["new_status"])
	assert.Nil(t, notification.ReadAt)
}

func TestHandleKycDecisionBadPayload(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	job := queue.Job{ID: uuid.New(), Type: queue.JobTypeNotifyKycDecision, Payload: []byte("{not json")}
	_, err := svc.handleKycDecision(context.Background(), job)
	require.Error(t, err)

	job = jobWithPayload(t, queue.JobTypeNotifyKycDecision, map[string]string{"user_id": "not-a-uuid"})
	_, err = svc.handleKycDecision(context.Background(), job)
	require.Error(t, err)
}

func TestHandleRefundProcessed(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	job := jobWithPayload(t, queue.JobTypeNotifyRefundProcessed, map[string]interface{}{
		"refund_id": uuid.New().String(),
		"order_id":  uuid.New().String(),
		"user_id":   user.ID.String(),
		"amount":    75000.0,
	})

	_, err := svc.handleRefundProcessed(context.Background(), job)
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.NotificationTypeRefundProcessed, notification.Type)
	assert.Contains(t, notification.BodyEn, "75000.00")
}

func TestHandleMembershipExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	job := jobWithPayload(t, queue.JobTypeNotifyMembershipExpiry, map[string]string{
		"user_membership_id": uuid.New().String(),
		"user_id":            user.ID.String(),
		"tier":               "premium",
	})

	_, err := svc.handleMembershipExpiry(context.Background(), job)
	require.NoError(t, err)

	var notification models.Notification
	require.NoError(t, db.First(&notification, "user_id = ?", user.ID).Error)
	assert.Equal(t, models.NotificationTypeMembershipExpiry, notification.Type)
	assert.Contains(t, notification.BodyEn, "premium")
}

func TestListForUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	other := createTestUser(t, db)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationTypeKycDecision,
			TitleEn: "n",
		}).Error)
	}
	require.NoError(t, db.Create(&models.Notification{
		UserID:  other.ID,
		Type:    models.NotificationTypeKycDecision,
		TitleEn: "other",
	}).Error)

	notifications, total, err := svc.ListForUser(context.Background(), user.ID, false, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, notifications, 2)
}

func TestMarkRead(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	notification := models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationTypeKycDecision,
		TitleEn: "n",
	}
	require.NoError(t, db.Create(&notification).Error)

	require.NoError(t, svc.MarkRead(context.Background(), user.ID, notification.ID))

	var reloaded models.Notification
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	require.NotNil(t, reloaded.ReadAt)
	firstRead := *reloaded.ReadAt

	// marking again keeps the original timestamp
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.MarkRead(context.Background(), user.ID, notification.ID))
	require.NoError(t, db.First(&reloaded, "id = ?", notification.ID).Error)
	assert.Equal(t, firstRead.Unix(), reloaded.ReadAt.Unix())
}

func TestMarkReadWrongUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)
	other := createTestUser(t, db)

	notification := models.Notification{
		UserID:  user.ID,
		Type:    models.NotificationTypeKycDecision,
		TitleEn: "n",
	}
	require.NoError(t, db.Create(&notification).Error)

	err := svc.MarkRead(context.Background(), other.ID, notification.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListForUserUnreadOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)
	user := createTestUser(t, db)

	read := models.Notification{UserID: user.ID, Type: models.NotificationTypeKycDecision, TitleEn: "read"}
	require.NoError(t, db.Create(&read).Error)
	require.NoError(t, svc.MarkRead(context.Background(), user.ID, read.ID))

	unread := models.Notification{UserID: user.ID, Type: models.NotificationTypeKycDecision, TitleEn: "unread"}
	require.NoError(t, db.Create(&unread).Error)

	notifications, total, err := svc.ListForUser(context.Background(), user.ID, true, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, notifications, 1)
	assert.Equal(t, unread.ID, notifications[0].ID)
}
