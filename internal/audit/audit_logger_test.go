package audit

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
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
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestLogPersistsEntry(t *testing.T) {
	db := setupTestDB(t)
	auditLogger := NewLogger(db)
	actorID := uuid.New()

	auditLogger.Log(context.Background(), Entry{
		EventType:   models.AuditEventKycReviewed,
		Description: "KYC document reviewed",
		ActorID:     &actorID,
		RequestID:   "req-1",
		Success:     true,
		Details:     map[string]interface{}{"document_id": uuid.New().String()},
	})

	var record models.AuditLog
	require.NoError(t, db.First(&record).Error)
	assert.Equal(t, models.AuditEventKycReviewed, record.EventType)
	assert.Equal(t, models.AuditSeverityInfo, record.Severity)
	assert.Equal(t, "req-1", record.RequestID)
	assert.True(t, record.Success)
	assert.Contains(t, record.Details, "document_id")
}

func TestRecentByActor(t *testing.T) {
	db := setupTestDB(t)
	auditLogger := NewLogger(db)
	actorID := uuid.New()
	otherID := uuid.New()

	for i := 0; i < 3; i++ {
		auditLogger.Log(context.Background(), Entry{
			EventType: models.AuditEventAdminAction,
			ActorID:   &actorID,
			Success:   true,
		})
	}
	auditLogger.Log(context.Background(), Entry{
		EventType: models.AuditEventAdminAction,
		ActorID:   &otherID,
		Success:   true,
	})

	logs, err := auditLogger.RecentByActor(context.Background(), actorID, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
}

func TestRecentByEvent(t *testing.T) {
	db := setupTestDB(t)
	auditLogger := NewLogger(db)

	auditLogger.Log(context.Background(), Entry{EventType: models.AuditEventStaffLogin, Success: false})
	auditLogger.Log(context.Background(), Entry{EventType: models.AuditEventKycExpired, Success: true})

	logs, err := auditLogger.RecentByEvent(context.Background(), models.AuditEventStaffLogin, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.False(t, logs[0].Success)
}
