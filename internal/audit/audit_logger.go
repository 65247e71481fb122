package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
)

// Logger writes audit trail entries for sensitive operations (KYC reviews,
// refund decisions, staff logins)
type Logger struct {
	db *gorm.DB
}

// NewLogger creates a new audit logger
func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Entry describes a single audit event
type Entry struct {
	EventType   models.AuditEventType
	Severity    models.AuditSeverity
	Description string
	ActorID     *uuid.UUID
	RequestID   string
	IPAddress   string
	Success     bool
	Details     map[string]interface{}
}

// Log persists an audit entry. Failures are logged but never propagated;
// audit writes must not fail the operation they describe.
func (l *Logger) Log(ctx context.Context, entry Entry) {
	if entry.Severity == "" {
		entry.Severity = models.AuditSeverityInfo
	}

	details := ""
	if entry.Details != nil {
		if data, err := json.Marshal(entry.Details); err == nil {
			details = string(data)
		}
	}

	record := models.AuditLog{
		Timestamp:   time.Now(),
		ActorID:     entry.ActorID,
		RequestID:   entry.RequestID,
		IPAddress:   entry.IPAddress,
		EventType:   entry.EventType,
		Severity:    entry.Severity,
		Description: entry.Description,
		Details:     details,
		Success:     entry.Success,
	}
	if err := l.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Printf("failed to write audit log (%s): %v", entry.EventType, err)
	}
}

// LogFromRequest persists an audit entry enriched with the request id and
// client address from the gin context
func (l *Logger) LogFromRequest(c *gin.Context, entry Entry) {
	entry.RequestID = middleware.RequestIDFromContext(c)
	entry.IPAddress = c.ClientIP()
	l.Log(c.Request.Context(), entry)
}

// RecentByActor returns the latest audit entries for an actor
func (l *Logger) RecentByActor(ctx context.Context, actorID uuid.UUID, limit int) ([]models.AuditLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var logs []models.AuditLog
	err := l.db.WithContext(ctx).
		Where("actor_id = ?", actorID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// RecentByEvent returns the latest audit entries of a given event type
func (l *Logger) RecentByEvent(ctx context.Context, eventType models.AuditEventType, limit int) ([]models.AuditLog, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var logs []models.AuditLog
	err := l.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
