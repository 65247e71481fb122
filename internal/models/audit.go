package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEventType represents the type of audited event
type AuditEventType string

const (
	AuditEventKycSubmitted    AuditEventType = "KYC_SUBMITTED"
	AuditEventKycReviewed     AuditEventType = "KYC_REVIEWED"
	AuditEventKycExpired      AuditEventType = "KYC_EXPIRED"
	AuditEventRefundInitiated AuditEventType = "REFUND_INITIATED"
	AuditEventRefundReviewed  AuditEventType = "REFUND_REVIEWED"
	AuditEventStaffLogin      AuditEventType = "STAFF_LOGIN"
	AuditEventAdminAction     AuditEventType = "ADMIN_ACTION"
)

// AuditSeverity represents the severity level of an audit event
type AuditSeverity string

const (
	AuditSeverityInfo     AuditSeverity = "INFO"
	AuditSeverityWarning  AuditSeverity = "WARNING"
	AuditSeverityError    AuditSeverity = "ERROR"
	AuditSeverityCritical AuditSeverity = "CRITICAL"
)

// AuditLog represents an audit trail entry for sensitive operations
type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp   time.Time      `gorm:"index" json:"timestamp"`
	ActorID     *uuid.UUID     `gorm:"type:uuid;index" json:"actor_id"`
	RequestID   string         `gorm:"type:varchar(64);index" json:"request_id"`
	IPAddress   string         `gorm:"type:varchar(64)" json:"ip_address"`
	EventType   AuditEventType `gorm:"type:varchar(50);index" json:"event_type"`
	Severity    AuditSeverity  `gorm:"type:varchar(20)" json:"severity"`
	Description string         `gorm:"type:text" json:"description"`
	Details     string         `gorm:"type:text" json:"details"` // JSON string of additional details
	Success     bool           `json:"success"`
	CreatedAt   time.Time      `json:"created_at"`
}

// BeforeCreate assigns a UUID if none is set
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
