package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType represents the kind of event a notification reports
type NotificationType string

const (
	NotificationTypeKycDecision      NotificationType = "kyc_decision"
	NotificationTypeRefundProcessed  NotificationType = "refund_processed"
	NotificationTypeMembershipExpiry NotificationType = "membership_expiry"
)

// Notification represents a user-facing notification with bilingual content
type Notification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User             `gorm:"foreignKey:UserID" json:"-"`
	Type      NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	TitleEn   string           `gorm:"type:varchar(255)" json:"title_en"`
	TitleAr   string           `gorm:"type:varchar(255)" json:"title_ar"`
	BodyEn    string           `gorm:"type:text" json:"body_en"`
	BodyAr    string           `gorm:"type:text" json:"body_ar"`
	Metadata  JSON             `gorm:"type:jsonb" json:"metadata"`
	ReadAt    *time.Time       `json:"read_at"`
	CreatedAt time.Time        `json:"created_at"`
}

// BeforeCreate assigns a UUID if none is set
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
