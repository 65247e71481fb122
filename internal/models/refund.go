package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefundStatus represents the status of a refund transaction
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusApproved  RefundStatus = "approved"
	RefundStatusRejected  RefundStatus = "rejected"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusFailed    RefundStatus = "failed"
)

// RefundMethod represents how a refund is paid out
type RefundMethod string

const (
	RefundMethodManual RefundMethod = "manual"
	RefundMethodWallet RefundMethod = "wallet"
	RefundMethodCard   RefundMethod = "card"
)

// RefundTransaction represents a monetary refund request tied to an order
// and a payment transaction
type RefundTransaction struct {
	ID                   uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	Reference            string             `gorm:"type:varchar(100);uniqueIndex" json:"reference"`
	Amount               float64            `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status               RefundStatus       `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Method               RefundMethod       `gorm:"type:varchar(20);not null;default:'manual'" json:"method"`
	ReasonCode           string             `gorm:"type:varchar(100)" json:"reason_code"`
	Notes                string             `gorm:"type:text" json:"notes"`
	Evidence             StringArray        `gorm:"type:jsonb" json:"evidence"`
	OrderID              uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	Order                Order              `gorm:"foreignKey:OrderID" json:"-"`
	PaymentTransactionID uuid.UUID          `gorm:"type:uuid;not null;index" json:"payment_transaction_id"`
	PaymentTransaction   PaymentTransaction `gorm:"foreignKey:PaymentTransactionID" json:"-"`
	ProcessedByID        *uuid.UUID         `gorm:"type:uuid" json:"processed_by_id,omitempty"`
	ProcessedBy          *StaffUser         `gorm:"foreignKey:ProcessedByID" json:"-"`
	RefundedAt           *time.Time         `json:"refunded_at"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

// BeforeCreate assigns a UUID if none is set
func (r *RefundTransaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
