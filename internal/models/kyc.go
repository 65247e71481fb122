package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KycStatus represents the lifecycle status of a KYC document
type KycStatus string

const (
	KycStatusDraft                 KycStatus = "draft"
	KycStatusSubmitted             KycStatus = "submitted"
	KycStatusUnderReview           KycStatus = "under_review"
	KycStatusApproved              KycStatus = "approved"
	KycStatusRejected              KycStatus = "rejected"
	KycStatusRequiresClarification KycStatus = "requires_clarification"
	KycStatusExpired               KycStatus = "expired"
	KycStatusSuspended             KycStatus = "suspended"
)

// KycDocumentType represents the type of identity or business document
type KycDocumentType string

const (
	KycDocumentTypeNationalID      KycDocumentType = "national_id"
	KycDocumentTypePassport        KycDocumentType = "passport"
	KycDocumentTypeCommercialReg   KycDocumentType = "commercial_registration"
	KycDocumentTypeTaxCertificate  KycDocumentType = "tax_certificate"
	KycDocumentTypeBusinessLicense KycDocumentType = "business_license"
)

// KycVerificationLevel represents the verification tier a document supports
type KycVerificationLevel string

const (
	KycLevelBasic    KycVerificationLevel = "basic"
	KycLevelStandard KycVerificationLevel = "standard"
	KycLevelBusiness KycVerificationLevel = "business"
)

// KycPriority represents the review priority of a submission
type KycPriority string

const (
	KycPriorityNormal KycPriority = "normal"
	KycPriorityHigh   KycPriority = "high"
	KycPriorityUrgent KycPriority = "urgent"
)

// KycDocument represents a KYC verification document and its review lifecycle
type KycDocument struct {
	ID                uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	User              User                 `gorm:"foreignKey:UserID" json:"-"`
	DocumentType      KycDocumentType      `gorm:"type:varchar(50);not null" json:"document_type"`
	Status            KycStatus            `gorm:"type:varchar(30);not null;default:'draft';index" json:"status"`
	VerificationLevel KycVerificationLevel `gorm:"type:varchar(20);not null;default:'basic'" json:"verification_level"`
	TitleEn           string               `gorm:"type:varchar(255)" json:"title_en"`
	TitleAr           string               `gorm:"type:varchar(255)" json:"title_ar"`
	FileSize          int64                `json:"file_size"`
	FileMimeType      string               `gorm:"type:varchar(100)" json:"file_mime_type"`
	FileURL           string               `gorm:"type:text" json:"file_url"`
	DocumentData      JSON                 `gorm:"type:jsonb" json:"document_data"`
	GovernorateID     *uuid.UUID           `gorm:"type:uuid;index" json:"governorate_id,omitempty"`
	Governorate       *Governorate         `gorm:"foreignKey:GovernorateID" json:"-"`
	ReviewedByID      *uuid.UUID           `gorm:"type:uuid" json:"reviewed_by_id,omitempty"`
	ReviewedBy        *StaffUser           `gorm:"foreignKey:ReviewedByID" json:"-"`
	Priority          KycPriority          `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"`
	ExpiresAt         *time.Time           `json:"expires_at"`
	IsActive          bool                 `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (d *KycDocument) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// KycStatusLog is an append-only audit row recording one status transition
// of a KYC document. Rows are never updated or deleted.
type KycStatusLog struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"document_id"`
	Document       KycDocument `gorm:"foreignKey:DocumentID" json:"-"`
	PreviousStatus KycStatus   `gorm:"type:varchar(30);not null" json:"previous_status"`
	NewStatus      KycStatus   `gorm:"type:varchar(30);not null" json:"new_status"`
	ReviewerID     *uuid.UUID  `gorm:"type:uuid" json:"reviewer_id,omitempty"`
	Reviewer       *StaffUser  `gorm:"foreignKey:ReviewerID" json:"-"`
	NotesEn        string      `gorm:"type:text" json:"notes_en"`
	NotesAr        string      `gorm:"type:text" json:"notes_ar"`
	CreatedAt      time.Time   `json:"created_at"`
}

// BeforeCreate assigns a UUID if none is set
func (l *KycStatusLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
