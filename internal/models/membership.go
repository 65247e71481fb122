package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipTier represents the named membership level
type MembershipTier string

const (
	MembershipTierBasic   MembershipTier = "basic"
	MembershipTierPremium MembershipTier = "premium"
	MembershipTierVendor  MembershipTier = "vendor"
)

// Membership represents a membership plan with bilingual naming
type Membership struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Tier            MembershipTier `gorm:"type:varchar(20);uniqueIndex;not null" json:"tier"`
	NameEn          string         `gorm:"type:varchar(100);not null" json:"name_en"`
	NameAr          string         `gorm:"type:varchar(100);not null" json:"name_ar"`
	MonthlyFee      float64        `gorm:"type:decimal(20,2);default:0" json:"monthly_fee"`
	CommissionRate  float64        `gorm:"type:decimal(5,4);default:0" json:"commission_rate"`
	MaxListings     int            `gorm:"default:0" json:"max_listings"`
	DurationDays    int            `gorm:"default:30" json:"duration_days"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// BeforeCreate assigns a UUID if none is set
func (m *Membership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UserMembership tracks a user's enrollment in a membership plan
type UserMembership struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	MembershipID uuid.UUID  `gorm:"type:uuid;not null" json:"membership_id"`
	Membership   Membership `gorm:"foreignKey:MembershipID" json:"-"`
	StartsAt     time.Time  `json:"starts_at"`
	ExpiresAt    time.Time  `gorm:"index" json:"expires_at"`
	IsActive     bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate assigns a UUID if none is set
func (m *UserMembership) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
