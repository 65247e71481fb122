package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Governorate represents a Syrian first-level administrative division
type Governorate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	NameEn    string    `gorm:"type:varchar(100);not null" json:"name_en"`
	NameAr    string    `gorm:"type:varchar(100);not null" json:"name_ar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a UUID if none is set
func (g *Governorate) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Address represents a user delivery or billing address
type Address struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"-"`
	GovernorateID uuid.UUID      `gorm:"type:uuid;not null" json:"governorate_id"`
	Governorate   Governorate    `gorm:"foreignKey:GovernorateID" json:"-"`
	City          string         `gorm:"type:varchar(100)" json:"city"`
	Street        string         `gorm:"type:varchar(255)" json:"street"`
	Details       string         `gorm:"type:text" json:"details"`
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
