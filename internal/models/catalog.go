package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category represents a product category with bilingual names
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	NameEn    string         `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr    string         `gorm:"type:varchar(255);not null" json:"name_ar"`
	Slug      string         `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Product represents a vendor product listing
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	VendorID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor        User           `gorm:"foreignKey:VendorID" json:"-"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"-"`
	NameEn        string         `gorm:"type:varchar(255);not null" json:"name_en"`
	NameAr        string         `gorm:"type:varchar(255);not null" json:"name_ar"`
	Slug          string         `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	DescriptionEn string         `gorm:"type:text" json:"description_en"`
	DescriptionAr string         `gorm:"type:text" json:"description_ar"`
	Price         float64        `gorm:"type:decimal(20,2);not null" json:"price"`
	Currency      string         `gorm:"type:varchar(3);not null;default:'SYP'" json:"currency"`
	Stock         int            `gorm:"default:0" json:"stock"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns a UUID if none is set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
