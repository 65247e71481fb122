package seed

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/utils"
)

// Run seeds reference data and a demo dataset. It is idempotent: existing
// rows are left alone.
func Run(db *gorm.DB) error {
	if err := Governorates(db); err != nil {
		return err
	}
	if err := MembershipPlans(db); err != nil {
		return err
	}
	if err := StaffUsers(db); err != nil {
		return err
	}
	if err := DemoCatalog(db); err != nil {
		return err
	}
	return nil
}

// Governorates seeds the 14 Syrian governorates
func Governorates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Governorate{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error counting governorates: %w", err)
	}
	if count > 0 {
		return nil
	}

	governorates := []models.Governorate{
		{Code: "DI", NameEn: "Damascus", NameAr: "دمشق"},
		{Code: "RD", NameEn: "Rif Dimashq", NameAr: "ريف دمشق"},
		{Code: "AL", NameEn: "Aleppo", NameAr: "حلب"},
		{Code: "HM", NameEn: "Homs", NameAr: "حمص"},
		{Code: "HI", NameEn: "Hama", NameAr: "حماة"},
		{Code: "LA", NameEn: "Latakia", NameAr: "اللاذقية"},
		{Code: "TA", NameEn: "Tartus", NameAr: "طرطوس"},
		{Code: "ID", NameEn: "Idlib", NameAr: "إدلب"},
		{Code: "DZ", NameEn: "Deir ez-Zor", NameAr: "دير الزور"},
		{Code: "RA", NameEn: "Raqqa", NameAr: "الرقة"},
		{Code: "HA", NameEn: "Al-Hasakah", NameAr: "الحسكة"},
		{Code: "DA", NameEn: "Daraa", NameAr: "درعا"},
		{Code: "SW", NameEn: "As-Suwayda", NameAr: "السويداء"},
		{Code: "QU", NameEn: "Quneitra", NameAr: "القنيطرة"},
	}

	if err := db.CreateInBatches(governorates, 14).Error; err != nil {
		return fmt.Errorf("error seeding governorates: %w", err)
	}
	log.Printf("seeded %d governorates", len(governorates))
	return nil
}

// MembershipPlans seeds the three membership tiers
func MembershipPlans(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Membership{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error counting membership plans: %w", err)
	}
	if count > 0 {
		return nil
	}

	plans := []models.Membership{
		{
			Tier:         models.MembershipTierBasic,
			NameEn:       "Basic",
			NameAr:       "أساسية",
			MonthlyFee:   0,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Tier:         models.MembershipTierPremium,
			NameEn:       "Premium",
			NameAr:       "مميزة",
			MonthlyFee:   50000,
			DurationDays: 30,
			IsActive:     true,
		},
		{
			Tier:           models.MembershipTierVendor,
			NameEn:         "Vendor",
			NameAr:         "بائع",
			MonthlyFee:     150000,
			CommissionRate: 0.05,
			MaxListings:    500,
			DurationDays:   30,
			IsActive:       true,
		},
	}

	if err := db.Create(&plans).Error; err != nil {
		return fmt.Errorf("error seeding membership plans: %w", err)
	}
	log.Printf("seeded %d membership plans", len(plans))
	return nil
}

// StaffUsers seeds an initial admin account for the back office
func StaffUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.StaffUser{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error counting staff users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword("ChangeMe2026!")
	if err != nil {
		return fmt.Errorf("error hashing staff password: %w", err)
	}

	admin := models.StaffUser{
		Email:        "admin@souqsyria.com",
		FullName:     "Platform Administrator",
		PasswordHash: hash,
		Department:   "operations",
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("error seeding staff user: %w", err)
	}
	log.Println("seeded initial staff admin (change the password immediately)")
	return nil
}

// DemoCatalog seeds a small demo vendor with categories and products
func DemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("error counting products: %w", err)
	}
	if count > 0 {
		return nil
	}

	vendor := models.User{
		Email:    "vendor-demo@souqsyria.com",
		FullName: "Demo Vendor",
		Role:     models.UserRoleVendor,
		IsActive: true,
	}
	if err := db.Where(models.User{Email: vendor.Email}).FirstOrCreate(&vendor).Error; err != nil {
		return fmt.Errorf("error seeding demo vendor: %w", err)
	}

	categories := []models.Category{
		{NameEn: "Food & Beverages", NameAr: "أغذية ومشروبات", Slug: slug.Make("Food & Beverages")},
		{NameEn: "Handicrafts", NameAr: "حرف يدوية", Slug: slug.Make("Handicrafts")},
		{NameEn: "Textiles", NameAr: "منسوجات", Slug: slug.Make("Textiles")},
	}
	if err := db.CreateInBatches(categories, 10).Error; err != nil {
		return fmt.Errorf("error seeding categories: %w", err)
	}

	products := []models.Product{
		{
			VendorID:   vendor.ID,
			CategoryID: &categories[0].ID,
			NameEn:     "Aleppo Pistachios 500g",
			NameAr:     "فستق حلبي 500 غرام",
			Slug:       slug.Make("Aleppo Pistachios 500g") + "-" + uuid.New().String()[:8],
			Price:      85000,
			Currency:   "SYP",
			Stock:      120,
			IsActive:   true,
		},
		{
			VendorID:   vendor.ID,
			CategoryID: &categories[1].ID,
			NameEn:     "Damascene Mosaic Box",
			NameAr:     "صندوق موزاييك دمشقي",
			Slug:       slug.Make("Damascene Mosaic Box") + "-" + uuid.New().String()[:8],
			Price:      250000,
			Currency:   "SYP",
			Stock:      15,
			IsActive:   true,
		},
		{
			VendorID:   vendor.ID,
			CategoryID: &categories[2].ID,
			NameEn:     "Aghabani Tablecloth",
			NameAr:     "مفرش أغباني",
			Slug:       slug.Make("Aghabani Tablecloth") + "-" + uuid.New().String()[:8],
			Price:      180000,
			Currency:   "SYP",
			Stock:      30,
			IsActive:   true,
		},
	}
	if err := db.CreateInBatches(products, 10).Error; err != nil {
		return fmt.Errorf("error seeding products: %w", err)
	}

	log.Printf("seeded demo catalog: %d categories, %d products", len(categories), len(products))
	return nil
}
