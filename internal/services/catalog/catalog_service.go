package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/models"
)

const (
	categoriesCacheKey = "catalog:categories"
	productCacheKeyFmt = "catalog:product:%s"
	cacheTTL           = 10 * time.Minute
)

// Cacher is the subset of the cache client the catalog uses; nil disables caching
type Cacher interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Service manages categories and vendor product listings
type Service struct {
	db    *gorm.DB
	cache Cacher
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cacher Cacher) *Service {
	return &Service{db: db, cache: cacher}
}

// CreateCategoryInput carries a new category
type CreateCategoryInput struct {
	NameEn string `json:"name_en" binding:"required"`
	NameAr string `json:"name_ar" binding:"required"`
}

// CreateProductInput carries a new product listing
type CreateProductInput struct {
	CategoryID    *uuid.UUID `json:"category_id"`
	NameEn        string     `json:"name_en" binding:"required"`
	NameAr        string     `json:"name_ar" binding:"required"`
	DescriptionEn string     `json:"description_en"`
	DescriptionAr string     `json:"description_ar"`
	Price         float64    `json:"price" binding:"required"`
	Stock         int        `json:"stock"`
}

// CreateCategory persists a category with a slug derived from its English name
func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	category := models.Category{
		NameEn: input.NameEn,
		NameAr: input.NameAr,
		Slug:   slug.Make(input.NameEn),
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("error creating category: %w", err)
	}
	s.invalidate(ctx, categoriesCacheKey)
	return &category, nil
}

// ListCategories returns all categories, served from cache when warm
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, categoriesCacheKey, &categories); err == nil {
			return categories, nil
		}
	}

	if err := s.db.WithContext(ctx).Order("name_en ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}

	if s.cache != nil {
		// caching is best effort
		_ = s.cache.SetJSON(ctx, categoriesCacheKey, categories, cacheTTL)
	}
	return categories, nil
}

// CreateProduct persists a product for a vendor. The slug is derived from the
// English name with a short suffix to keep it unique across vendors.
func (s *Service) CreateProduct(ctx context.Context, vendorID uuid.UUID, input CreateProductInput) (*models.Product, error) {
	if input.Price < 0 {
		return nil, apperrors.BadRequest("Price cannot be negative", "لا يمكن أن يكون السعر سالباً")
	}

	if input.CategoryID != nil {
		var category models.Category
		if err := s.db.WithContext(ctx).First(&category, "id = ?", *input.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("Category not found", "الفئة غير موجودة")
			}
			return nil, fmt.Errorf("error finding category: %w", err)
		}
	}

	product := models.Product{
		VendorID:      vendorID,
		CategoryID:    input.CategoryID,
		NameEn:        input.NameEn,
		NameAr:        input.NameAr,
		Slug:          slug.Make(input.NameEn) + "-" + uuid.New().String()[:8],
		DescriptionEn: input.DescriptionEn,
		DescriptionAr: input.DescriptionAr,
		Price:         input.Price,
		Currency:      "SYP",
		Stock:         input.Stock,
		IsActive:      true,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("error creating product: %w", err)
	}
	return &product, nil
}

// GetProductBySlug loads a product by its slug, served from cache when warm
func (s *Service) GetProductBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	cacheKey := fmt.Sprintf(productCacheKeyFmt, productSlug)

	var product models.Product
	if s.cache != nil {
		if err := s.cache.GetJSON(ctx, cacheKey, &product); err == nil {
			return &product, nil
		}
	}

	err := s.db.WithContext(ctx).First(&product, "slug = ? AND is_active = ?", productSlug, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Product not found", "المنتج غير موجود")
		}
		return nil, fmt.Errorf("error finding product: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, cacheKey, product, cacheTTL)
	}
	return &product, nil
}

// ListProducts returns active products, optionally filtered by category
func (s *Service) ListProducts(ctx context.Context, categoryID *uuid.UUID, page, pageSize int) ([]models.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("is_active = ?", true)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("error counting products: %w", err)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("error listing products: %w", err)
	}
	return products, total, nil
}

// DeactivateProduct takes a product off the storefront and drops its cache entry
func (s *Service) DeactivateProduct(ctx context.Context, vendorID, productID uuid.UUID) error {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ? AND vendor_id = ?", productID, vendorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Product not found", "المنتج غير موجود")
		}
		return fmt.Errorf("error finding product: %w", err)
	}

	product.IsActive = false
	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return fmt.Errorf("error updating product: %w", err)
	}
	s.invalidate(ctx, fmt.Sprintf(productCacheKeyFmt, product.Slug))
	return nil
}

func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	// stale entries expire with the TTL anyway
	_ = s.cache.Delete(ctx, keys...)
}
