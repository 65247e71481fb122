package catalog

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/souqsyria/backend/internal/apperrors"
	"github.com/souqsyria/backend/internal/cache"
	"github.com/souqsyria/backend/internal/models"
)

// memoryCache is an in-process Cacher for tests
type memoryCache struct {
	entries map[string][]byte
	hits    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	m.hits++
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.entries, key)
	}
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Membership{},
		&models.Category{},
		&models.Product{},
	))
	return db
}

func createTestVendor(t *testing.T, db *gorm.DB) models.User {
	vendor := models.User{
		Email:    uuid.New().String() + "@example.sy",
		FullName: "Test Vendor",
		Role:     models.UserRoleVendor,
	}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor
}

func TestCreateCategorySlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)

	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		NameEn: "Home & Kitchen",
		NameAr: "المنزل والمطبخ",
	})
	require.NoError(t, err)
	assert.Equal(t, "home-kitchen", category.Slug)
}

func TestListCategoriesCached(t *testing.T) {
	db := setupTestDB(t)
	mem := newMemoryCache()
	svc := NewService(db, mem)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{NameEn: "Electronics", NameAr: "إلكترونيات"})
	require.NoError(t, err)

	first, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Zero(t, mem.hits)

	second, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, mem.hits)
}

func TestCreateCategoryInvalidatesListing(t *testing.T) {
	db := setupTestDB(t)
	mem := newMemoryCache()
	svc := NewService(db, mem)

	_, err := svc.CreateCategory(context.Background(), CreateCategoryInput{NameEn: "Electronics", NameAr: "إلكترونيات"})
	require.NoError(t, err)

	_, err = svc.ListCategories(context.Background())
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), CreateCategoryInput{NameEn: "Fashion", NameAr: "أزياء"})
	require.NoError(t, err)

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	vendor := createTestVendor(t, db)

	product, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Damascus Rose Soap",
		NameAr: "صابون الورد الدمشقي",
		Price:  25000,
		Stock:  40,
	})
	require.NoError(t, err)

	assert.Equal(t, vendor.ID, product.VendorID)
	assert.Equal(t, "SYP", product.Currency)
	assert.True(t, product.IsActive)
	assert.Contains(t, product.Slug, "damascus-rose-soap-")
}

func TestCreateProductNegativePrice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	vendor := createTestVendor(t, db)

	_, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Broken Listing",
		NameAr: "منتج",
		Price:  -1,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequest(err))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	vendor := createTestVendor(t, db)

	missing := uuid.New()
	_, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn:     "Olive Oil",
		NameAr:     "زيت زيتون",
		Price:      60000,
		CategoryID: &missing,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetProductBySlug(t *testing.T) {
	db := setupTestDB(t)
	mem := newMemoryCache()
	svc := NewService(db, mem)
	vendor := createTestVendor(t, db)

	product, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Aleppo Soap",
		NameAr: "صابون حلبي",
		Price:  15000,
	})
	require.NoError(t, err)

	found, err := svc.GetProductBySlug(context.Background(), product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	// second read should come from the cache
	_, err = svc.GetProductBySlug(context.Background(), product.Slug)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.hits)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)

	_, err := svc.GetProductBySlug(context.Background(), "no-such-product")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, newMemoryCache())
	vendor := createTestVendor(t, db)

	product, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Seasonal Item",
		NameAr: "منتج موسمي",
		Price:  5000,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateProduct(context.Background(), vendor.ID, product.ID))

	_, err = svc.GetProductBySlug(context.Background(), product.Slug)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateProductWrongVendor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	vendor := createTestVendor(t, db)
	other := createTestVendor(t, db)

	product, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Protected Item",
		NameAr: "منتج",
		Price:  5000,
	})
	require.NoError(t, err)

	err = svc.DeactivateProduct(context.Background(), other.ID, product.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListProductsFiltersInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil)
	vendor := createTestVendor(t, db)

	active, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Active", NameAr: "نشط", Price: 1000,
	})
	require.NoError(t, err)
	inactive, err := svc.CreateProduct(context.Background(), vendor.ID, CreateProductInput{
		NameEn: "Inactive", NameAr: "غير نشط", Price: 1000,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateProduct(context.Background(), vendor.ID, inactive.ID))

	products, total, err := svc.ListProducts(context.Background(), nil, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, active.ID, products[0].ID)
}
