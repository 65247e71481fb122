package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/services/catalog"
)

// CatalogHandler handles storefront categories and product listings
type CatalogHandler struct {
	catalogSvc *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogSvc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListCategories handles GET /api/catalog/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory handles POST /api/admin/catalog/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var input catalog.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	category, err := h.catalogSvc.CreateCategory(c.Request.Context(), input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// ListProducts handles GET /api/catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondValidationError(c, err)
			return
		}
		categoryID = &id
	}

	products, total, err := h.catalogSvc.ListProducts(c.Request.Context(), categoryID, page, pageSize)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":  products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct handles GET /api/catalog/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogSvc.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /api/vendor/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	vendorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	var input catalog.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	product, err := h.catalogSvc.CreateProduct(c.Request.Context(), vendorID, input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// DeactivateProduct handles DELETE /api/vendor/products/:id
func (h *CatalogHandler) DeactivateProduct(c *gin.Context) {
	vendorID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	if err := h.catalogSvc.DeactivateProduct(c.Request.Context(), vendorID, productID); err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated"})
}
