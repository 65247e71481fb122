package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/services/catalog"
)

const governoratesCacheKey = "reference:governorates"

// GovernorateHandler serves the Syrian governorate reference list
type GovernorateHandler struct {
	db    *gorm.DB
	cache catalog.Cacher
}

// NewGovernorateHandler creates a new governorate handler
func NewGovernorateHandler(db *gorm.DB, cacher catalog.Cacher) *GovernorateHandler {
	return &GovernorateHandler{db: db, cache: cacher}
}

// List handles GET /api/governorates
func (h *GovernorateHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var governorates []models.Governorate
	if h.cache != nil {
		if err := h.cache.GetJSON(ctx, governoratesCacheKey, &governorates); err == nil {
			c.JSON(http.StatusOK, gin.H{"governorates": governorates})
			return
		}
	}

	if err := h.db.WithContext(ctx).Order("code ASC").Find(&governorates).Error; err != nil {
		middleware.RespondError(c, err)
		return
	}

	if h.cache != nil {
		// the list changes only with deployments
		_ = h.cache.SetJSON(ctx, governoratesCacheKey, governorates, 24*time.Hour)
	}

	c.JSON(http.StatusOK, gin.H{"governorates": governorates})
}
