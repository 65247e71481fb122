package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/souqsyria/backend/internal/audit"
	"github.com/souqsyria/backend/internal/config"
	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/utils"
)

// StaffAuthHandler handles back-office staff authentication
type StaffAuthHandler struct {
	db    *gorm.DB
	cfg   config.JWTConfig
	audit *audit.Logger
}

// NewStaffAuthHandler creates a new staff auth handler
func NewStaffAuthHandler(db *gorm.DB, cfg config.JWTConfig, auditLogger *audit.Logger) *StaffAuthHandler {
	return &StaffAuthHandler{db: db, cfg: cfg, audit: auditLogger}
}

type staffLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/admin/auth/login
func (h *StaffAuthHandler) Login(c *gin.Context) {
	var req staffLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	var staff models.StaffUser
	err := h.db.WithContext(c.Request.Context()).
		First(&staff, "email = ? AND is_active = ?", req.Email, true).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		middleware.RespondError(c, err)
		return
	}

	// same response for unknown email and wrong password
	if errors.Is(err, gorm.ErrRecordNotFound) || !utils.CheckPasswordHash(req.Password, staff.PasswordHash) {
		h.audit.LogFromRequest(c, audit.Entry{
			EventType:   models.AuditEventStaffLogin,
			Severity:    models.AuditSeverityWarning,
			Description: "Failed staff login",
			Success:     false,
			Details:     map[string]interface{}{"email": req.Email},
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Invalid email or password",
			"error_ar": "البريد الإلكتروني أو كلمة المرور غير صحيحة",
		})
		return
	}

	token, err := utils.GenerateToken(h.cfg, staff.ID, staff.Email, true, staff.IsAdmin)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	now := time.Now()
	staff.LastLoginAt = &now
	if err := h.db.WithContext(c.Request.Context()).Save(&staff).Error; err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventStaffLogin,
		Description: "Staff login",
		ActorID:     &staff.ID,
		Success:     true,
	})

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"staff": gin.H{
			"id":        staff.ID,
			"email":     staff.Email,
			"full_name": staff.FullName,
			"is_admin":  staff.IsAdmin,
		},
	})
}
