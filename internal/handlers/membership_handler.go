package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/services/membership"
)

// MembershipHandler handles membership plans and enrollments
type MembershipHandler struct {
	membershipSvc *membership.Service
}

// NewMembershipHandler creates a new membership handler
func NewMembershipHandler(membershipSvc *membership.Service) *MembershipHandler {
	return &MembershipHandler{membershipSvc: membershipSvc}
}

// ListPlans handles GET /api/memberships
func (h *MembershipHandler) ListPlans(c *gin.Context) {
	plans, err := h.membershipSvc.ListPlans(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

type enrollRequest struct {
	Tier models.MembershipTier `json:"tier" binding:"required"`
}

// Enroll handles POST /api/memberships/enroll
func (h *MembershipHandler) Enroll(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	enrollment, err := h.membershipSvc.Enroll(c.Request.Context(), userID, req.Tier)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, enrollment)
}

// Current handles GET /api/memberships/current
func (h *MembershipHandler) Current(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	enrollment, err := h.membershipSvc.GetActiveMembership(c.Request.Context(), userID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollment)
}
