package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/audit"
	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/models"
	"github.com/souqsyria/backend/internal/services/refund"
)

// RefundHandler handles refund initiation and admin review requests
type RefundHandler struct {
	refundSvc *refund.Service
	audit     *audit.Logger
}

// NewRefundHandler creates a new refund handler
func NewRefundHandler(refundSvc *refund.Service, auditLogger *audit.Logger) *RefundHandler {
	return &RefundHandler{refundSvc: refundSvc, audit: auditLogger}
}

// Initiate handles POST /api/refunds
func (h *RefundHandler) Initiate(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	var input refund.InitiateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	refundTx, err := h.refundSvc.InitiateRefund(c.Request.Context(), input)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventRefundInitiated,
		Description: "Refund initiated",
		ActorID:     &userID,
		Success:     true,
		Details: map[string]interface{}{
			"refund_id": refundTx.ID.String(),
			"order_id":  refundTx.OrderID.String(),
			"amount":    refundTx.Amount,
		},
	})

	c.JSON(http.StatusCreated, refundTx)
}

// Review handles PUT /api/admin/refunds/:id/review
func (h *RefundHandler) Review(c *gin.Context) {
	adminID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	refundID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	var input refund.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	refundTx, err := h.refundSvc.ApproveRefund(c.Request.Context(), refundID, input, adminID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	h.audit.LogFromRequest(c, audit.Entry{
		EventType:   models.AuditEventRefundReviewed,
		Description: "Refund reviewed",
		ActorID:     &adminID,
		Success:     true,
		Details: map[string]interface{}{
			"refund_id":  refundTx.ID.String(),
			"new_status": string(refundTx.Status),
		},
	})

	c.JSON(http.StatusOK, refundTx)
}

// StatusByOrder handles GET /api/orders/:id/refund
func (h *RefundHandler) StatusByOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	refundTx, err := h.refundSvc.GetRefundStatusByOrder(c.Request.Context(), orderID)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, refundTx)
}
